// Package scorer is the engine generated from the declarations in ../stats.
// Compute takes two equally long slices of encoded labels and fills every
// statistic; Encode turns arbitrary labels into such codes.
package scorer
