// Package stats implements the confusion-matrix statistics computed by the
// generated scorer engine. Each exported Get<Name> function is the formula
// of the unit <name> declared in the .unit files of this directory; the
// declarations list the inputs in the order the function takes them.
//
// Per-class results are slices with one value per class; the confusion
// matrix is stored row-major with true classes as rows.
package stats

//go:generate go run github.com/marte-community/scorer-dev-tools/cmd/scorergen build -c scorergen.toml
