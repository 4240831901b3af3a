// Package graph turns metric units into an execution plan.
//
// Build derives the dependency graph from the units' declared inputs: an edge
// u -> v exists when unit u reads the output of unit v. Inputs that no unit
// produces are raw inputs and never become nodes. Validate rejects cycles,
// Layer assigns every node the length of its longest dependency chain, and
// Partition groups equal layers into the stages of a Workflow.
//
// Everything here is computed once at generation time. A Graph is not
// modified after Build returns.
package graph
