package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrCyclicDependency is matched by *CycleError.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrInternal reports a broken invariant inside the planner itself.
	ErrInternal = errors.New("internal consistency failure")
)

// CycleError lists every strongly connected component that makes the
// dependency relation cyclic. Members of each cycle are sorted.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, c := range e.Cycles {
		parts[i] = "{" + strings.Join(c, ", ") + "}"
	}
	return fmt.Sprintf("cyclic dependency among units %s", strings.Join(parts, " "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }

// Members returns the names of all units involved in any cycle.
func (e *CycleError) Members() []string {
	var out []string
	for _, c := range e.Cycles {
		out = append(out, c...)
	}
	sort.Strings(out)
	return out
}
