package graph

import (
	"fmt"
	"sort"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

// Stage is one layer of the workflow: units that can all run at once.
type Stage struct {
	Index int
	Units []parser.Unit
}

// Names returns the unit names of the stage in order.
func (s Stage) Names() []string {
	names := make([]string, len(s.Units))
	for i, u := range s.Units {
		names[i] = u.Name
	}
	return names
}

// Workflow is the ordered execution plan.
type Workflow []Stage

// Order flattens the workflow into a topological order of the units.
func (w Workflow) Order() []string {
	var order []string
	for _, s := range w {
		order = append(order, s.Names()...)
	}
	return order
}

// Names returns the unit names per stage.
func (w Workflow) Names() [][]string {
	out := make([][]string, len(w))
	for i, s := range w {
		out[i] = s.Names()
	}
	return out
}

// Partition groups units by layer. Stages are sorted by layer and units
// inside a stage by name, so the same declarations always give the same
// workflow.
func Partition(layers Layers, units []parser.Unit) (Workflow, error) {
	byLayer := make(map[int][]parser.Unit)
	placed := make(map[string]bool, len(units))
	for _, u := range units {
		if placed[u.Name] {
			continue
		}
		n, ok := layers[u.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unit %q has no layer", ErrInternal, u.Name)
		}
		placed[u.Name] = true
		byLayer[n] = append(byLayer[n], u)
	}
	for name := range layers {
		if !placed[name] {
			return nil, fmt.Errorf("%w: layer assigned to unknown unit %q", ErrInternal, name)
		}
	}

	indexes := make([]int, 0, len(byLayer))
	for n := range byLayer {
		indexes = append(indexes, n)
	}
	sort.Ints(indexes)

	wf := make(Workflow, 0, len(indexes))
	for _, n := range indexes {
		members := byLayer[n]
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		wf = append(wf, Stage{Index: n, Units: members})
	}
	return wf, nil
}
