package graph

import (
	"fmt"
	"sort"
)

// Layers maps each unit to its layer. For every edge u -> v,
// layer(v) < layer(u); units without dependencies sit at layer 0.
type Layers map[string]int

// Depth returns the number of layers.
func (l Layers) Depth() int {
	depth := 0
	for _, n := range l {
		depth = max(depth, n+1)
	}
	return depth
}

// Layer assigns layers by peeling the reversed graph in Kahn order. The
// frontier starts with every unit that has no dependency, so disconnected
// components need no shared root. g is only read.
func Layer(g *Graph) (Layers, error) {
	remaining := make(map[string]int, g.Len())
	layers := make(Layers, g.Len())
	var frontier []string
	for _, n := range g.nodes {
		remaining[n] = len(g.deps[n])
		if remaining[n] == 0 {
			frontier = append(frontier, n)
			layers[n] = 0
		}
	}

	processed := 0
	for len(frontier) > 0 {
		node := frontier[0]
		frontier = frontier[1:]
		if !g.Has(node) {
			return nil, fmt.Errorf("%w: scheduled unit %q is not in the graph", ErrInternal, node)
		}
		processed++

		var ready []string
		for _, child := range g.dependents[node] {
			layers[child] = max(layers[child], layers[node]+1)
			remaining[child]--
			if remaining[child] == 0 {
				ready = append(ready, child)
			}
		}
		sort.Strings(ready)
		frontier = append(frontier, ready...)
	}

	if processed != g.Len() {
		var stuck []string
		for n, left := range remaining {
			if left > 0 {
				stuck = append(stuck, n)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{Cycles: [][]string{stuck}}
	}
	return layers, nil
}
