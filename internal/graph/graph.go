package graph

import (
	"sort"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

// Edge points from a unit to one of the units it depends on.
type Edge struct {
	From string
	To   string
}

// Graph is the dependency relation between metric units.
type Graph struct {
	nodes      []string
	deps       map[string][]string
	dependents map[string][]string
}

// Build creates the graph for units. Unit names are expected to be unique;
// a repeated name keeps the first declaration.
func Build(units []parser.Unit) *Graph {
	g := &Graph{
		deps:       make(map[string][]string, len(units)),
		dependents: make(map[string][]string, len(units)),
	}
	for _, u := range units {
		if _, ok := g.deps[u.Name]; ok {
			continue
		}
		g.deps[u.Name] = nil
		g.nodes = append(g.nodes, u.Name)
	}
	sort.Strings(g.nodes)

	seen := make(map[string]bool, len(units))
	for _, u := range units {
		if seen[u.Name] {
			continue
		}
		seen[u.Name] = true

		added := make(map[string]bool, len(u.Inputs))
		for _, in := range u.Inputs {
			if _, isUnit := g.deps[in.Name]; !isUnit || added[in.Name] {
				continue
			}
			added[in.Name] = true
			g.deps[u.Name] = append(g.deps[u.Name], in.Name)
			g.dependents[in.Name] = append(g.dependents[in.Name], u.Name)
		}
	}
	for _, list := range g.deps {
		sort.Strings(list)
	}
	for _, list := range g.dependents {
		sort.Strings(list)
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns all unit names in sorted order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// DependenciesOf returns the units name reads from, sorted.
func (g *Graph) DependenciesOf(name string) []string {
	return append([]string(nil), g.deps[name]...)
}

// DependentsOf returns the units that read name, sorted.
func (g *Graph) DependentsOf(name string) []string {
	return append([]string(nil), g.dependents[name]...)
}

// Edges returns every edge ordered by source then target.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.nodes {
		for _, to := range g.deps[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Validate fails with a *CycleError when the graph is not acyclic. Every
// strongly connected component with more than one member, and every unit
// that reads its own output, is reported.
func (g *Graph) Validate() error {
	t := &tarjan{
		g:       g,
		index:   make(map[string]int, len(g.nodes)),
		low:     make(map[string]int, len(g.nodes)),
		onStack: make(map[string]bool, len(g.nodes)),
	}
	for _, n := range g.nodes {
		if _, visited := t.index[n]; !visited {
			t.visit(n)
		}
	}
	if len(t.cycles) == 0 {
		return nil
	}
	sort.Slice(t.cycles, func(i, j int) bool {
		return t.cycles[i][0] < t.cycles[j][0]
	})
	return &CycleError{Cycles: t.cycles}
}

type tarjan struct {
	g       *Graph
	counter int
	index   map[string]int
	low     map[string]int
	stack   []string
	onStack map[string]bool
	cycles  [][]string
}

func (t *tarjan) visit(v string) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	selfLoop := false
	for _, w := range t.g.deps[v] {
		if w == v {
			selfLoop = true
		}
		if _, visited := t.index[w]; !visited {
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var scc []string
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	if len(scc) > 1 || selfLoop {
		sort.Strings(scc)
		t.cycles = append(t.cycles, scc)
	}
}
