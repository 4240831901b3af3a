package visualizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

var ErrUnknownUnit = errors.New("unknown unit")

// Mermaid renders plan as a left-to-right flowchart with one subgraph per
// stage. With a focus unit only that unit, its inputs and its direct
// dependents are drawn.
func Mermaid(plan *resolver.Plan, focus string) (string, error) {
	calls := make(map[string]resolver.Call)
	for _, st := range plan.Steps {
		for _, c := range st.Calls {
			calls[c.Unit.Name] = c
		}
	}

	shown := make(map[string]bool)
	raws := make(map[string]bool)
	type edge struct{ from, to string }
	var edges []edge
	if focus == "" {
		for name, c := range calls {
			shown[name] = true
			for _, p := range c.Params {
				if p.Kind == resolver.KindRaw {
					raws[p.Name] = true
				}
			}
		}
		for _, st := range plan.Steps {
			for _, c := range st.Calls {
				for _, p := range c.Params {
					edges = append(edges, edge{nodeID(p), unitID(c.Unit.Name)})
				}
			}
		}
	} else {
		c, ok := calls[focus]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownUnit, focus)
		}
		shown[focus] = true
		for _, p := range c.Params {
			if p.Kind == resolver.KindRaw {
				raws[p.Name] = true
			} else {
				shown[p.Name] = true
			}
			edges = append(edges, edge{nodeID(p), unitID(focus)})
		}
		for _, st := range plan.Steps {
			for _, d := range st.Calls {
				if readsUnit(d, focus) {
					shown[d.Unit.Name] = true
					edges = append(edges, edge{unitID(focus), unitID(d.Unit.Name)})
				}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	byGroup := make(map[string][]string)
	for i, st := range plan.Steps {
		var nodes []resolver.Call
		for _, c := range st.Calls {
			if shown[c.Unit.Name] {
				nodes = append(nodes, c)
			}
		}
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  subgraph stage%d[\"stage %d\"]\n", i, i)
		for _, c := range nodes {
			id := unitID(c.Unit.Name)
			fmt.Fprintf(&sb, "    %s[\"%s<br/>%s\"]\n", id, escape(c.Unit.Name), escape(c.Unit.Label))
			byGroup[c.Unit.Group.String()] = append(byGroup[c.Unit.Group.String()], id)
		}
		sb.WriteString("  end\n")
	}

	rawNames := make([]string, 0, len(raws))
	for n := range raws {
		rawNames = append(rawNames, n)
	}
	sort.Strings(rawNames)
	for _, n := range rawNames {
		fmt.Fprintf(&sb, "  %s([%s])\n", rawID(n), n)
		byGroup["raw"] = append(byGroup["raw"], rawID(n))
	}

	for _, e := range edges {
		arrow := "-->"
		if strings.HasPrefix(e.from, "r_") {
			arrow = "-.->"
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", e.from, arrow, e.to)
	}

	sb.WriteString("  classDef g_common fill:#dfd,stroke:#333;\n")
	sb.WriteString("  classDef g_matrix fill:#ffd,stroke:#333;\n")
	sb.WriteString("  classDef g_class fill:#bbf,stroke:#333;\n")
	sb.WriteString("  classDef g_overall fill:#f9f,stroke:#333;\n")
	sb.WriteString("  classDef g_raw fill:#fff,stroke:#999,font-style:italic;\n")
	sb.WriteString("  classDef g_focus stroke:#7C0000,stroke-width:3px;\n")
	for _, g := range []string{"common", "matrix", "class", "overall", "raw"} {
		if ids := byGroup[g]; len(ids) > 0 {
			fmt.Fprintf(&sb, "  class %s g_%s\n", strings.Join(ids, ","), g)
		}
	}
	if focus != "" {
		fmt.Fprintf(&sb, "  class %s g_focus\n", unitID(focus))
	}
	return sb.String(), nil
}

func readsUnit(c resolver.Call, name string) bool {
	for _, p := range c.Params {
		if p.Kind == resolver.KindMetric && p.Name == name {
			return true
		}
	}
	return false
}

// Unit names may collide with Mermaid keywords such as end, so every node id
// carries a prefix.
func unitID(name string) string { return "u_" + name }

func rawID(name string) string { return "r_" + name }

func nodeID(p resolver.Param) string {
	if p.Kind == resolver.KindRaw {
		return rawID(p.Name)
	}
	return unitID(p.Name)
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
