package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
)

type planView struct {
	Stages []stageView `yaml:"stages" json:"stages"`
}

type stageView struct {
	Index int        `yaml:"index" json:"index"`
	Units []unitView `yaml:"units" json:"units"`
}

type unitView struct {
	Name   string      `yaml:"name" json:"name"`
	Group  string      `yaml:"group" json:"group"`
	Label  string      `yaml:"label" json:"label"`
	Call   string      `yaml:"call" json:"call"`
	Params []paramView `yaml:"params,omitempty" json:"params,omitempty"`
}

type paramView struct {
	Name   string `yaml:"name" json:"name"`
	Kind   string `yaml:"kind" json:"kind"`
	Access string `yaml:"access" json:"access"`
	Expr   string `yaml:"expr" json:"expr"`
}

func newPlanView(plan *resolver.Plan) planView {
	v := planView{Stages: make([]stageView, 0, len(plan.Steps))}
	for i, st := range plan.Steps {
		sv := stageView{Index: i}
		for _, c := range st.Calls {
			uv := unitView{
				Name:  c.Unit.Name,
				Group: c.Unit.Group.String(),
				Label: c.Unit.Label,
				Call:  c.Func,
			}
			for _, p := range c.Params {
				uv.Params = append(uv.Params, paramView{
					Name:   p.Name,
					Kind:   p.Kind.String(),
					Access: p.Access.String(),
					Expr:   p.Expr,
				})
			}
			sv.Units = append(sv.Units, uv)
		}
		v.Stages = append(v.Stages, sv)
	}
	return v
}

func writePlan(w io.Writer, plan *resolver.Plan, format string) error {
	view := newPlanView(plan)
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		return fmt.Errorf("unknown plan format %q (yaml, json)", format)
	}
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "plan [files|dirs...]",
		Short: "Print the staged workflow with resolved parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := g.compile(cmd, args, compiler.StageResolved)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), res.Plan, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, json)")
	return cmd
}
