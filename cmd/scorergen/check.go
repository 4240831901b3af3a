package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/validator"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files|dirs...]",
		Short: "Validate declarations and the dependency graph without writing code",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := g.compile(cmd, args, compiler.StageResolved)
			out := cmd.OutOrStdout()

			var diags []validator.Diagnostic
			if res != nil {
				diags = res.Diagnostics
			}
			for _, d := range diags {
				fmt.Fprintln(out, d.String())
			}

			var verr *validator.Error
			if err != nil && !errors.As(err, &verr) {
				fmt.Fprintln(out, err.Error())
			}
			if err != nil {
				return errCheckFailed
			}
			if len(diags) > 0 {
				fmt.Fprintf(out, "\nFound %d warnings.\n", len(diags))
			} else {
				fmt.Fprintf(out, "No issues found in %d units, %d stages.\n", len(res.Plan.Fields), len(res.Plan.Steps))
			}
			return nil
		},
	}
}
