package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
)

func newBuildCmd(g *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build [files|dirs...]",
		Short: "Generate the engine source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := g.compile(cmd, args, compiler.StageEmitted)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = cfg.OutputPath()
			}
			if path == "-" {
				_, err := cmd.OutOrStdout().Write(res.Source)
				return err
			}
			if err := os.WriteFile(path, res.Source, 0o644); err != nil {
				return err
			}
			logger.FromContext(cmd.Context()).Info("engine written",
				"path", path, "units", len(res.Units), "stages", len(res.Workflow))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default from the project file)")
	return cmd
}
