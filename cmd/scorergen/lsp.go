package main

import (
	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/lsp"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

func newLSPCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server for .unit files on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			s, err := schema.LoadFullSchema(cfg.Dir())
			if err != nil {
				return err
			}
			srv := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), s, logger.FromContext(cmd.Context()))
			return srv.Run(cmd.Context())
		},
	}
}
