package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/formatter"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

func newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt files...",
		Short: "Rewrite declaration files in canonical layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.FromContext(cmd.Context())
			var errs []error
			for _, path := range args {
				file, err := parser.ParseFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}

				var buf bytes.Buffer
				formatter.Format(file, &buf)
				if !write {
					if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
						return err
					}
					continue
				}
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					errs = append(errs, fmt.Errorf("writing %s: %w", path, err))
					continue
				}
				log.Info("formatted", "file", path)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	return cmd
}
