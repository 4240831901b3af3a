package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/config"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
)

const exampleUnits = `// Starter declarations. Each unit names its group, a label and the inputs
// its formula reads: * for per-class arrays, & for scalars.

unit overall // Number of classes
{
	(*classes)
} get_count;

unit overall // Samples per class
{
	(&count, &n_true)
} get_rate;
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter project file and declarations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			log := logger.FromContext(cmd.Context())

			cfg := config.Default()
			cfg.Input.Files = []string{"units"}
			path, err := config.Init(dir, cfg)
			if err != nil {
				return err
			}
			log.Info("created", "file", path)

			unitsDir := filepath.Join(dir, "units")
			if err := os.MkdirAll(unitsDir, 0o755); err != nil {
				return err
			}
			example := filepath.Join(unitsDir, "example.unit")
			if err := os.WriteFile(example, []byte(exampleUnits), 0o644); err != nil {
				return err
			}
			log.Info("created", "file", example)
			return nil
		},
	}
}
