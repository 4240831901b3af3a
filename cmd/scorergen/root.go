package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/config"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

type globalOptions struct {
	logLevel   string
	logFormat  string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "scorergen",
		Short: "Compile metric unit declarations into a staged Go scoring engine",
		Long: `scorergen reads .unit declaration files, orders the units by their
dependencies and writes a Go engine that computes every unit of a stage
concurrently, one stage after the other.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			l := logger.New(logger.ParseLevel(opts.logLevel), opts.logFormat, cmd.ErrOrStderr())
			logger.SetDefault(l)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, l))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVarP(&opts.configPath, "config", "c", "", "project file (default ./"+config.FileName+" when present)")

	root.AddCommand(
		newBuildCmd(opts),
		newCheckCmd(opts),
		newPlanCmd(opts),
		newGraphCmd(opts),
		newLSPCmd(opts),
		newFmtCmd(),
		newInitCmd(),
	)
	return root
}

// loadConfig returns the project file named by --config, the one in the
// working directory, or the defaults.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	cfg, err := config.Load(config.FileName)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// compile runs the pipeline over args, or over the configured inputs when
// no args are given.
func (o *globalOptions) compile(cmd *cobra.Command, args []string, stop compiler.Stage) (*config.Config, *compiler.Result, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := schema.LoadFullSchema(cfg.Dir())
	if err != nil {
		return cfg, nil, err
	}

	opts := compiler.Options{
		Schema:    s,
		Builder:   cfg.BuilderOptions(),
		StopAfter: stop,
	}
	paths := cfg.InputPaths()
	if len(args) > 0 {
		paths = args
		opts.Builder.Sources = args
	}
	res, err := compiler.CompileFiles(cmd.Context(), paths, opts)
	return cfg, res, err
}
