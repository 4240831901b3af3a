package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marte-community/scorer-dev-tools/internal/compiler"
	"github.com/marte-community/scorer-dev-tools/internal/logger"
	"github.com/marte-community/scorer-dev-tools/internal/resolver"
	"github.com/marte-community/scorer-dev-tools/internal/visualizer"
)

func newGraphCmd(g *globalOptions) *cobra.Command {
	var (
		unit string
		addr string
	)
	cmd := &cobra.Command{
		Use:   "graph [files|dirs...]",
		Short: "Draw the staged unit graph as Mermaid, or serve a live preview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				return serveGraph(cmd, g, args, addr)
			}
			_, res, err := g.compile(cmd, args, compiler.StageResolved)
			if err != nil {
				return err
			}
			out, err := visualizer.Mermaid(res.Plan, unit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "", "only draw this unit with its inputs and dependents")
	cmd.Flags().StringVar(&addr, "serve", "", "serve a live preview on this address, e.g. :8080")
	return cmd
}

func serveGraph(cmd *cobra.Command, g *globalOptions, args []string, addr string) error {
	log := logger.FromContext(cmd.Context())
	load := func(ctx context.Context) (*resolver.Plan, error) {
		_, res, err := g.compile(cmd, args, compiler.StageResolved)
		if err != nil {
			return nil, err
		}
		return res.Plan, nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           visualizer.New(load, log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("visualizer serving", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}
