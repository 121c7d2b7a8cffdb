package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/lifepath/internal/server"
	"github.com/iwvelando/lifepath/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *application) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx, address)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func (a *application) serve(ctx context.Context, address string) error {
	users, err := store.Open(ctx, a.conf.Store, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := users.Close(); err != nil {
			a.logger.Warn("closing store failed",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
	}()

	cfg := server.NewConfig(a.conf, version)
	if address != "" {
		cfg.Address = address
	}

	srv := server.New(a.logger, cfg, server.NewHandler(a.logger, users, cfg))
	return srv.Run(ctx)
}
