package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptseerr/promptseerr/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), ctx)
		},
	}
}

func runServer(cmdCtx context.Context, ctx *commandContext) error {
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg.Logging, os.Stdout)
	defer log.Close()

	log.Info().
		Str("version", version).
		Str("provider", cfg.LLM.Provider).
		Str("logLevel", cfg.Logging.Level).
		Msg("starting promptseerr")

	a, gateway, err := buildAgent(signalCtx, cfg, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to build request pipeline")
		return err
	}

	server := api.NewServer(cfg.Server, a, gateway.Name(), log.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(signalCtx, cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	case <-signalCtx.Done():
		log.Info().Msg("received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
