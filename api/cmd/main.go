// Command ikh-server serves the IKH visualizer API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hkanpak21/funhash/api"
	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/config"
)

const shutdownTimeout = 10 * time.Second

func run() (retErr error) {
	const errCtx = "ikh-server"

	config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.FromFlags(flag.CommandLine)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	store, err := chain.OpenStore(cfg.ChainPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	srv, err := api.New(ctx, api.Options{
		Hasher:    cfg.Hasher(),
		Store:     store,
		BodyLimit: cfg.BodyLimit,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil

	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
