// Command chain manipulates a persisted demo chain:
//
//	chain [flags] show
//	chain [flags] add DATA
//	chain [flags] edit INDEX DATA
//	chain [flags] reset
//	chain [flags] verify
//	chain [flags] fork [STEPS]
//
// edit changes a block without resealing it, so the following
// show or verify reports the tampering. fork simulates an
// attacker rewriting block 1 next to the honest chain and does
// not touch the store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/config"
	"github.com/hkanpak21/funhash/termstyle"
)

const defaultForkSteps = 6

var errInvalidChain = errors.New("chain is invalid")

func run() (retErr error) {
	const errCtx = "chain"

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

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"show"}
	}

	if args[0] == "fork" {
		return runFork(cfg, args[1:])
	}

	ctx := context.Background()

	store, err := chain.OpenStore(cfg.ChainPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	c, err := chain.Load(ctx, store, cfg.Hasher())
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	mutated := true

	switch cmd := args[0]; cmd {
	case "show", "verify":
		mutated = false

	case "add":
		if len(args) != 2 {
			return fmt.Errorf("%s: usage: add DATA", errCtx)
		}

		b := c.Add(args[1])
		slog.Info("block added", "index", b.Index, "hash", b.Hash)

	case "edit":
		if len(args) != 3 {
			return fmt.Errorf("%s: usage: edit INDEX DATA", errCtx)
		}

		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%s: index: %w", errCtx, err)
		}

		if err := c.Edit(idx, args[2]); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

	case "reset":
		c.Reset()

	default:
		return fmt.Errorf("%s: unknown command %q", errCtx, cmd)
	}

	if mutated {
		if err := chain.Save(ctx, store, c); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		slog.Debug("chain saved", "path", cfg.ChainPath, "blocks", c.Len())
	}

	re, err := termstyle.NewRenderer(os.Stdout, cfg.Color)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := chain.Render(os.Stdout, c, re); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if args[0] == "verify" && !c.Valid() {
		return fmt.Errorf("%s: %w", errCtx, errInvalidChain)
	}

	return nil
}

func runFork(cfg config.Config, args []string) error {
	const errCtx = "chain fork"

	steps := defaultForkSteps

	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%s: steps: %w", errCtx, err)
		}

		steps = n
	default:
		return fmt.Errorf("%s: usage: fork [STEPS]", errCtx)
	}

	re, err := termstyle.NewRenderer(os.Stdout, cfg.Color)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	f := chain.Simulate(cfg.Hasher(), steps)
	if err := chain.RenderFork(os.Stdout, f, re); err != nil {
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
