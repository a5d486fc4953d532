// Command avalanche digests two texts and shows how many of
// the 256 digest bits differ between them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/hkanpak21/funhash/avalanche"
	"github.com/hkanpak21/funhash/config"
	"github.com/hkanpak21/funhash/termstyle"
)

func run() error {
	const errCtx = "avalanche"

	var (
		textA  string
		textB  string
		format string
	)

	config.RegisterFlags(flag.CommandLine)

	flag.StringVar(&textA, "a", "MARMARA", "first text")
	flag.StringVar(&textB, "b", "MERMARA", "second text")
	flag.StringVar(
		&format, "format", "text",
		"output format: text or json",
	)

	flag.Parse()

	cfg, err := config.FromFlags(flag.CommandLine)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	report := avalanche.CompareText(cfg.Hasher(), textA, textB)

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil

	case "text":
		re, err := termstyle.NewRenderer(os.Stdout, cfg.Color)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := avalanche.Render(os.Stdout, report, re); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil

	default:
		return fmt.Errorf("%s: unknown format %q", errCtx, format)
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
