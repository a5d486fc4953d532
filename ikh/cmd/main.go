// Command ikh prints the IKH digest of its arguments, of
// standard input, or of files.
//
//	ikh [flags] [TEXT...]
//	ikh [flags] -file PATH [-file PATH...] [-save | -verify]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hkanpak21/funhash/config"
	"github.com/hkanpak21/funhash/digester"
	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/steptable"
	"github.com/hkanpak21/funhash/termstyle"
)

var errVerifyFailed = errors.New("digest verification failed")

// sliceFlag implements flag.Value for repeated flags.
type sliceFlag []string

func (s *sliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)

	return nil
}

type options struct {
	cfg    config.Config
	format string
	steps  bool
	trace  bool
	files  sliceFlag
	save   bool
	verify bool
}

// textReport is the structured output for a single text.
type textReport struct {
	Input      string             `json:"input"           yaml:"input"`
	Normalized string             `json:"normalized"      yaml:"normalized"`
	Digest     ikh.Digest         `json:"digest"          yaml:"digest"`
	Steps      []steptable.Record `json:"steps,omitempty" yaml:"steps,omitempty"`
	Trace      []ikh.Round        `json:"trace,omitempty" yaml:"trace,omitempty"`
}

func run() error {
	const errCtx = "ikh"

	var opts options

	config.RegisterFlags(flag.CommandLine)

	flag.StringVar(
		&opts.format, "format", "text",
		"output format: text, json or yaml",
	)
	flag.BoolVar(&opts.steps, "steps", false, "show the step table")
	flag.BoolVar(&opts.trace, "trace", false, "show the state after every round")
	flag.Var(&opts.files, "file", "file to digest (repeatable)")
	flag.BoolVar(&opts.save, "save", false, "write "+digester.SidecarExt+" sidecars for -file")
	flag.BoolVar(&opts.verify, "verify", false, "check -file against their sidecars")

	flag.Parse()

	cfg, err := config.FromFlags(flag.CommandLine)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	opts.cfg = cfg

	logger, err := config.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.SetDefault(logger)

	switch opts.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%s: unknown format %q", errCtx, opts.format)
	}

	if opts.save && opts.verify {
		return fmt.Errorf("%s: only one of -save or -verify may be given", errCtx)
	}

	if len(opts.files) > 0 {
		err = runFiles(context.Background(), opts)
	} else {
		err = runText(opts, flag.Args())
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func runText(opts options, args []string) error {
	text := strings.Join(args, " ")

	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		text = strings.TrimRight(string(data), "\r\n")
	}

	h := opts.cfg.Hasher()
	rep := textReport{
		Input:      text,
		Normalized: h.Normalize(text),
		Digest:     h.Sum(text),
	}

	if opts.steps {
		rep.Steps = steptable.Records(h.Steps(text))
	}

	if opts.trace {
		rep.Trace = h.Trace(text)
	}

	switch opts.format {
	case "json":
		return steptable.WriteJSON(os.Stdout, rep)
	case "yaml":
		return steptable.WriteYAML(os.Stdout, rep)
	}

	re, err := termstyle.NewRenderer(os.Stdout, opts.cfg.Color)
	if err != nil {
		return err
	}

	if opts.steps {
		if err := steptable.Render(os.Stdout, h.Steps(text), re); err != nil {
			return err
		}
	}

	if opts.trace {
		if err := steptable.RenderTrace(os.Stdout, rep.Trace, re); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(os.Stdout, rep.Digest); err != nil {
		return fmt.Errorf("writing digest: %w", err)
	}

	return nil
}

func runFiles(ctx context.Context, opts options) error {
	h := opts.cfg.Hasher()

	switch {
	case opts.save:
		for _, pa := range opts.files {
			if err := digester.SaveDigest(h, pa); err != nil {
				return err
			}

			slog.Info("digest saved", "path", pa+digester.SidecarExt)
		}

		return nil

	case opts.verify:
		failed := 0

		for _, pa := range opts.files {
			ok, err := digester.VerifyDigest(h, pa)
			if err != nil {
				return err
			}

			verdict := "OK"
			if !ok {
				verdict = "FAILED"
				failed++
			}

			if _, err := fmt.Fprintf(os.Stdout, "%s: %s\n", pa, verdict); err != nil {
				return fmt.Errorf("writing result: %w", err)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d files", errVerifyFailed, failed, len(opts.files))
		}

		return nil
	}

	results, err := digester.DigestFiles(ctx, h, opts.files, opts.cfg.Parallelism)
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		return steptable.WriteJSON(os.Stdout, results)
	case "yaml":
		return steptable.WriteYAML(os.Stdout, results)
	}

	for _, r := range results {
		digest := r.Digest
		if digest == "" {
			digest = "(missing)"
		}

		if _, err := fmt.Fprintf(os.Stdout, "%s  %s\n", digest, r.Path); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
