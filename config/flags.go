package config

import (
	"flag"
	"fmt"
	"strconv"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig      = "config"
	FlagStrip       = "strip"
	FlagColor       = "color"
	FlagLogLevel    = "log-level"
	FlagStore       = "store"
	FlagAddr        = "addr"
	FlagBodyLimit   = "body-limit"
	FlagParallelism = "parallelism"
)

// RegisterFlags defines the override flags on fs. Only flags
// given on the command line take part in FromFlags, so the
// defaults shown here are informational.
func RegisterFlags(fs *flag.FlagSet) {
	def := Default()

	fs.String(FlagConfig, "", "YAML configuration file")
	fs.Bool(
		FlagStrip, def.StripNonAlpha,
		"hash letters only (false hashes the text as given)",
	)
	fs.String(FlagColor, def.Color, "color mode: auto, always or never")
	fs.String(FlagLogLevel, def.LogLevel, "log level")
	fs.String(FlagStore, def.ChainPath, "chain store path")
	fs.String(FlagAddr, def.HTTPAddr, "HTTP listen address")
	fs.String(FlagBodyLimit, def.BodyLimit, "HTTP request body limit")
	fs.Int(
		FlagParallelism, def.Parallelism,
		"number of files hashed concurrently",
	)
}

// FromFlags loads the file named by -config and the
// environment, then applies the flags set on fs. fs must be
// parsed.
func FromFlags(fs *flag.FlagSet) (Config, error) {
	const errCtx = "resolving config"

	var path string
	if f := fs.Lookup(FlagConfig); f != nil {
		path = f.Value.String()
	}

	cfg, err := Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.applyFlags(fs); err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}

func (c *Config) applyFlags(fs *flag.FlagSet) error {
	var firstErr error

	fs.Visit(func(f *flag.Flag) {
		val := f.Value.String()

		switch f.Name {
		case FlagStrip:
			b, err := strconv.ParseBool(val)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("-%s: %w", f.Name, err)
			}

			c.StripNonAlpha = b
		case FlagColor:
			c.Color = val
		case FlagLogLevel:
			c.LogLevel = val
		case FlagStore:
			c.ChainPath = val
		case FlagAddr:
			c.HTTPAddr = val
		case FlagBodyLimit:
			c.BodyLimit = val
		case FlagParallelism:
			n, err := strconv.Atoi(val)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("-%s: %w", f.Name, err)
			}

			c.Parallelism = n
		}
	})

	return firstErr
}
