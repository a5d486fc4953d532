package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
	"github.com/labstack/gommon/bytes"
	"github.com/subosito/gotenv"

	"github.com/hkanpak21/funhash/ikh"
	"github.com/hkanpak21/funhash/termstyle"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved settings.
type Config struct {
	StripNonAlpha bool   `yaml:"strip_non_alpha" env:"IKH_STRIP_NON_ALPHA"`
	Color         string `yaml:"color"           env:"IKH_COLOR"`
	LogLevel      string `yaml:"log_level"       env:"IKH_LOG_LEVEL"`
	ChainPath     string `yaml:"chain_path"      env:"IKH_CHAIN_PATH"`
	HTTPAddr      string `yaml:"http_addr"       env:"IKH_HTTP_ADDR"`
	BodyLimit     string `yaml:"body_limit"      env:"IKH_BODY_LIMIT"`
	Parallelism   int    `yaml:"parallelism"     env:"IKH_PARALLELISM"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		StripNonAlpha: true,
		Color:         termstyle.ModeAuto,
		LogLevel:      "info",
		ChainPath:     "ikh-chain.json",
		HTTPAddr:      ":8080",
		BodyLimit:     "1M",
		Parallelism:   4,
	}
}

// Load resolves defaults, the YAML file at path (skipped when
// path is empty) and the process environment. A .env file in
// the working directory is loaded into the environment first
// without overriding variables that are already set.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	if err := gotenv.Load(); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("%s: .env: %w", errCtx, err)
	}

	cfg, err := load(path, env.Options{})
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}

func load(path string, opts env.Options) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if err := termstyle.ValidateMode(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalid, err)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}

	if c.Parallelism <= 0 {
		return fmt.Errorf(
			"%w: parallelism must be positive, got %d",
			ErrInvalid, c.Parallelism,
		)
	}

	if _, err := bytes.Parse(c.BodyLimit); err != nil {
		return fmt.Errorf("%w: body_limit: %w", ErrInvalid, err)
	}

	return nil
}

// Hasher returns the IKH hasher matching StripNonAlpha.
func (c Config) Hasher() ikh.Hasher {
	return ikh.Hasher{StripNonAlpha: c.StripNonAlpha}
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parsing log level: %w", err)
	}

	return lvl, nil
}

// NewLogger returns a text logger writing to w at level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}),
	), nil
}
