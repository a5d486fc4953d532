package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hkanpak21/funhash/chain"
	"github.com/hkanpak21/funhash/ikh"
)

// Options configures a Server.
type Options struct {
	// Hasher is the default policy for digests and the chain.
	Hasher ikh.Hasher
	// Store persists the demo chain.
	Store chain.Store
	// BodyLimit caps request bodies, e.g. "1M".
	BodyLimit string
	// Logger receives request logs. slog.Default() if nil.
	Logger *slog.Logger
}

// Server is the HTTP surface. It is safe for concurrent use.
type Server struct {
	echo   *echo.Echo
	hasher ikh.Hasher
	store  chain.Store
	logger *slog.Logger

	mu    sync.Mutex
	chain *chain.Chain
}

// New loads the chain from opts.Store and wires the routes.
func New(ctx context.Context, opts Options) (*Server, error) {
	const errCtx = "creating api server"

	if opts.Store == nil {
		return nil, fmt.Errorf("%s: store is required", errCtx)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch, err := chain.Load(ctx, opts.Store, opts.Hasher)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	s := &Server{
		echo:   echo.New(),
		hasher: opts.Hasher,
		store:  opts.Store,
		logger: logger,
		chain:  ch,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.JSONSerializer = jsonSerializer{}

	s.echo.Use(middleware.Recover())

	if opts.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	s.echo.Use(middleware.RequestLoggerWithConfig(
		middleware.RequestLoggerConfig{
			LogMethod:   true,
			LogURI:      true,
			LogStatus:   true,
			LogLatency:  true,
			LogError:    true,
			HandleError: true,
			LogValuesFunc: func(
				_ echo.Context,
				v middleware.RequestLoggerValues,
			) error {
				attrs := []any{
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency,
				}

				if v.Error != nil {
					s.logger.Warn(
						"request failed",
						append(attrs, "error", v.Error)...,
					)

					return nil
				}

				s.logger.Info("request", attrs...)

				return nil
			},
		},
	))

	s.routes()

	return s, nil
}

func (s *Server) routes() {
	g := s.echo.Group("/api/v1")

	g.GET("/health", s.health)
	g.POST("/digest", s.digest)
	g.POST("/steps", s.steps)
	g.POST("/avalanche", s.avalanche)
	g.GET("/chain", s.chainView)
	g.POST("/chain/blocks", s.addBlock)
	g.PUT("/chain/blocks/:index", s.editBlock)
	g.DELETE("/chain", s.resetChain)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called. A clean
// shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)

	if err := s.echo.Start(addr); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", addr, err)
	}

	return nil
}

// Shutdown stops accepting requests and waits for the ones in
// flight.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
