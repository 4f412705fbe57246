// Package server exposes the answer checker over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/abhisek/mathcheck/internal/config"
	"github.com/abhisek/mathcheck/internal/grading"
	"github.com/abhisek/mathcheck/internal/mathcheck"
)

// Options carries the optional collaborators of a Server.
type Options struct {
	Logger   *zap.Logger     // nil means zap.NewNop
	Recorder VerdictRecorder // nil disables the verdict log
	Version  string
}

// Server holds all the components of the checking service.
type Server struct {
	cfg        config.ServerConfig
	logger     *zap.Logger
	router     *mux.Router
	metrics    *Metrics
	httpServer *http.Server
}

// New creates a Server with its routes and middleware set up.
func New(cfg config.Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	checker := mathcheck.New(cfg.Checker)
	s := &Server{
		cfg:     cfg.Server,
		logger:  logger,
		router:  mux.NewRouter(),
		metrics: NewMetrics(),
	}

	h := &Handler{
		checker:  checker,
		grader:   grading.NewGrader(checker),
		recorder: opts.Recorder,
		metrics:  s.metrics,
		logger:   logger,
		version:  opts.Version,
		maxBody:  cfg.Server.MaxBodyBytes,
	}

	s.router.Use(requestIDMiddleware, accessLogMiddleware(logger), s.metrics.Middleware)
	h.RegisterRoutes(s.router)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Stop is called.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
