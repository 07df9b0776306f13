// Package server exposes the coaching operations over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/abhisek/bojcoach/internal/coach"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr string

	// RateLimit is requests per window per client IP.
	RateLimit  int
	RateWindow time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig mirrors the public solved.ac budget so one client
// cannot exhaust the upstream allowance on its own.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RateLimit:       100,
		RateWindow:      15 * time.Minute,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server routes HTTP requests to the coach service.
type Server struct {
	cfg   Config
	coach *coach.Service
	log   zerolog.Logger
	http  *http.Server
}

// New builds a Server with its routes mounted.
func New(cfg Config, svc *coach.Service, log zerolog.Logger) *Server {
	s := &Server{cfg: cfg, coach: svc, log: log}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/user/{handle}", func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.RateLimit, s.cfg.RateWindow))
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/weakness", s.handleWeakness)
		r.Get("/progress", s.handleProgress)
		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/prediction", s.handlePrediction)
	})

	return r
}

// ListenAndServe blocks until the context is canceled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
