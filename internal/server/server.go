// Package server exposes the diagram engine over HTTP.
//
// Two styles of use are supported. POST /v1/layout is stateless: it takes a
// snapshot and returns a laid-out, routed and framed Frame. The
// /v1/diagrams endpoints keep an interactive diagram per session so that a
// rendering client can drag nodes, hover fields and edges and refit the
// camera, receiving a fresh Frame after every event.
//
// Errors are JSON objects {"code", "message"} whose status follows the
// error code (see errors.HTTPStatus).
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/schemaview/pkg/pipeline"
	"github.com/matzehuels/schemaview/pkg/view"
)

// Config configures a Server.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	MaxSessions     int
	View            view.Options
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	runner   *pipeline.Runner
	sessions *Registry
	metrics  *Metrics
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. A nil runner runs without a layout cache, nil
// metrics creates a private registry and a nil logger discards output.
func New(cfg Config, runner *pipeline.Runner, metrics *Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if cfg.View == (view.Options{}) {
		cfg.View = view.DefaultOptions()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 8 << 20
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		metrics: metrics,
		logger:  logger,
	}
	s.sessions = NewRegistry(cfg.MaxSessions, func(n int) { metrics.sessions.Set(float64(n)) })
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Sessions returns the session registry.
func (s *Server) Sessions() *Registry { return s.sessions }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)

		r.Route("/diagrams", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Put("/", s.handleReload)
				r.Delete("/", s.handleDelete)
				r.Post("/layout", s.handleAutoLayout)
				r.Post("/nodes/{node}/drag", s.handleDrag)
				r.Post("/hover", s.handleHover)
				r.Delete("/hover", s.handleLeave)
				r.Post("/fit", s.handleFit)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down", "sessions", s.sessions.Len())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request and records request metrics under
// the matched route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		s.metrics.observeRequest(route, r.Method, status, elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
