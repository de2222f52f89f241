package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/telemetry"
)

// LifecycleHooks run around the HTTP listener. OnStart hooks run in order
// before serving; OnStop hooks run in reverse order after shutdown.
type LifecycleHooks struct {
	Name    string
	OnStart func(ctx context.Context) error
	OnStop  func(ctx context.Context) error
}

// Module contributes routes to a router.
type Module interface {
	RegisterRoutes(r chi.Router)
}

type Server struct {
	config *config.Config
	logger logger.Logger
	router chi.Router
	hooks  []LifecycleHooks
	addr   string
}

func New(cfg *config.Config, log logger.Logger, middlewares ...func(http.Handler) http.Handler) *Server {
	if log == nil {
		log = logger.NewNoopLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Handle("/metrics", telemetry.Handler())

	return &Server{
		config: cfg,
		logger: log,
		router: r,
		addr:   ":" + cfg.GetStringOrDef("web.port", "8080"),
	}
}

func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// MountCallables registers modules under /callable with a request timeout.
func (s *Server) MountCallables(modules ...Module) {
	timeout := s.config.GetDuration("web.request_timeout", 30*time.Second)
	s.router.Route("/callable", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))
		for _, m := range modules {
			m.RegisterRoutes(r)
		}
	})
}

// Mount registers modules at the router root.
func (s *Server) Mount(modules ...Module) {
	for _, m := range modules {
		m.RegisterRoutes(s.router)
	}
}

func (s *Server) AddLifecycle(hooks ...LifecycleHooks) {
	s.hooks = append(s.hooks, hooks...)
}

// Run starts hooks, serves until ctx is done and shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	started := 0
	for _, h := range s.hooks {
		if h.OnStart != nil {
			if err := h.OnStart(ctx); err != nil {
				s.stop(started)
				return fmt.Errorf("cannot start %s: %w", h.Name, err)
			}
		}
		started++
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("cannot shutdown http server", "error", err)
	}

	s.stop(started)
	return runErr
}

func (s *Server) stop(n int) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for i := n - 1; i >= 0; i-- {
		h := s.hooks[i]
		if h.OnStop == nil {
			continue
		}
		if err := h.OnStop(ctx); err != nil {
			s.logger.Error("cannot stop component", "component", h.Name, "error", err)
		}
	}
}

// RequestLogger logs one debug line per request.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request handled",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(started),
			)
		})
	}
}
