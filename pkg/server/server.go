package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/config"
	"github.com/platinummonkey/vlint/pkg/formatter"
	"github.com/platinummonkey/vlint/pkg/httputil"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/middleware"
	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/runner"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 4 << 20

// Server is the HTTP lint service
type Server struct {
	registry *linter.Registry
	fileCfg  *linter.Config
	style    formatter.Style

	logger       *observability.Logger
	metrics      *observability.Metrics
	promRegistry *prometheus.Registry
	otelMetrics  *observability.OTelMetrics
	cache        *cache.ReportCache
	health       *observability.HealthChecker
	limiter      *middleware.RateLimiter
	maxBodyBytes int64

	router *mux.Router
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger
func WithLogger(logger *observability.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records Prometheus metrics and serves registry at /metrics
func WithMetrics(metrics *observability.Metrics, registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = metrics
		s.promRegistry = registry
	}
}

// WithOTelMetrics records OpenTelemetry request and lint metrics
func WithOTelMetrics(m *observability.OTelMetrics) Option {
	return func(s *Server) { s.otelMetrics = m }
}

// WithCache shares a report cache between requests
func WithCache(c *cache.ReportCache) Option {
	return func(s *Server) { s.cache = c }
}

// WithStyle sets the annotator style for /v1/annotate
func WithStyle(style formatter.Style) Option {
	return func(s *Server) { s.style = style }
}

// WithHealthChecker replaces the default health checker
func WithHealthChecker(h *observability.HealthChecker) Option {
	return func(s *Server) { s.health = h }
}

// WithRateLimiter limits /v1 requests per client
func WithRateLimiter(l *middleware.RateLimiter) Option {
	return func(s *Server) { s.limiter = l }
}

// WithMaxBodyBytes bounds request body sizes
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New creates a server linting with registry. A nil fileCfg uses
// linter.DefaultConfig.
func New(registry *linter.Registry, fileCfg *linter.Config, opts ...Option) *Server {
	if fileCfg == nil {
		fileCfg = linter.DefaultConfig()
	}
	s := &Server{
		registry:     registry,
		fileCfg:      fileCfg,
		style:        formatter.DefaultStyle(),
		logger:       observability.NopLogger(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.health == nil {
		s.health = observability.NewHealthChecker("")
	}
	s.health.AddCheck("rules", true, func(context.Context) error {
		if len(s.registry.AllNames()) == 0 {
			return errors.New("no rules registered")
		}
		return nil
	})

	s.router = mux.NewRouter()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))
	}
	if s.otelMetrics != nil {
		s.router.Use(s.otelMetricsMiddleware)
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	if s.limiter != nil {
		api.Use(s.limiter.Handler)
	}
	api.Use(httputil.MaxBytesMiddleware(s.maxBodyBytes), httputil.ContentTypeMiddleware)
	api.HandleFunc("/lint", s.handleLint).Methods(http.MethodPost)
	api.HandleFunc("/annotate", s.handleAnnotate).Methods(http.MethodPost)
	api.HandleFunc("/rules", s.handleListRules).Methods(http.MethodGet)
	api.HandleFunc("/rules/{name}", s.handleGetRule).Methods(http.MethodGet)

	observability.RegisterHealthRoutes(s.router, s.health)
	if s.promRegistry != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(s.promRegistry)).Methods(http.MethodGet)
	}
}

// Router returns the route table without the outer middleware
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler returns the fully wrapped handler: tracing, request IDs,
// logging and panic recovery around the router.
func (s *Server) Handler() http.Handler {
	chained := httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
	)(s.router)
	return otelhttp.NewHandler(chained, "vlint")
}

func (s *Server) otelMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.otelMetrics.RecordHTTPRequest(r.Context(), r.Method, route, rw.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Run serves on cfg.Addr until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then shuts down gracefully. shutdownFuncs run after
// the listener stops.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig, shutdownFuncs ...observability.ShutdownFunc) error {
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	sm := observability.NewShutdownManager(s.logger, httpServer, cfg.ShutdownTimeout)
	for _, fn := range shutdownFuncs {
		sm.RegisterShutdownFunc(fn)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", cfg.Addr).Info("Starting HTTP server")
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	shutdownDone := make(chan error, 1)
	go func() {
		shutdownDone <- sm.WaitForShutdown(waitCtx)
	}()

	select {
	case err := <-serveErr:
		cancel()
		shutdownErr := <-shutdownDone
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return shutdownErr
	case err := <-shutdownDone:
		return err
	}
}

// runnerFor builds a runner applying per-request rule overrides on top of
// the project configuration.
func (s *Server) runnerFor(ruleSet linter.RuleSet, bundle linter.RuleBundle, logger *observability.Logger) *runner.Runner {
	return runner.New(s.registry, s.fileCfg,
		runner.WithSource(runner.SourceServer),
		runner.WithLogger(logger),
		runner.WithMetrics(s.metrics),
		runner.WithOTelMetrics(s.otelMetrics),
		runner.WithCache(s.cache),
		runner.WithRuleSet(ruleSet),
		runner.WithRuleBundle(bundle),
		runner.WithWorkers(1),
	)
}
