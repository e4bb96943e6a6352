package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/formatter"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
	"github.com/platinummonkey/vlint/pkg/middleware"
	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/server"
)

// serveOptions holds the serve command flags
type serveOptions struct {
	addr       string
	configFile string
	styleFile  string
}

// newServeCommand creates the serve command
func newServeCommand(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP lint service",
		Long: `Serve exposes linting and annotation over HTTP:

  POST /v1/lint         lint one source file
  POST /v1/annotate     annotate inter-token spacing
  GET  /v1/rules        list rules
  GET  /healthz         health checks
  GET  /metrics         Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default $VLINT_HTTP_ADDR or :8080)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Path to project config file applied to every request")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "Path to a YAML format style file for /v1/annotate")

	return cmd
}

func runServe(ctx context.Context, global *globalOptions, opts *serveOptions) error {
	cfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if cfg.Observability.OTelServiceVersion == "" {
		cfg.Observability.OTelServiceVersion = Version
	}
	logger := cfg.NewLogger()

	registry := rules.Default()
	fileCfg := linter.DefaultConfig()
	if opts.configFile != "" {
		fileCfg, err = linter.LoadConfig(opts.configFile)
		if err != nil {
			return err
		}
	}
	if err := fileCfg.Validate(registry); err != nil {
		return err
	}

	style := formatter.DefaultStyle()
	if opts.styleFile != "" {
		style, err = formatter.LoadStyle(opts.styleFile)
		if err != nil {
			return err
		}
	}

	providers, err := observability.InitOTel(ctx, cfg.OTelConfig(), logger)
	if err != nil {
		return err
	}
	otelMetrics, err := observability.NewOTelMetrics()
	if err != nil {
		return err
	}

	serverOpts := []server.Option{
		server.WithLogger(logger),
		server.WithOTelMetrics(otelMetrics),
		server.WithStyle(style),
		server.WithHealthChecker(observability.NewHealthChecker(Version)),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	}

	if cfg.Server.RateLimit > 0 {
		serverOpts = append(serverOpts, server.WithRateLimiter(middleware.NewRateLimiter(&middleware.RateLimitConfig{
			RequestsPerWindow: cfg.Server.RateLimit,
			WindowDuration:    time.Minute,
			BurstSize:         cfg.Server.RateBurst,
		})))
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		promRegistry := prometheus.NewRegistry()
		metrics = observability.NewMetrics(promRegistry)
		serverOpts = append(serverOpts, server.WithMetrics(metrics, promRegistry))
	}

	var reportCache *cache.ReportCache
	if cfg.Runner.CacheSize > 0 {
		reportCache, err = cache.New(cfg.Runner.CacheSize, cfg.Runner.CacheTTL, cache.WithMetrics(metrics))
		if err != nil {
			return err
		}
		serverOpts = append(serverOpts, server.WithCache(reportCache))
	}

	srv := server.New(registry, fileCfg, serverOpts...)
	return srv.Run(ctx, cfg.Server,
		func(ctx context.Context) error {
			if reportCache != nil {
				reportCache.Purge()
			}
			return nil
		},
		func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, providers, logger)
		},
	)
}
