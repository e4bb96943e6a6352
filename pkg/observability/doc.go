// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// This package centralizes the ambient infrastructure shared by the vlint
// CLI and server: logrus-backed JSON logging, lint and annotator metrics,
// health checks, graceful shutdown and OTLP export.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stderr)
//	logger.WithField("path", "rtl/top.sv").Info("Linting file")
//
// Carry it through a run:
//
//	ctx = observability.WithRunID(ctx, runID)
//	ctx = observability.WithLogger(ctx, logger)
//	observability.FromContext(ctx).Warn("Syntax error")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordLint("cli", observability.LintStatusViolations, elapsed, byRule)
//	metrics.RecordAnnotation(stats.Pairs, stats.Unhandled)
//
// The CLI can dump the registry for node_exporter with WriteToTextfile;
// the server exposes it through MetricsHandler.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(version)
//	checker.AddCheck("rules", true, func(ctx context.Context) error { ... })
//	observability.RegisterHealthRoutes(router, checker)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:  true,
//		Endpoint: "otel-collector:4317",
//		Insecure: true,
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/server: Request logging middleware
package observability
