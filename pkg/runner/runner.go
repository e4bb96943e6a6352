package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/observability"
)

// SourceCLI and SourceServer label where a lint run came from.
const (
	SourceCLI    = "cli"
	SourceServer = "server"
)

// Runner lints files in parallel against a project configuration. The
// registry is shared read-only; every file gets its own linter.
type Runner struct {
	registry *linter.Registry
	config   *linter.Config

	logger      *observability.Logger
	metrics     *observability.Metrics
	otelMetrics *observability.OTelMetrics
	tracer      trace.Tracer
	cache       *cache.ReportCache
	workers     int
	source      string
	bundle      linter.RuleBundle
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the run logger
func WithLogger(logger *observability.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records per-file Prometheus metrics
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithOTelMetrics records per-run OpenTelemetry metrics
func WithOTelMetrics(m *observability.OTelMetrics) Option {
	return func(r *Runner) { r.otelMetrics = m }
}

// WithCache reuses reports for unchanged files
func WithCache(c *cache.ReportCache) Option {
	return func(r *Runner) { r.cache = c }
}

// WithWorkers bounds the number of files linted at once. Values below one
// use the CPU count.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithSource sets the metrics source label
func WithSource(source string) Option {
	return func(r *Runner) { r.source = source }
}

// WithRuleBundle applies bundle after the project configuration
func WithRuleBundle(bundle linter.RuleBundle) Option {
	return func(r *Runner) { r.bundle.Merge(bundle) }
}

// WithRuleSet replaces the project's rule set
func WithRuleSet(set linter.RuleSet) Option {
	return func(r *Runner) {
		if set != "" {
			r.config.RuleSet = set
		}
	}
}

// New creates a runner. A nil fileCfg uses linter.DefaultConfig.
func New(registry *linter.Registry, fileCfg *linter.Config, opts ...Option) *Runner {
	if fileCfg == nil {
		fileCfg = linter.DefaultConfig()
	}
	cfgCopy := *fileCfg
	r := &Runner{
		registry: registry,
		config:   &cfgCopy,
		logger:   observability.NopLogger(),
		tracer:   observability.Tracer(),
		source:   SourceCLI,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.NumCPU()
	}
	return r
}

// Config returns the effective project configuration
func (r *Runner) Config() *linter.Config {
	return r.config
}

// Registry returns the rule registry
func (r *Runner) Registry() *linter.Registry {
	return r.registry
}

// Configuration resolves the rule configuration for path.
func (r *Runner) Configuration(path string) (*linter.Configuration, error) {
	return r.config.ConfigurationFor(r.registry, path, r.bundle)
}

// LintFiles lints every path and returns the reports in input order. A file
// that cannot be read or scanned fails the run; syntax errors do not.
func (r *Runner) LintFiles(ctx context.Context, paths []string) ([]*linter.FileReport, error) {
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	logger := r.logger.WithField("run_id", runID)

	ctx, span := r.tracer.Start(ctx, "runner.LintFiles", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("files", len(paths)),
		attribute.Int("workers", r.workers),
	))
	defer span.End()

	start := time.Now()
	logger.WithField("files", len(paths)).Debug("Starting lint run")

	reports := make([]*linter.FileReport, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)

	for i, path := range paths {
		i, path := i, path
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("%s: %w", path, observability.MustRecover(rec))
				}
			}()
			if err := egCtx.Err(); err != nil {
				return err
			}
			report, err := r.LintFile(egCtx, path)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	err := eg.Wait()
	violations := linter.GenerateSummary(reports).TotalViolations
	if r.otelMetrics != nil {
		r.otelMetrics.RecordLintRun(ctx, r.source, len(paths), violations, time.Since(start), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WithError(err).Error("Lint run failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("violations", violations))
	logger.WithFields(map[string]interface{}{
		"files":      len(paths),
		"violations": violations,
		"duration":   time.Since(start).String(),
	}).Info("Lint run complete")
	return reports, nil
}

// LintFile reads and lints one file.
func (r *Runner) LintFile(ctx context.Context, path string) (*linter.FileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.metrics.RecordLint(r.source, observability.LintStatusError, 0, nil)
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.LintSource(ctx, path, string(data))
}

// LintSource lints contents as the file path, consulting the cache first.
func (r *Runner) LintSource(ctx context.Context, path, contents string) (*linter.FileReport, error) {
	logger := observability.UpdateLoggerWithTraceContext(ctx, r.logger.WithField("path", path))

	cfg, err := r.Configuration(path)
	if err != nil {
		return nil, err
	}

	var key string
	if r.cache != nil {
		key = cache.Key(path, cache.Fingerprint(canonical(cfg)), contents)
		if report, err := r.cache.Get(key); err == nil {
			logger.Debug("Using cached report")
			return report, nil
		}
	}

	start := time.Now()
	report, err := linter.LintTextContext(ctx, r.registry, cfg, path, contents,
		linter.WithLogger(logger), linter.WithTracer(r.tracer))
	elapsed := time.Since(start)
	if err != nil {
		r.metrics.RecordLint(r.source, observability.LintStatusError, elapsed, nil)
		return nil, err
	}

	r.metrics.RecordLint(r.source, lintStatus(report), elapsed, linter.GenerateSummary([]*linter.FileReport{report}).ByRule)
	if report.SyntaxError != "" {
		logger.WithField("syntax_error", report.SyntaxError).Warn("File only partially parsed")
	}
	logger.WithField("findings", len(report.Findings)).Debug("Linted file")

	if r.cache != nil {
		if err := r.cache.Put(key, report); err != nil && !errors.Is(err, cache.ErrInvalidCacheKey) {
			logger.WithError(err).Warn("Failed to cache report")
		}
	}
	return report, nil
}

func lintStatus(report *linter.FileReport) string {
	switch {
	case report.SyntaxError != "":
		return observability.LintStatusSyntaxError
	case report.HasViolations():
		return observability.LintStatusViolations
	default:
		return observability.LintStatusClean
	}
}

// canonical renders the active rules with their parameters in name order.
func canonical(cfg *linter.Configuration) string {
	ids := cfg.ActiveRuleIDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if params := cfg.RuleParams(id); params != "" {
			id += "=" + params
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, ",")
}
