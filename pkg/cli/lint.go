package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/runner"
)

// lintOptions holds the lint command flags
type lintOptions struct {
	ruleSet         linter.RuleSet
	rules           linter.RuleBundle
	configFile      string
	format          string
	workers         int
	watch           bool
	metricsFile     string
	failOnViolation bool
}

// newLintCommand creates the lint command
func newLintCommand(global *globalOptions) *cobra.Command {
	registry := rules.Default()
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Verilog files for style and correctness",
		Long: `Lint analyzes Verilog and SystemVerilog sources. Directories are walked
recursively; hidden, vendor and build directories are skipped.

Rules start from the project rule set and are adjusted by --rules:

  vlint lint --ruleset=all --rules=-no-tabs,line-length=length:120 rtl/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runLint(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), global, registry, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.Var(&opts.ruleSet, "ruleset", "Starting rule set: none, default, all (default from the project config)")
	flags.Var(linter.NewBundleValue(&opts.rules, registry), "rules", "Comma-separated rule overrides: rule, -rule, rule=param:value")
	flags.StringVar(&opts.configFile, "config", "", "Path to project config file (default: search .vlint.yaml in the first path)")
	flags.StringVar(&opts.format, "format", "text", "Output format: text, json, github")
	flags.IntVar(&opts.workers, "workers", 0, "Number of files linted in parallel (default $VLINT_WORKERS)")
	flags.BoolVar(&opts.watch, "watch", false, "Relint files as they change")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	flags.BoolVar(&opts.failOnViolation, "fail-on-violation", true, "Exit with an error code when violations are found")

	return cmd
}

func runLint(ctx context.Context, stdout, stderr io.Writer, global *globalOptions, registry *linter.Registry, opts *lintOptions, paths []string) error {
	switch opts.format {
	case "text", "json", "github":
	default:
		return fmt.Errorf("%w %q: expected text, json or github", ErrUnknownFormat, opts.format)
	}

	procCfg, err := global.loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(procCfg, stderr)

	fileCfg, err := lintLoadProjectConfig(opts.configFile, paths[0])
	if err != nil {
		return err
	}
	if err := fileCfg.Validate(registry); err != nil {
		return err
	}

	workers := opts.workers
	if workers <= 0 {
		workers = procCfg.Runner.Workers
	}

	var metrics *observability.Metrics
	if opts.metricsFile != "" {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithMetrics(metrics),
		runner.WithWorkers(workers),
		runner.WithRuleSet(opts.ruleSet),
		runner.WithRuleBundle(opts.rules),
	}
	if opts.watch && procCfg.Runner.CacheSize > 0 {
		reportCache, err := cache.New(procCfg.Runner.CacheSize, procCfg.Runner.CacheTTL, cache.WithMetrics(metrics))
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, runner.WithCache(reportCache))
	}
	r := runner.New(registry, fileCfg, runnerOpts...)

	files, err := runner.FindFiles(r.Config(), paths...)
	if err != nil {
		return fmt.Errorf("failed to find Verilog files: %w", err)
	}

	var reports []*linter.FileReport
	if len(files) == 0 {
		logger.WithField("paths", paths).Warn("No Verilog files found")
	} else {
		reports, err = r.LintFiles(ctx, files)
		if err != nil {
			return err
		}
	}

	summary := linter.GenerateSummary(reports)
	if err := lintOutput(stdout, opts.format, reports, summary); err != nil {
		return err
	}

	if opts.metricsFile != "" {
		if err := metrics.WriteToTextfile(opts.metricsFile); err != nil {
			return err
		}
	}

	if opts.watch {
		return lintWatch(ctx, stdout, r, opts.format, paths)
	}

	if opts.failOnViolation && (summary.TotalViolations > 0 || summary.SyntaxErrors > 0) {
		return fmt.Errorf("%w: %d violations in %d files", ErrViolationsFound, summary.TotalViolations, summary.FilesWithViolations)
	}
	return nil
}

// lintLoadProjectConfig reads the explicit config file, or searches the
// directory of the first path
func lintLoadProjectConfig(configFile, firstPath string) (*linter.Config, error) {
	if configFile != "" {
		cfg, err := linter.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	dir := firstPath
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	cfg, _, err := linter.LoadConfigFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// lintWatch prints each relinted file until interrupted
func lintWatch(ctx context.Context, w io.Writer, r *runner.Runner, format string, paths []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return r.Watch(ctx, paths, func(report *linter.FileReport) {
		reports := []*linter.FileReport{report}
		_ = lintOutput(w, format, reports, linter.GenerateSummary(reports))
	})
}
