package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
	"github.com/platinummonkey/vlint/pkg/observability"
)

const (
	cleanSource  = "module clean;\nendmodule\n"
	tabbedSource = "module tabbed;\n\twire w;\nendmodule\n"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", cleanSource)
	writeFile(t, dir, "b.v", cleanSource)
	writeFile(t, dir, "sub/c.svh", cleanSource)
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, ".git/hidden.sv", cleanSource)
	writeFile(t, dir, "vendor/lib.sv", cleanSource)
	writeFile(t, dir, "gen/top_pkg.sv", cleanSource)
	explicit := writeFile(t, t.TempDir(), "design.txt", cleanSource)

	cfg := linter.DefaultConfig()
	cfg.Ignore = []string{"*_pkg.sv"}

	files, err := FindFiles(cfg, dir, explicit, dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.sv"),
		filepath.Join(dir, "b.v"),
		filepath.Join(dir, "sub", "c.svh"),
		explicit,
	}
	assert.ElementsMatch(t, want, files)
	assert.IsIncreasing(t, files)

	_, err = FindFiles(cfg, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunner_LintFiles(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.sv", cleanSource)
	tabbed := writeFile(t, dir, "tabbed.sv", tabbedSource)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	r := New(rules.Default(), nil, WithWorkers(2), WithMetrics(metrics))

	reports, err := r.LintFiles(context.Background(), []string{tabbed, clean})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, tabbed, reports[0].FilePath)
	require.Len(t, reports[0].Findings, 1)
	assert.Equal(t, "no-tabs", reports[0].Findings[0].Rule)
	assert.Equal(t, 2, reports[0].Findings[0].Line)

	assert.Equal(t, clean, reports[1].FilePath)
	assert.Empty(t, reports[1].Findings)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesLintedTotal.WithLabelValues(SourceCLI, observability.LintStatusViolations)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.FilesLintedTotal.WithLabelValues(SourceCLI, observability.LintStatusClean)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ViolationsTotal.WithLabelValues("no-tabs")))
}

func TestRunner_LintFilesMissing(t *testing.T) {
	r := New(rules.Default(), nil)

	_, err := r.LintFiles(context.Background(), []string{filepath.Join(t.TempDir(), "absent.sv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestRunner_RuleSelection(t *testing.T) {
	registry := rules.Default()
	bundle, err := linter.ParseRuleBundle("no-tabs", registry)
	require.NoError(t, err)

	tests := []struct {
		name     string
		opts     []Option
		findings int
	}{
		{"default rules", nil, 1},
		{"none", []Option{WithRuleSet(linter.RuleSetNone)}, 0},
		{"none plus bundle", []Option{WithRuleSet(linter.RuleSetNone), WithRuleBundle(bundle)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(registry, linter.DefaultConfig(), tt.opts...)
			report, err := r.LintSource(context.Background(), "tabbed.sv", tabbedSource)
			require.NoError(t, err)
			assert.Len(t, report.Findings, tt.findings)
		})
	}
}

func TestRunner_RuleSetDoesNotMutateConfig(t *testing.T) {
	cfg := linter.DefaultConfig()
	New(rules.Default(), cfg, WithRuleSet(linter.RuleSetAll))
	assert.Equal(t, linter.RuleSetDefault, cfg.RuleSet)
}

func TestRunner_Cache(t *testing.T) {
	c, err := cache.New(16, time.Minute)
	require.NoError(t, err)
	r := New(rules.Default(), nil, WithCache(c))
	ctx := context.Background()

	first, err := r.LintSource(ctx, "tabbed.sv", tabbedSource)
	require.NoError(t, err)
	second, err := r.LintSource(ctx, "tabbed.sv", tabbedSource)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = r.LintSource(ctx, "tabbed.sv", cleanSource)
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, 2, stats.Size)
}

func TestCanonical(t *testing.T) {
	registry := rules.Default()
	cfg := linter.NewConfiguration(registry)
	cfg.UseRuleSet(linter.RuleSetNone)
	bundle, err := linter.ParseRuleBundle("no-tabs,line-length=length:80", registry)
	require.NoError(t, err)
	cfg.UseRuleBundle(bundle)

	assert.Equal(t, "line-length=length:80,no-tabs", canonical(cfg))
}

func TestRunner_Watch(t *testing.T) {
	dir := t.TempDir()
	r := New(rules.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan *linter.FileReport, 4)
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, []string{dir}, func(report *linter.FileReport) {
			reports <- report
		})
	}()

	path := filepath.Join(dir, "live.sv")
	var got *linter.FileReport
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(tabbedSource), 0o644)
		select {
		case got = <-reports:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, path, got.FilePath)
	require.NotEmpty(t, got.Findings)
	assert.Equal(t, "no-tabs", got.Findings[0].Rule)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
