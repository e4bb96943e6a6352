package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(path string) *linter.FileReport {
	return &linter.FileReport{FilePath: path, Findings: []linter.Finding{}}
}

func TestNew(t *testing.T) {
	_, err := New(0, time.Minute)
	assert.Error(t, err)

	c, err := New(4, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Stats().Size)
}

func TestReportCache_GetPut(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	key := Key("a.sv", "cfg", "module a;\nendmodule\n")

	_, err = c.Get(key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Put(key, report("a.sv")))
	got, err := c.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "a.sv", got.FilePath)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestReportCache_InvalidInput(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)

	_, err = c.Get("")
	assert.True(t, errors.Is(err, ErrInvalidCacheKey))
	assert.ErrorIs(t, c.Put("", report("a.sv")), ErrInvalidCacheKey)
	assert.Error(t, c.Put("k", nil))
}

func TestReportCache_Eviction(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	c, err := New(2, time.Minute, WithMetrics(metrics))
	require.NoError(t, err)

	require.NoError(t, c.Put("a", report("a.sv")))
	require.NoError(t, c.Put("b", report("b.sv")))
	require.NoError(t, c.Put("c", report("c.sv")))

	_, err = c.Get("a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheEvictionsTotal.WithLabelValues("reports")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.CacheEntries.WithLabelValues("reports")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheMissesTotal.WithLabelValues("reports")))
}

func TestReportCache_Expiry(t *testing.T) {
	c, err := New(4, 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, c.Put("a", report("a.sv")))
	assert.Eventually(t, func() bool {
		_, err := c.Get("a")
		return errors.Is(err, ErrCacheMiss)
	}, time.Second, 10*time.Millisecond)
}

func TestReportCache_Purge(t *testing.T) {
	c, err := New(4, time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.Put("a", report("a.sv")))

	c.Purge()
	assert.Equal(t, 0, c.Stats().Size)
}

func TestKey(t *testing.T) {
	base := Key("a.sv", "f1", "module a;")

	assert.Len(t, base, 16)
	assert.Equal(t, base, Key("a.sv", "f1", "module a;"))

	tests := []struct {
		name                        string
		path, fingerprint, contents string
	}{
		{"path", "b.sv", "f1", "module a;"},
		{"fingerprint", "a.sv", "f2", "module a;"},
		{"contents", "a.sv", "f1", "module b;"},
		{"field boundary", "a.svf", "1", "module a;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, Key(tt.path, tt.fingerprint, tt.contents))
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("no-tabs,posix-eof"), Fingerprint("no-tabs,posix-eof"))
	assert.NotEqual(t, Fingerprint("no-tabs"), Fingerprint("no-tabs,posix-eof"))
	assert.Len(t, Fingerprint(""), 16)
}
