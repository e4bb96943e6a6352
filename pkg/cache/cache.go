package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/observability"
)

// DefaultTTL is used when New is given a zero ttl.
const DefaultTTL = 10 * time.Minute

const cacheType = "reports"

// Stats is a snapshot of cache counters
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Size      int     `json:"size"`
	HitRate   float64 `json:"hit_rate"`
}

// ReportCache is an in-memory LRU of lint reports with expiry. It is safe
// for concurrent use.
type ReportCache struct {
	lru     *lru.LRU[string, *linter.FileReport]
	metrics *observability.Metrics

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Option configures a ReportCache
type Option func(*ReportCache)

// WithMetrics mirrors hits, misses, evictions and size into Prometheus.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *ReportCache) { c.metrics = m }
}

// New creates a cache holding at most maxEntries reports for ttl each.
func New(maxEntries int, ttl time.Duration, opts ...Option) (*ReportCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("max entries must be positive, got %d", maxEntries)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &ReportCache{}
	for _, opt := range opts {
		opt(c)
	}
	c.lru = lru.NewLRU[string, *linter.FileReport](maxEntries, c.onEvict, ttl)
	return c, nil
}

func (c *ReportCache) onEvict(_ string, _ *linter.FileReport) {
	c.evictions.Add(1)
	c.metrics.RecordCacheEviction(cacheType)
}

// Get returns the report stored under key or ErrCacheMiss.
func (c *ReportCache) Get(key string) (*linter.FileReport, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	report, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		c.metrics.RecordCacheMiss(cacheType)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	c.metrics.RecordCacheHit(cacheType)
	return report, nil
}

// Put stores report under key. Reports are shared between callers and
// must not be modified after Put.
func (c *ReportCache) Put(key string, report *linter.FileReport) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	c.lru.Add(key, report)
	c.metrics.SetCacheEntries(cacheType, c.lru.Len())
	return nil
}

// Purge drops every entry
func (c *ReportCache) Purge() {
	c.lru.Purge()
	c.metrics.SetCacheEntries(cacheType, 0)
}

// Stats returns cache statistics
func (c *ReportCache) Stats() Stats {
	stats := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
