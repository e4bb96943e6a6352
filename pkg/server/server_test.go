package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/formatter"
	"github.com/platinummonkey/vlint/pkg/httputil"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
	"github.com/platinummonkey/vlint/pkg/middleware"
	"github.com/platinummonkey/vlint/pkg/observability"
)

const tabbedSource = "module tabbed;\n\twire w;\nendmodule\n"

func newTestServer(t *testing.T, opts ...Option) (*Server, *observability.Metrics) {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	opts = append([]Option{WithMetrics(metrics, registry)}, opts...)
	return New(rules.Default(), linter.DefaultConfig(), opts...), metrics
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleLint(t *testing.T) {
	srv, metrics := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name     string
		req      LintRequest
		status   int
		findings []string
	}{
		{
			name:     "default rules",
			req:      LintRequest{Filename: "tabbed.sv", Contents: tabbedSource},
			status:   http.StatusOK,
			findings: []string{"no-tabs"},
		},
		{
			name:     "rule set none",
			req:      LintRequest{Filename: "tabbed.sv", Contents: tabbedSource, RuleSet: "none"},
			status:   http.StatusOK,
			findings: []string{},
		},
		{
			name:     "bundle disables rule",
			req:      LintRequest{Filename: "tabbed.sv", Contents: tabbedSource, Rules: "-no-tabs"},
			status:   http.StatusOK,
			findings: []string{},
		},
		{
			name:     "default filename",
			req:      LintRequest{Contents: "module m;\nendmodule"},
			status:   http.StatusOK,
			findings: []string{"posix-eof"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/lint", tt.req)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var report linter.FileReport
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
			got := make([]string, 0)
			for _, f := range report.Findings {
				got = append(got, f.Rule)
			}
			assert.Equal(t, tt.findings, got)
			if tt.req.Filename == "" {
				assert.Equal(t, defaultFilename, report.FilePath)
			}
		})
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ViolationsTotal.WithLabelValues("no-tabs")))
	assert.NotEmpty(t, do(t, h, http.MethodPost, "/v1/lint", LintRequest{Contents: tabbedSource}).Header().Get(httputil.RequestIDHeader))
}

func TestHandleLint_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		body   interface{}
		status int
		error  string
	}{
		{"malformed JSON", `{"contents":`, http.StatusBadRequest, "invalid JSON"},
		{"unknown field", `{"source":"module m; endmodule"}`, http.StatusBadRequest, "unknown field"},
		{"bad rule set", LintRequest{Contents: "", RuleSet: "most"}, http.StatusBadRequest, "invalid rule set"},
		{"unknown rule", LintRequest{Contents: "", Rules: "no-such-rule"}, http.StatusBadRequest, "invalid flag"},
		{"bad params", LintRequest{Contents: "", Rules: "line-length=length:zero"}, http.StatusBadRequest, "length must be a positive integer"},
		{"scan failure", LintRequest{Contents: "module m; \"unterminated\nendmodule\n"}, http.StatusUnprocessableEntity, "failed to analyze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/lint", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body httputil.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.error)
		})
	}

	t.Run("bundle details", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/lint", LintRequest{Rules: "no-tabs,bogus"})
		var body httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "no-tabs,bogus", body.Details["rules"])
	})
}

func TestHandleLint_Cache(t *testing.T) {
	c, err := cache.New(8, time.Minute)
	require.NoError(t, err)
	srv, _ := newTestServer(t, WithCache(c))
	h := srv.Handler()

	for i := 0; i < 3; i++ {
		rec := do(t, h, http.MethodPost, "/v1/lint", LintRequest{Filename: "a.sv", Contents: tabbedSource})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, int64(2), c.Stats().Hits)
}

func TestHandleAnnotate(t *testing.T) {
	srv, metrics := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/v1/annotate", AnnotateRequest{Contents: "module m;\nendmodule\n"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnnotateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tokens, 4)
	assert.Equal(t, formatter.Stats{Pairs: 3}, resp.Stats)

	assert.Equal(t, "module", resp.Tokens[0].Text)
	assert.Equal(t, "keyword", resp.Tokens[0].FormatType)
	assert.Equal(t, "m", resp.Tokens[1].Text)
	assert.Equal(t, 1, resp.Tokens[1].Spaces)
	assert.Equal(t, ";", resp.Tokens[2].Text)
	assert.Equal(t, 0, resp.Tokens[2].Spaces)
	assert.Equal(t, "endmodule", resp.Tokens[3].Text)

	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.AnnotatedPairsTotal))
}

func TestHandleAnnotate_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	badStyle := formatter.DefaultStyle()
	badStyle.ColumnLimit = 0
	rec := do(t, h, http.MethodPost, "/v1/annotate", AnnotateRequest{Contents: "module m;\nendmodule\n", Style: &badStyle})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/annotate", AnnotateRequest{Contents: "\"open"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRules(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/v1/rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Rules []RuleInfo `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Rules, len(rules.Default().AllNames()))

	rec = do(t, h, http.MethodGet, "/v1/rules?kind=line", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	for _, r := range list.Rules {
		assert.Equal(t, "line", r.Kind)
	}
	assert.NotEmpty(t, list.Rules)

	rec = do(t, h, http.MethodGet, "/v1/rules/no-tabs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info RuleInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "no-tabs", info.Name)
	assert.True(t, info.DefaultEnabled)
	assert.NotEmpty(t, info.Description)

	rec = do(t, h, http.MethodGet, "/v1/rules/no-such-rule", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/rules?markdown=perhaps", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rules"`)

	do(t, h, http.MethodGet, "/v1/rules", nil)
	rec = do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `vlint_http_requests_total{method="GET",path="/v1/rules",status="200"}`))
}

func TestHealth_NoRules(t *testing.T) {
	srv := New(linter.NewRegistry(), nil)
	rec := do(t, srv.Handler(), http.MethodGet, "/healthz/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/v1/lint", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMaxBodyBytes(t *testing.T) {
	srv, _ := newTestServer(t, WithMaxBodyBytes(32))
	rec := do(t, srv.Handler(), http.MethodPost, "/v1/lint", LintRequest{Contents: strings.Repeat("x", 128)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "exceeds 32 bytes")
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(&middleware.RateLimitConfig{
		RequestsPerWindow: 1,
		WindowDuration:    time.Minute,
	})
	srv, metrics := newTestServer(t, WithRateLimiter(limiter))
	h := srv.Handler()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/rules", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, http.MethodGet, "/v1/rules", nil).Code)

	// Health checks are not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz/live", nil).Code)

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/v1/rules", "429"))
	assert.Equal(t, float64(1), got)
}
