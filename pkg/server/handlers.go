package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/platinummonkey/vlint/pkg/formatter"
	"github.com/platinummonkey/vlint/pkg/httputil"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

// defaultFilename is used when a lint request names no file.
const defaultFilename = "input.sv"

// LintRequest is the body of POST /v1/lint
type LintRequest struct {
	Filename string `json:"filename"`
	Contents string `json:"contents"`
	// RuleSet overrides the project rule set: none, default or all.
	RuleSet string `json:"ruleset,omitempty"`
	// Rules is a rule bundle such as "no-tabs,-line-length".
	Rules string `json:"rules,omitempty"`
}

// AnnotateRequest is the body of POST /v1/annotate
type AnnotateRequest struct {
	Contents string           `json:"contents"`
	Style    *formatter.Style `json:"style,omitempty"`
}

// AnnotatedToken is one row of an annotate response
type AnnotatedToken struct {
	Text       string `json:"text"`
	Kind       string `json:"kind"`
	FormatType string `json:"format_type"`
	Spaces     int    `json:"spaces"`
	Decision   string `json:"decision"`
	Penalty    int    `json:"penalty"`
}

// AnnotateResponse is the body returned by POST /v1/annotate
type AnnotateResponse struct {
	Tokens []AnnotatedToken `json:"tokens"`
	Stats  formatter.Stats  `json:"stats"`
}

// RuleInfo describes one registered rule
type RuleInfo struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Topic          string `json:"topic,omitempty"`
	DefaultEnabled bool   `json:"default_enabled"`
	Description    string `json:"description"`
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	var req LintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Filename == "" {
		req.Filename = defaultFilename
	}

	var ruleSet linter.RuleSet
	if req.RuleSet != "" {
		parsed, err := linter.ParseRuleSet(req.RuleSet)
		if err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		ruleSet = parsed
	}
	bundle, err := linter.ParseRuleBundle(req.Rules, s.registry)
	if err != nil {
		httputil.WriteDetailedError(w, http.StatusBadRequest, err, map[string]string{"rules": req.Rules})
		return
	}

	ctx := r.Context()
	logger := observability.FromContext(ctx)
	start := time.Now()
	report, err := s.runnerFor(ruleSet, bundle, logger).LintSource(ctx, req.Filename, req.Contents)
	if s.otelMetrics != nil {
		violations := 0
		if report != nil {
			violations = len(report.Findings)
		}
		s.otelMetrics.RecordLintRun(ctx, "server", 1, violations, time.Since(start), err)
	}
	if err != nil {
		if linter.IsConfigError(err) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		httputil.WriteUnprocessable(w, err)
		return
	}

	_ = httputil.WriteSuccess(w, report)
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	style := s.style
	if req.Style != nil {
		if err := req.Style.Validate(); err != nil {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		style = *req.Style
	}

	ts, err := parser.Analyze(req.Contents)
	if ts == nil {
		httputil.WriteUnprocessable(w, err)
		return
	}

	annotator := formatter.NewAnnotator(style)
	annotator.Logger = observability.FromContext(r.Context())
	tokens, stats, err := annotator.AnnotateText(ts)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	s.metrics.RecordAnnotation(stats.Pairs, stats.Unhandled)

	resp := AnnotateResponse{
		Tokens: make([]AnnotatedToken, 0, len(tokens)),
		Stats:  stats,
	}
	for _, t := range tokens {
		resp.Tokens = append(resp.Tokens, AnnotatedToken{
			Text:       t.Text(),
			Kind:       t.Kind().String(),
			FormatType: t.FormatType.String(),
			Spaces:     t.Before.SpacesRequired,
			Decision:   t.Before.BreakDecision.String(),
			Penalty:    t.Before.BreakPenalty,
		})
	}
	_ = httputil.WriteSuccess(w, resp)
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	markdown, err := httputil.ParseQueryBool(r, "markdown", false)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	kind := strings.ToLower(httputil.ParseQueryString(r, "kind", ""))

	rules := make([]RuleInfo, 0)
	for _, d := range s.registry.Descriptors() {
		if kind != "" && d.Kind.String() != kind {
			continue
		}
		rules = append(rules, ruleInfo(d, markdown))
	}
	_ = httputil.WriteSuccess(w, map[string]interface{}{"rules": rules})
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "name")
	if !ok {
		return
	}
	d, err := s.registry.Descriptor(name)
	if err != nil {
		httputil.WriteNotFoundError(w, err.Error())
		return
	}
	markdown, _ := httputil.ParseQueryBool(r, "markdown", false)
	_ = httputil.WriteSuccess(w, ruleInfo(d, markdown))
}

func ruleInfo(d linter.Descriptor, markdown bool) RuleInfo {
	mode := linter.HelpText
	if markdown {
		mode = linter.Markdown
	}
	return RuleInfo{
		Name:           d.Name,
		Kind:           d.Kind.String(),
		Topic:          d.Topic,
		DefaultEnabled: d.DefaultEnabled,
		Description:    d.Description(mode),
	}
}
