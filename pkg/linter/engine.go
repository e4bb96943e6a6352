package linter

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
)

const tracerName = "github.com/platinummonkey/vlint/pkg/linter"

// Linter runs one configured set of rule instances over analyzed files.
// Rule instances carry per-file state, so a Linter must not be shared
// between concurrent Lint calls.
type Linter struct {
	registry *Registry
	logger   *observability.Logger
	tracer   trace.Tracer

	configured bool
	treeRules  []SyntaxTreeRule
	tokenRules []TokenStreamRule
	lineRules  []LineRule
	textRules  []TextStructureRule
}

// Option configures a Linter
type Option func(*Linter)

// WithLogger sets the logger used for configuration diagnostics
func WithLogger(logger *observability.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// WithTracer sets the tracer used by LintContext
func WithTracer(tracer trace.Tracer) Option {
	return func(l *Linter) { l.tracer = tracer }
}

// NewLinter creates an unconfigured linter backed by registry
func NewLinter(registry *Registry, opts ...Option) *Linter {
	l := &Linter{
		registry: registry,
		logger:   observability.NopLogger(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure instantiates one rule per active rule of cfg, replacing any
// previous configuration. On error the linter is left unchanged.
func (l *Linter) Configure(cfg *Configuration) error {
	var (
		treeRules  []SyntaxTreeRule
		tokenRules []TokenStreamRule
		lineRules  []LineRule
		textRules  []TextStructureRule
	)

	for _, name := range cfg.ActiveRuleIDs() {
		rule, kind, err := l.registry.CreateInstance(name)
		if err != nil {
			return err
		}
		if params := cfg.RuleParams(name); params != "" {
			configurable, ok := rule.(Configurable)
			if !ok {
				return fmt.Errorf("%w: %s does not accept parameters", ErrInvalidRuleParams, name)
			}
			if err := configurable.Configure(params); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidRuleParams, name, err)
			}
		}

		var added bool
		switch kind {
		case KindSyntaxTree:
			var r SyntaxTreeRule
			if r, added = rule.(SyntaxTreeRule); added {
				treeRules = append(treeRules, r)
			}
		case KindTokenStream:
			var r TokenStreamRule
			if r, added = rule.(TokenStreamRule); added {
				tokenRules = append(tokenRules, r)
			}
		case KindLine:
			var r LineRule
			if r, added = rule.(LineRule); added {
				lineRules = append(lineRules, r)
			}
		case KindTextStructure:
			var r TextStructureRule
			if r, added = rule.(TextStructureRule); added {
				textRules = append(textRules, r)
			}
		}
		if !added {
			return fmt.Errorf("rule %s does not implement the %s interface", name, kind)
		}
	}

	l.treeRules, l.tokenRules, l.lineRules, l.textRules = treeRules, tokenRules, lineRules, textRules
	l.configured = true
	l.logger.WithFields(map[string]interface{}{
		"tree":  len(treeRules),
		"token": len(tokenRules),
		"line":  len(lineRules),
		"text":  len(textRules),
	}).Debugf("configured linter: %s", cfg)
	return nil
}

// Lint feeds ts to every configured rule. It panics if Configure has not
// succeeded.
func (l *Linter) Lint(ts *cst.TextStructure, filename string) {
	if !l.configured {
		panic("linter: Lint called before Configure")
	}

	if len(l.treeRules) > 0 && ts.Tree != nil {
		cst.Walk(ts.Tree, treeDispatcher(l.treeRules))
	}

	if len(l.tokenRules) > 0 {
		for _, tok := range ts.Tokens {
			if tok.IsEOF() {
				continue
			}
			for _, r := range l.tokenRules {
				r.HandleToken(tok)
			}
		}
	}

	if len(l.lineRules) > 0 {
		offset := 0
		for _, line := range ts.Lines {
			for _, r := range l.lineRules {
				r.HandleLine(line, offset)
			}
			offset += len(line) + 1
		}
		for _, r := range l.lineRules {
			r.Finalize()
		}
	}

	for _, r := range l.textRules {
		r.Lint(ts, filename)
	}
}

// LintContext is Lint wrapped in a trace span.
func (l *Linter) LintContext(ctx context.Context, ts *cst.TextStructure, filename string) {
	_, span := l.tracer.Start(ctx, "linter.Lint", trace.WithAttributes(
		attribute.String("file", filename),
		attribute.Int("rules", l.RuleCount()),
		attribute.Int("tokens", len(ts.Tokens)),
	))
	defer span.End()

	l.Lint(ts, filename)
}

// RuleCount returns the number of configured rule instances
func (l *Linter) RuleCount() int {
	return len(l.treeRules) + len(l.tokenRules) + len(l.lineRules) + len(l.textRules)
}

// ReportStatus returns one status per configured rule: syntax tree rules,
// then token stream, line and text structure rules, each group by name.
func (l *Linter) ReportStatus() []RuleStatus {
	statuses := make([]RuleStatus, 0, l.RuleCount())
	for _, r := range l.treeRules {
		statuses = append(statuses, r.Report())
	}
	for _, r := range l.tokenRules {
		statuses = append(statuses, r.Report())
	}
	for _, r := range l.lineRules {
		statuses = append(statuses, r.Report())
	}
	for _, r := range l.textRules {
		statuses = append(statuses, r.Report())
	}
	return statuses
}

type treeDispatcher []SyntaxTreeRule

func (d treeDispatcher) VisitNode(n *cst.Node, ctx cst.Context) {
	for _, r := range d {
		r.HandleNode(n, ctx)
	}
}

func (d treeDispatcher) VisitLeaf(leaf *cst.Leaf, ctx cst.Context) {
	for _, r := range d {
		r.HandleLeaf(leaf, ctx)
	}
}

// IsConfigError reports whether err came from an invalid configuration
// rather than from analysis.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrRuleNotFound) || errors.Is(err, ErrInvalidRuleParams) ||
		errors.Is(err, ErrInvalidFlag) || errors.Is(err, ErrInvalidRuleSet) ||
		errors.Is(err, ErrInvalidPolicy) || errors.Is(err, ErrInvalidConfig)
}
