package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName  string
	RuleTopic string

	violations linter.ViolationSet
}

func (r *BaseRule) Name() string  { return r.RuleName }
func (r *BaseRule) Topic() string { return r.RuleTopic }

// Report returns the violations collected so far with the rule's citation
func (r *BaseRule) Report() linter.RuleStatus {
	return linter.NewRuleStatus(r.RuleName, linter.StyleGuideCitation(r.RuleTopic), &r.violations)
}

func (r *BaseRule) addViolation(tok token.Token, message string, ctx cst.Context) {
	r.violations.Add(linter.Violation{Token: tok, Message: message, Context: ctx})
}

// addTokenViolation records a violation found outside the syntax tree.
func (r *BaseRule) addTokenViolation(tok token.Token, message string) {
	r.addViolation(tok, message, cst.Context{})
}

// cite renders the topic reference ending a description.
func (r *BaseRule) cite(mode linter.DescriptionType) string {
	if mode == linter.Markdown {
		return linter.StyleGuideLink(r.RuleTopic)
	}
	return linter.StyleGuideCitation(r.RuleTopic)
}

// treeRule supplies no-op handlers so syntax tree rules implement only the
// callback they need.
type treeRule struct {
	BaseRule
}

func (*treeRule) HandleNode(*cst.Node, cst.Context) {}
func (*treeRule) HandleLeaf(*cst.Leaf, cst.Context) {}

// parseParams splits "key:value;key:value" rule parameters. Keys must be
// among allowed.
func parseParams(params string, allowed ...string) (map[string]string, error) {
	settings := make(map[string]string)
	for _, entry := range strings.Split(params, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, ":")
		key = strings.TrimSpace(key)
		if !ok {
			return nil, fmt.Errorf("expected key:value, got %q", entry)
		}
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("unknown parameter %q, expected one of %s", key, strings.Join(allowed, ", "))
		}
		settings[key] = strings.TrimSpace(value)
	}
	return settings, nil
}

// describedRule is what every built-in rule provides.
type describedRule interface {
	linter.Rule
	Topic() string
	GetDescription(mode linter.DescriptionType) string
}
