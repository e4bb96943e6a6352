package linter

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*RuleSet)(nil)
	_ pflag.Value = (*BundleValue)(nil)
)

// RuleSet is a named starting point for a configuration.
type RuleSet string

const (
	RuleSetNone    RuleSet = "none"
	RuleSetDefault RuleSet = "default"
	RuleSetAll     RuleSet = "all"
)

// ParseRuleSet accepts exactly "none", "default" or "all".
func ParseRuleSet(text string) (RuleSet, error) {
	switch RuleSet(text) {
	case RuleSetNone, RuleSetDefault, RuleSetAll:
		return RuleSet(text), nil
	}
	return "", fmt.Errorf("%w %q: expected one of none, default, all", ErrInvalidRuleSet, text)
}

func (s RuleSet) String() string { return string(s) }

// Set implements pflag.Value.
func (s *RuleSet) Set(text string) error {
	parsed, err := ParseRuleSet(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *RuleSet) Type() string { return "ruleset" }

// RuleBundle is an ordered list of per-rule settings, as given on the
// command line: "rule-a,-rule-b,line-length=length:120".
type RuleBundle struct {
	Rules map[string]RuleSetting
	// Order lists each rule name once, in first-mention order.
	Order []string
}

// Put records a setting; a rule mentioned again keeps its position.
func (b *RuleBundle) Put(name string, setting RuleSetting) {
	if b.Rules == nil {
		b.Rules = make(map[string]RuleSetting)
	}
	if _, ok := b.Rules[name]; !ok {
		b.Order = append(b.Order, name)
	}
	b.Rules[name] = setting
}

// Merge applies other's entries on top of b.
func (b *RuleBundle) Merge(other RuleBundle) {
	for _, name := range other.Order {
		b.Put(name, other.Rules[name])
	}
}

// Len returns the number of rules mentioned.
func (b RuleBundle) Len() int { return len(b.Order) }

// ParseRuleBundle parses comma-separated entries. A leading '-' turns the
// rule off, "name=params" attaches parameters and surrounding whitespace is
// ignored. Every name must be registered; on error the result is empty.
func ParseRuleBundle(text string, registry *Registry) (RuleBundle, error) {
	var bundle RuleBundle
	if strings.TrimSpace(text) == "" {
		return bundle, nil
	}
	for _, entry := range strings.Split(text, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		setting := RuleSetting{Enabled: true}
		if strings.HasPrefix(entry, "-") {
			setting.Enabled = false
			entry = strings.TrimSpace(entry[1:])
		}
		name := entry
		if i := strings.IndexByte(entry, '='); i >= 0 {
			name = strings.TrimSpace(entry[:i])
			setting.Params = strings.TrimSpace(entry[i+1:])
		}
		if !registry.IsRegistered(name) {
			return RuleBundle{}, fmt.Errorf("%w %q", ErrInvalidFlag, name)
		}
		bundle.Put(name, setting)
	}
	return bundle, nil
}

// Unparse renders the bundle in its internal order joined by sep.
func (b RuleBundle) Unparse(sep string) string {
	parts := make([]string, 0, len(b.Order))
	for _, name := range b.Order {
		s := b.Rules[name]
		part := name
		if !s.Enabled {
			part = "-" + name
		}
		if s.Params != "" {
			part += "=" + s.Params
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, sep)
}

// BundleValue binds a RuleBundle to a registry as a pflag.Value. Repeated
// flags accumulate, later mentions winning.
type BundleValue struct {
	Bundle   *RuleBundle
	Registry *Registry
}

// NewBundleValue returns a flag value writing into bundle.
func NewBundleValue(bundle *RuleBundle, registry *Registry) *BundleValue {
	return &BundleValue{Bundle: bundle, Registry: registry}
}

func (v *BundleValue) String() string {
	if v == nil || v.Bundle == nil {
		return ""
	}
	return v.Bundle.Unparse(",")
}

// Set implements pflag.Value.
func (v *BundleValue) Set(text string) error {
	parsed, err := ParseRuleBundle(text, v.Registry)
	if err != nil {
		return err
	}
	v.Bundle.Merge(parsed)
	return nil
}

// Type implements pflag.Value.
func (v *BundleValue) Type() string { return "rules" }
