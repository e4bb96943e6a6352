package linter

import (
	"sort"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// Violation is one finding of one rule, anchored at a token.
type Violation struct {
	Token   token.Token
	Message string
	// Context is the ancestor stack of the offending leaf, if any.
	Context cst.Context
}

type violationKey struct {
	offset  int
	message string
}

// ViolationSet collects violations; two violations at the same offset with
// the same message are one violation.
type ViolationSet struct {
	items map[violationKey]Violation
}

// Add inserts v unless an equal violation is already present.
func (s *ViolationSet) Add(v Violation) {
	if s.items == nil {
		s.items = make(map[violationKey]Violation)
	}
	key := violationKey{offset: v.Token.Offset, message: v.Message}
	if _, ok := s.items[key]; !ok {
		s.items[key] = v
	}
}

// Len returns the number of distinct violations.
func (s *ViolationSet) Len() int { return len(s.items) }

// Sorted returns the violations ordered by offset, then message.
func (s *ViolationSet) Sorted() []Violation {
	out := make([]Violation, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Token.Offset != out[j].Token.Offset {
			return out[i].Token.Offset < out[j].Token.Offset
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// RuleStatus is the report of one rule after linting one file.
type RuleStatus struct {
	RuleName   string
	Citation   string
	Violations []Violation
}

// NewRuleStatus snapshots a violation set.
func NewRuleStatus(name, citation string, set *ViolationSet) RuleStatus {
	return RuleStatus{RuleName: name, Citation: citation, Violations: set.Sorted()}
}

// IsOK reports whether the rule found nothing.
func (s RuleStatus) IsOK() bool { return len(s.Violations) == 0 }
