package rules

import (
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/matcher"
)

// AlwaysCombRule flags "always @*" in favor of always_comb
type AlwaysCombRule struct {
	treeRule
	alwaysStar matcher.Matcher
}

// NewAlwaysCombRule creates a new always-comb rule
func NewAlwaysCombRule() *AlwaysCombRule {
	return &AlwaysCombRule{
		treeRule: treeRule{BaseRule: BaseRule{
			RuleName:  "always-comb",
			RuleTopic: "combinational-logic",
		}},
		alwaysStar: matcher.AlwaysStar(),
	}
}

func (r *AlwaysCombRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that there are no occurrences of " + linter.Codify("always @*", mode) +
		". Use " + linter.Codify("always_comb", mode) + " instead. See " + r.cite(mode) + "."
}

func (r *AlwaysCombRule) HandleNode(n *cst.Node, ctx cst.Context) {
	if !r.alwaysStar.Matches(n, nil) {
		return
	}
	if leaf := cst.LeftmostLeaf(n); leaf != nil {
		r.addViolation(leaf.Token, "Use 'always_comb' instead of 'always @*'.", ctx)
	}
}
