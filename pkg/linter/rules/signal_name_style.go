package rules

import (
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/matcher"
)

// SignalNameStyleRule checks that port names use lower_snake_case
type SignalNameStyleRule struct {
	treeRule
	ports matcher.Matcher
}

// NewSignalNameStyleRule creates a new signal-name-style rule
func NewSignalNameStyleRule() *SignalNameStyleRule {
	return &SignalNameStyleRule{
		treeRule: treeRule{BaseRule: BaseRule{
			RuleName:  "signal-name-style",
			RuleTopic: "signal-conventions",
		}},
		ports: matcher.PortNames(),
	}
}

func (r *SignalNameStyleRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that signal names use lower_snake_case naming convention. Signals are defined as " +
		"\"a net, variable, or port within a SystemVerilog design\". See " + r.cite(mode) + "."
}

func (r *SignalNameStyleRule) HandleNode(n *cst.Node, ctx cst.Context) {
	var bound matcher.BoundSymbols
	if !r.ports.Matches(n, &bound) {
		return
	}
	for _, s := range bound.All("name") {
		name := cst.AsLeaf(s)
		if name != nil && !isLowerSnakeCase(name.Token.Text) {
			r.addViolation(name.Token, "Signal names must use lower_snake_case naming convention.", ctx)
		}
	}
}
