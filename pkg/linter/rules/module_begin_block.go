package rules

import (
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/matcher"
)

// ModuleBeginBlockRule forbids begin-end blocks directly in a module body
type ModuleBeginBlockRule struct {
	treeRule
	block matcher.Matcher
}

// NewModuleBeginBlockRule creates a new module-begin-block rule
func NewModuleBeginBlockRule() *ModuleBeginBlockRule {
	return &ModuleBeginBlockRule{
		treeRule: treeRule{BaseRule: BaseRule{
			RuleName:  "module-begin-block",
			RuleTopic: "generate-constructs",
		}},
		block: matcher.BeginBlock(),
	}
}

func (r *ModuleBeginBlockRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that there are no begin-end blocks declared at the module level. See " + r.cite(mode) + "."
}

func (r *ModuleBeginBlockRule) HandleNode(n *cst.Node, ctx cst.Context) {
	if !ctx.DirectParentIs(cst.ModuleItemList) {
		return
	}
	var bound matcher.BoundSymbols
	if !r.block.Matches(n, &bound) {
		return
	}
	begin := cst.AsLeaf(bound.Get("begin"))
	r.addViolation(begin.Token, "Module-level begin-end blocks are not legal outside of generate constructs.", ctx)
}
