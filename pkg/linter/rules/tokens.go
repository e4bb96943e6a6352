package rules

import (
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// ForbidDefparamRule flags every defparam statement
type ForbidDefparamRule struct {
	BaseRule
}

// NewForbidDefparamRule creates a new forbid-defparam rule
func NewForbidDefparamRule() *ForbidDefparamRule {
	return &ForbidDefparamRule{
		BaseRule: BaseRule{
			RuleName:  "forbid-defparam",
			RuleTopic: "module-instantiation",
		},
	}
}

func (r *ForbidDefparamRule) GetDescription(mode linter.DescriptionType) string {
	return "Do not use " + linter.Codify("defparam", mode) + ". See " + r.cite(mode) + "."
}

func (r *ForbidDefparamRule) HandleToken(tok token.Token) {
	if tok.Kind == token.KwDefparam {
		r.addTokenViolation(tok, "Do not use defparam.")
	}
}

// MacroNameStyleRule checks that macro names are ALL_CAPS
type MacroNameStyleRule struct {
	BaseRule
	afterDefine bool
}

// NewMacroNameStyleRule creates a new macro-name-style rule
func NewMacroNameStyleRule() *MacroNameStyleRule {
	return &MacroNameStyleRule{
		BaseRule: BaseRule{
			RuleName:  "macro-name-style",
			RuleTopic: "defines",
		},
	}
}

func (r *MacroNameStyleRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that every macro name follows ALL_CAPS naming convention. " +
		"Exception: UVM-like macros. See " + r.cite(mode) + "."
}

func (r *MacroNameStyleRule) HandleToken(tok token.Token) {
	if tok.Kind.IsComment() {
		return
	}
	if !r.afterDefine {
		r.afterDefine = tok.Kind == token.PPDefine
		return
	}
	r.afterDefine = false
	if tok.Kind != token.PPIdentifier {
		return
	}
	name := tok.Text
	if strings.HasPrefix(strings.ToLower(name), "uvm_") {
		return
	}
	if !macroCase.MatchString(name) {
		r.addTokenViolation(tok, "Macro names must contain only CAPITALS, underscores, and digits.  "+
			"Exception: UVM-like macros.")
	}
}
