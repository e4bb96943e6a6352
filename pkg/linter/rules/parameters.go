package rules

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
)

// ExplicitParameterStorageTypeRule requires a storage type on every
// parameter and localparam
type ExplicitParameterStorageTypeRule struct {
	treeRule
	params paramVisitor
}

// NewExplicitParameterStorageTypeRule creates a new explicit-parameter-storage-type rule
func NewExplicitParameterStorageTypeRule() *ExplicitParameterStorageTypeRule {
	return &ExplicitParameterStorageTypeRule{
		treeRule: treeRule{BaseRule: BaseRule{
			RuleName:  "explicit-parameter-storage-type",
			RuleTopic: "constants",
		}},
		params: newParamVisitor(),
	}
}

func (r *ExplicitParameterStorageTypeRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that every " + linter.Codify("parameter", mode) + " and " +
		linter.Codify("localparam", mode) + " is declared with an explicit storage type. See " +
		r.cite(mode) + "."
}

func (r *ExplicitParameterStorageTypeRule) HandleNode(n *cst.Node, ctx cst.Context) {
	r.params.visit(n, ctx, func(d paramDecl) {
		// "parameter type" declares a type, not a value.
		if d.isType || d.typed {
			return
		}
		for _, name := range d.names {
			r.addViolation(name.Token,
				"Explicitly define a storage type for every parameter and localparam, ("+name.Token.Text+").", ctx)
		}
	})
}

// Naming styles accepted by parameter-name-style.
const (
	styleCamelCase = "CamelCase"
	styleAllCaps   = "ALL_CAPS"
)

// ParameterNameStyleRule checks parameter and localparam naming
type ParameterNameStyleRule struct {
	treeRule
	params           paramVisitor
	parameterStyles  []string
	localparamStyles []string
}

// NewParameterNameStyleRule creates a new parameter-name-style rule
func NewParameterNameStyleRule() *ParameterNameStyleRule {
	return &ParameterNameStyleRule{
		treeRule: treeRule{BaseRule: BaseRule{
			RuleName:  "parameter-name-style",
			RuleTopic: "constants",
		}},
		params:           newParamVisitor(),
		parameterStyles:  []string{styleCamelCase, styleAllCaps},
		localparamStyles: []string{styleCamelCase},
	}
}

func (r *ParameterNameStyleRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that non-type parameter and localparam names follow at least one of the naming " +
		"conventions from a choice of CamelCase and ALL_CAPS, ORed together with the pipe-symbol(|). " +
		"Empty configuration: no style enforcement. See " + r.cite(mode) + ". Parameters: " +
		linter.Codify("localparam_style:CamelCase", mode) + ", " +
		linter.Codify("parameter_style:CamelCase|ALL_CAPS", mode) + "."
}

// Configure accepts "parameter_style:<styles>;localparam_style:<styles>"
func (r *ParameterNameStyleRule) Configure(params string) error {
	settings, err := parseParams(params, "parameter_style", "localparam_style")
	if err != nil {
		return err
	}
	for key, value := range settings {
		var styles []string
		for _, style := range strings.Split(value, "|") {
			style = strings.TrimSpace(style)
			switch style {
			case "":
				continue
			case styleCamelCase, styleAllCaps:
				styles = append(styles, style)
			default:
				return fmt.Errorf("unknown style %q for %s", style, key)
			}
		}
		if key == "parameter_style" {
			r.parameterStyles = styles
		} else {
			r.localparamStyles = styles
		}
	}
	return nil
}

func matchesAnyStyle(name string, styles []string) bool {
	if len(styles) == 0 {
		return true
	}
	for _, style := range styles {
		if style == styleCamelCase && isCamelCase(name) {
			return true
		}
		if style == styleAllCaps && isUpperSnakeCase(name) {
			return true
		}
	}
	return false
}

func (r *ParameterNameStyleRule) HandleNode(n *cst.Node, ctx cst.Context) {
	r.params.visit(n, ctx, func(d paramDecl) {
		if d.isType {
			return
		}
		styles, kind := r.parameterStyles, "Non-type parameter"
		if d.local {
			styles, kind = r.localparamStyles, "Localparam"
		}
		for _, name := range d.names {
			if !matchesAnyStyle(name.Token.Text, styles) {
				r.addViolation(name.Token, kind+" names must be styled with "+strings.Join(styles, " or "), ctx)
			}
		}
	})
}
