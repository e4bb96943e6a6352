package rules

import (
	"regexp"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/matcher"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

var (
	lowerSnakeCase = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	upperSnakeCase = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
	camelCase      = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	macroCase      = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)
)

// isLowerSnakeCase checks for lowercase words joined by single underscores
func isLowerSnakeCase(s string) bool {
	return lowerSnakeCase.MatchString(s)
}

// isUpperSnakeCase checks for ALL_CAPS words joined by single underscores
func isUpperSnakeCase(s string) bool {
	return upperSnakeCase.MatchString(s)
}

// isCamelCase checks for an upper case first letter and no underscores
func isCamelCase(s string) bool {
	return camelCase.MatchString(s)
}

// paramDecl summarizes one parameter or localparam declaration.
type paramDecl struct {
	local  bool
	typed  bool
	isType bool
	names  []*cst.Leaf
}

// newParamDecl reads the parts bound by matcher.ParamDeclarationParts.
// Inside a header parameter list a declaration without its own keyword
// continues the previous one, so prev supplies the keyword and, when none is
// written, the type.
func newParamDecl(bound *matcher.BoundSymbols, prev *paramDecl) paramDecl {
	var d paramDecl
	keyword := cst.AsLeaf(bound.Get("keyword"))
	if keyword != nil {
		d.local = keyword.Token.Kind == token.KwLocalparam
	}
	if pt := cst.AsNode(bound.Get("type")); pt != nil {
		d.isType = pt.FirstChildLeaf(token.KwType) != nil
		d.typed = len(pt.Children) > 0
	}
	if keyword == nil && prev != nil {
		d.local = prev.local
		if !d.typed {
			d.typed, d.isType = prev.typed, prev.isType
		}
	}
	for _, s := range bound.All("name") {
		if leaf := cst.AsLeaf(s); leaf != nil {
			d.names = append(d.names, leaf)
		}
	}
	return d
}

// paramVisitor applies a parameter matcher to the symbols a tree rule
// visits. Header lists are handled as a whole; their members are skipped
// when visited on their own.
type paramVisitor struct {
	params matcher.Matcher
}

func newParamVisitor() paramVisitor {
	return paramVisitor{params: matcher.ParamDeclarationParts()}
}

// visit calls fn for every parameter declaration rooted at n.
func (v paramVisitor) visit(n *cst.Node, ctx cst.Context, fn func(paramDecl)) {
	if n.Tag == cst.ParamDeclarationList {
		var prev *paramDecl
		for _, c := range n.Children {
			var bound matcher.BoundSymbols
			if !v.params.Matches(c, &bound) {
				continue
			}
			d := newParamDecl(&bound, prev)
			fn(d)
			prev = &d
		}
		return
	}
	if ctx.DirectParentIs(cst.ParamDeclarationList) {
		return
	}
	var bound matcher.BoundSymbols
	if v.params.Matches(n, &bound) {
		fn(newParamDecl(&bound, nil))
	}
}
