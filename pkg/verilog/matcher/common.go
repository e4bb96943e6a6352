package matcher

import (
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// AlwaysStatement matches any always-family statement.
func AlwaysStatement(inner ...Matcher) Matcher {
	return NodeMatcher(cst.AlwaysStatement, inner...)
}

// AlwaysStar matches "always @*" and "always @(*)". always_comb and friends
// do not match.
func AlwaysStar() Matcher {
	return AlwaysStatement(
		HasLeaf(token.KwAlways),
		HasChild(cst.EventControl, AnyOf(
			HasLeaf(token.Star),
			HasChild(cst.ParenGroup, HasLeaf(token.Star)),
		)),
	)
}

// ParamDeclaration matches parameter and localparam declarations.
func ParamDeclaration(inner ...Matcher) Matcher {
	return NodeMatcher(cst.ParamDeclaration, inner...)
}

// PortDeclaration matches a port declaration in a header or module body.
func PortDeclaration(inner ...Matcher) Matcher {
	return NodeMatcher(cst.PortDeclaration, inner...)
}

// DeclaredNames binds the identifier of every kUnqualifiedId child as id.
func DeclaredNames(id string, kinds ...token.Kind) Matcher {
	return EachChild(cst.UnqualifiedId, HasLeafChild(Bind(id, LeafMatcher(kinds...))))
}

// ParamDeclarationParts matches a parameter or localparam declaration that
// declares at least one name. It binds the keyword leaf as "keyword" (absent
// when a header list entry continues the previous one), the kParamType node
// as "type" and each declared name leaf as "name".
func ParamDeclarationParts() Matcher {
	return ParamDeclaration(
		Optional(HasLeafChild(Bind("keyword", LeafMatcher(token.KwParameter, token.KwLocalparam)))),
		HasChild(cst.ParamType, Bind("type", Any())),
		DeclaredNames("name", token.Identifier, token.EscapedIdentifier),
	)
}

// PortNames matches a port declaration or a module header port and binds
// each declared port name leaf as "name". Named connections such as
// ".clk(clk_i)" bind the port name.
func PortNames() Matcher {
	return AnyOf(
		PortDeclaration(AnyOf(
			AllOf(
				HasChild(cst.DataTypeImplicitBasicIdDimensions, DeclaredNames("name", token.Identifier)),
				Optional(DeclaredNames("name", token.Identifier)),
			),
			DeclaredNames("name", token.Identifier),
		)),
		NodeMatcher(cst.Port, AnyOf(
			DeclaredNames("name", token.Identifier),
			HasLeafChild(Bind("name", LeafMatcher(token.Identifier))),
		)),
	)
}

// BeginBlock matches a begin-end block and binds its "begin" leaf.
func BeginBlock() Matcher {
	return NodeMatcher(cst.SeqBlock, HasLeafChild(Bind("begin", LeafMatcher(token.KwBegin))))
}

// ModuleDeclaration matches a module and binds its name leaf as "name".
func ModuleDeclaration() Matcher {
	return NodeMatcher(cst.ModuleDeclaration,
		HasChild(cst.ModuleHeader, Func(func(s cst.Symbol, bound *BoundSymbols) bool {
			name := cst.AsNode(s).FirstChildLeaf(token.Identifier)
			if name == nil {
				return false
			}
			bound.set("name", name)
			return true
		})),
	)
}

// Find returns every symbol under root, root included, that m matches, in
// pre-order, each with its own bindings.
func Find(root cst.Symbol, m Matcher) []Match {
	var found []Match
	check := func(s cst.Symbol, ctx cst.Context) {
		bound := &BoundSymbols{}
		if m.Matches(s, bound) {
			found = append(found, Match{Symbol: s, Bound: bound, Context: ctx})
		}
	}
	cst.Walk(root, cst.VisitorFuncs{
		Node: func(n *cst.Node, ctx cst.Context) { check(n, ctx) },
		Leaf: func(l *cst.Leaf, ctx cst.Context) { check(l, ctx) },
	})
	return found
}

// Match is one result of Find.
type Match struct {
	Symbol  cst.Symbol
	Bound   *BoundSymbols
	Context cst.Context
}
