package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

func mustParse(t *testing.T, contents string) *cst.TextStructure {
	t.Helper()
	ts, err := parser.Analyze(contents)
	require.NoError(t, err)
	return ts
}

func TestAlwaysStar(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		matches int
	}{
		{"at star", "module m; always @* a = b; endmodule", 1},
		{"at paren star", "module m; always @(*) a = b; endmodule", 1},
		{"always_comb", "module m; always_comb a = b; endmodule", 0},
		{"edge list", "module m; always @(posedge clk) a <= b; endmodule", 0},
		{"two blocks", "module m; always @* a = b; always @(*) c = d; endmodule", 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := mustParse(t, tc.input)
			assert.Len(t, Find(ts.Tree, AlwaysStar()), tc.matches)
		})
	}
}

func TestBindAndCombinators(t *testing.T) {
	ts := mustParse(t, "module m; parameter int W = 1; localparam X = 2; endmodule")

	typed := ParamDeclaration(
		HasChild(cst.ParamType, Bind("type", Func(func(s cst.Symbol, _ *BoundSymbols) bool {
			return len(cst.AsNode(s).Children) > 0
		}))),
		HasChild(cst.UnqualifiedId, Bind("name", Any())),
	)

	found := Find(ts.Tree, typed)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Bound.Len())
	assert.Equal(t, "int", cst.StringSpan(ts.Contents, found[0].Bound.Get("type")))
	assert.Equal(t, "W", cst.StringSpan(ts.Contents, found[0].Bound.Get("name")))
	assert.True(t, found[0].Context.DirectParentIs(cst.ModuleItemList))

	untyped := AllOf(ParamDeclaration(), Not(typed))
	found = Find(ts.Tree, untyped)
	require.Len(t, found, 1)
	assert.Nil(t, found[0].Bound.Get("type"))

	either := AnyOf(LeafMatcher(token.KwParameter), LeafMatcher(token.KwLocalparam))
	assert.Len(t, Find(ts.Tree, either), 2)

	assert.Len(t, Find(ts.Tree, NodeMatcher(cst.ModuleDeclaration, HasDescendant(cst.Number))), 1)
	assert.Empty(t, Find(ts.Tree, NodeMatcher(cst.ModuleDeclaration, HasDescendant(cst.CaseItem))))
}

func TestModuleDeclarationBindsName(t *testing.T) {
	ts := mustParse(t, "module alpha; endmodule\nmodule beta(input a); endmodule\n")

	found := Find(ts.Tree, ModuleDeclaration())
	require.Len(t, found, 2)
	assert.Equal(t, "alpha", cst.AsLeaf(found[0].Bound.Get("name")).Token.Text)
	assert.Equal(t, "beta", cst.AsLeaf(found[1].Bound.Get("name")).Token.Text)

	assert.Len(t, Find(ts.Tree, PortDeclaration()), 1)
}

func TestNilBoundSymbols(t *testing.T) {
	var bound *BoundSymbols
	assert.Nil(t, bound.Get("x"))
	assert.Equal(t, 0, bound.Len())
	assert.True(t, Bind("x", Any()).Matches(cst.NewLeaf(token.New(token.Identifier, "x", 0)), nil))
	assert.False(t, Any().Matches(nil, nil))
}

func leafTexts(symbols []cst.Symbol) []string {
	var texts []string
	for _, s := range symbols {
		texts = append(texts, cst.AsLeaf(s).Token.Text)
	}
	return texts
}

func TestParamDeclarationParts(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		keyword []string
		names   [][]string
	}{
		{"typed", "module m; parameter int W = 1; endmodule", []string{"parameter"}, [][]string{{"W"}}},
		{"several names", "module m; localparam A = 1, B = 2; endmodule", []string{"localparam"}, [][]string{{"A", "B"}}},
		{"header continuation", "module m #(parameter int A = 1, B = 2) (); endmodule", []string{"parameter", ""}, [][]string{{"A"}, {"B"}}},
		{"type parameter", "module m; parameter type T = logic; endmodule", []string{"parameter"}, [][]string{{"T"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := mustParse(t, tc.input)
			found := Find(ts.Tree, ParamDeclarationParts())
			require.Len(t, found, len(tc.names))
			for i, m := range found {
				keyword := ""
				if l := cst.AsLeaf(m.Bound.Get("keyword")); l != nil {
					keyword = l.Token.Text
				}
				assert.Equal(t, tc.keyword[i], keyword)
				assert.NotNil(t, cst.AsNode(m.Bound.Get("type")))
				assert.Equal(t, tc.names[i], leafTexts(m.Bound.All("name")))
			}
		})
	}
}

func TestPortNames(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		names []string
	}{
		{"ansi", "module m(input logic a, output [3:0] b); endmodule", []string{"a", "b"}},
		{"bare ports", "module m(a, b); endmodule", []string{"a", "b"}},
		{"non-ansi declaration", "module m(a, b); input a, b; endmodule", []string{"a", "b", "a", "b"}},
		{"named port", "module m(.clk(clk_i)); endmodule", []string{"clk"}},
		{"unpacked dimensions", "module m(input logic q [3:0]); endmodule", []string{"q"}},
		{"local signal", "module m; logic x; endmodule", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := mustParse(t, tc.input)
			var names []string
			for _, m := range Find(ts.Tree, PortNames()) {
				names = append(names, leafTexts(m.Bound.All("name"))...)
			}
			assert.Equal(t, tc.names, names)
		})
	}
}

func TestBeginBlock(t *testing.T) {
	ts := mustParse(t, "module m; begin : blk end initial begin end endmodule")

	found := Find(ts.Tree, BeginBlock())
	require.Len(t, found, 2)
	assert.True(t, found[0].Context.DirectParentIs(cst.ModuleItemList))
	assert.False(t, found[1].Context.DirectParentIs(cst.ModuleItemList))
	for _, m := range found {
		assert.Equal(t, token.KwBegin, cst.AsLeaf(m.Bound.Get("begin")).Token.Kind)
	}
}

func TestEachChildAccumulatesBindings(t *testing.T) {
	id := func(text string) cst.Symbol {
		return cst.NewNode(cst.UnqualifiedId, cst.NewLeaf(token.New(token.Identifier, text, 0)))
	}
	decl := cst.NewNode(cst.ParamDeclaration, id("A"), cst.NewLeaf(token.New(token.Comma, ",", 0)), id("B"))

	var bound BoundSymbols
	require.True(t, DeclaredNames("n", token.Identifier).Matches(decl, &bound))
	assert.Equal(t, []string{"A", "B"}, leafTexts(bound.All("n")))
	assert.Equal(t, "A", cst.AsLeaf(bound.Get("n")).Token.Text)

	bound = BoundSymbols{}
	require.True(t, HasChild(cst.UnqualifiedId, HasLeafChild(Bind("n", Any()))).Matches(decl, &bound))
	assert.Len(t, bound.All("n"), 1)

	assert.False(t, DeclaredNames("n", token.EscapedIdentifier).Matches(decl, nil))
	assert.True(t, Optional(LeafMatcher(token.Comma)).Matches(decl, nil))
	assert.True(t, HasLeafChild(LeafMatcher(token.Identifier, token.Comma)).Matches(decl, nil))
}
