package formatter

import (
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
)

// Linearize returns the tokens of ts, EOF excluded, with the ancestor
// context of each. Tokens outside the tree, such as comments, take the
// context of the next tree leaf; trailing ones get an empty context.
func Linearize(ts *cst.TextStructure) ([]PreFormatToken, []cst.Context) {
	leafContexts := make(map[int]cst.Context)
	if ts.Tree != nil {
		cst.Walk(ts.Tree, cst.VisitorFuncs{Leaf: func(l *cst.Leaf, ctx cst.Context) {
			leafContexts[l.Token.Offset] = ctx
		}})
	}

	var tokens []PreFormatToken
	var inTree []bool
	prevEnd := 0
	for _, tok := range ts.Tokens {
		if tok.IsEOF() {
			break
		}
		pft := NewPreFormatToken(tok)
		if tok.Offset >= prevEnd && tok.Offset <= len(ts.Contents) {
			pft.OriginalSpacing = ts.Contents[prevEnd:tok.Offset]
			pft.HasOriginalSpacing = true
		}
		prevEnd = tok.Right()
		tokens = append(tokens, pft)
		_, ok := leafContexts[tok.Offset]
		inTree = append(inTree, ok && !tok.Kind.IsComment())
	}

	contexts := make([]cst.Context, len(tokens))
	next := cst.Context{}
	for i := len(tokens) - 1; i >= 0; i-- {
		if inTree[i] {
			next = leafContexts[tokens[i].Token.Offset]
		}
		contexts[i] = next
	}
	return tokens, contexts
}

// AnnotateText linearizes ts and annotates every token.
func (a *Annotator) AnnotateText(ts *cst.TextStructure) ([]PreFormatToken, Stats, error) {
	tokens, contexts := Linearize(ts)
	stats, err := a.Annotate(tokens, contexts)
	return tokens, stats, err
}
