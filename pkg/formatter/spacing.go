package formatter

import (
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// pair is one adjacent token pair with the context of the right token.
type pair struct {
	style       Style
	left, right *PreFormatToken
	ctx         cst.Context
}

func (p pair) leftKind() token.Kind  { return p.left.Kind() }
func (p pair) rightKind() token.Kind { return p.right.Kind() }

// spacingRule decides the spaces before the right token. ok is false when
// the rule does not apply. A rule returning unhandledSpaces claims the pair
// but leaves its spacing to the original text.
type spacingRule struct {
	name  string
	apply func(p pair) (spaces int, ok bool)
}

const unhandledSpaces = -1

func fixed(n int) func(pair) (int, bool) {
	return func(pair) (int, bool) { return n, true }
}

func when(pred func(pair) bool, n int) func(pair) (int, bool) {
	return func(p pair) (int, bool) {
		if pred(p) {
			return n, true
		}
		return 0, false
	}
}

var (
	dimensionTags    = []cst.NodeKind{cst.DimensionRange, cst.DimensionScalar}
	unaryPrefixTags  = []cst.NodeKind{cst.UnaryPrefixExpression}
	expressionTags   = []cst.NodeKind{cst.Expression}
	packedDimensions = []cst.NodeKind{cst.PackedDimensions}
	namedPortTags    = []cst.NodeKind{cst.ActualNamedPort, cst.Port}
)

// inDimensions reports whether the pair sits inside [...] away from the
// brackets themselves, where the original spacing is kept.
func inDimensions(p pair) bool {
	if !p.ctx.IsInsideFirst(dimensionTags, nil) {
		return false
	}
	if p.left.FormatType == OpenGroup || p.right.FormatType == CloseGroup {
		return false
	}
	return p.rightKind() != token.LBracket
}

func isUnaryOperand(p pair) bool {
	if !p.leftKind().IsUnaryOperator() || !p.ctx.IsInsideFirst(unaryPrefixTags, expressionTags) {
		return false
	}
	return p.left.FormatType != BinaryOperator || !p.rightKind().IsUnaryOperator()
}

func isInsideNumericLiteral(p pair) bool {
	if p.left.FormatType == NumericLiteral && p.right.FormatType == NumericBase {
		return true
	}
	return p.left.FormatType == NumericBase
}

func isNonmergeable(t *PreFormatToken) bool {
	return t.Kind() == token.DecNumber || t.FormatType == Identifier || t.FormatType == Keyword
}

func isSemicolon(k token.Kind) bool { return k == token.Semicolon }

func spacesBeforeParen(p pair) (int, bool) {
	if p.rightKind() != token.LParen {
		return 0, false
	}
	switch {
	case p.leftKind() == token.Hash:
		return 0, true
	case p.leftKind() == token.RParen:
		return 1, true
	case p.left.FormatType == Identifier || p.leftKind().IsCallableKeyword():
		switch {
		case p.ctx.IsInsideFirst(namedPortTags, nil):
			return 0, true
		case p.ctx.IsInsideFirst([]cst.NodeKind{cst.GateInstance}, expressionTags):
			return 1, true
		case p.ctx.IsInsideFirst([]cst.NodeKind{cst.ModuleHeader}, expressionTags):
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func spacesBeforeBracket(p pair) (int, bool) {
	if p.rightKind() != token.LBracket {
		return 0, false
	}
	if p.left.FormatType != Keyword && p.left.FormatType != Identifier {
		return 0, false
	}
	if p.ctx.IsInsideFirst(packedDimensions, expressionTags) {
		return 1, true
	}
	return 0, true
}

func spacesAfterPackedDimensions(p pair) (int, bool) {
	if p.leftKind() != token.RBracket || p.right.FormatType != Identifier {
		return 0, false
	}
	if p.ctx.DirectParentsAre(cst.UnqualifiedId, cst.DataTypeImplicitBasicIdDimensions) {
		return 1, true
	}
	return unhandledSpaces, true
}

func spacesBeforeColon(p pair) (int, bool) {
	if p.rightKind() != token.Colon {
		return 0, false
	}
	switch {
	case p.leftKind() == token.KwDefault:
		return 0, true
	case p.ctx.DirectParentIsOneOf(cst.CaseItem, cst.DefaultCaseItem):
		return 0, true
	case p.leftKind().IsEndKeyword():
		return 1, true
	case p.ctx.DirectParentIs(cst.TernaryExpression):
		return 1, true
	}
	return 0, false
}

// spacingRules is evaluated in order; the first applicable rule wins.
var spacingRules = []spacingRule{
	{"escaped-identifier", when(func(p pair) bool { return p.leftKind() == token.EscapedIdentifier }, 1)},
	{"before-comment", func(p pair) (int, bool) {
		return p.style.CommentMinSpaces, p.right.FormatType.IsComment()
	}},
	{"inside-group", when(func(p pair) bool {
		return p.left.FormatType == OpenGroup || p.right.FormatType == CloseGroup
	}, 0)},
	{"dimensions", when(inDimensions, unhandledSpaces)},
	{"unary-operand", when(isUnaryOperand, 0)},
	{"after-scope", when(func(p pair) bool { return p.leftKind() == token.ScopeRes }, 0)},
	{"before-comma", when(func(p pair) bool { return p.rightKind() == token.Comma }, 0)},
	{"after-comma", when(func(p pair) bool { return p.leftKind() == token.Comma }, 1)},
	{"before-semicolon", func(p pair) (int, bool) {
		if !isSemicolon(p.rightKind()) {
			return 0, false
		}
		if p.leftKind() == token.Colon {
			return 1, true
		}
		return 0, true
	}},
	{"after-semicolon", when(func(p pair) bool { return isSemicolon(p.leftKind()) }, 1)},
	{"after-at", when(func(p pair) bool { return p.leftKind() == token.At }, 0)},
	{"before-at", when(func(p pair) bool { return p.rightKind() == token.At }, 1)},
	{"binary-operator", when(func(p pair) bool {
		return p.left.FormatType == BinaryOperator || p.right.FormatType == BinaryOperator
	}, 1)},
	{"empty-token", when(func(p pair) bool { return p.left.Text() == "" || p.right.Text() == "" }, 0)},
	{"numeric-literal", when(isInsideNumericLiteral, 0)},
	{"hierarchy", when(func(p pair) bool {
		return p.left.FormatType == Hierarchy || p.right.FormatType == Hierarchy
	}, 0)},
	{"cast", when(func(p pair) bool {
		return p.leftKind() == token.Apostrophe || p.rightKind() == token.Apostrophe
	}, 0)},
	{"before-paren", spacesBeforeParen},
	{"after-brace", when(func(p pair) bool { return p.leftKind() == token.RBrace }, 1)},
	{"before-brace", func(p pair) (int, bool) {
		if p.rightKind() != token.LBrace {
			return 0, false
		}
		if p.left.FormatType == Keyword {
			return 1, true
		}
		return 0, true
	}},
	{"before-bracket", spacesBeforeBracket},
	{"after-packed-dimensions", spacesAfterPackedDimensions},
	{"nonmergeable", when(func(p pair) bool { return isNonmergeable(p.left) && isNonmergeable(p.right) }, 1)},
	{"before-colon", spacesBeforeColon},
	{"after-colon", when(func(p pair) bool { return p.leftKind() == token.Colon }, 1)},
	{"after-keyword", when(func(p pair) bool { return p.left.FormatType == Keyword }, 1)},
	{"unary-operator", when(func(p pair) bool {
		return p.left.FormatType == UnaryOperator || p.right.FormatType == UnaryOperator
	}, 0)},
	{"sized-unbased", when(func(p pair) bool {
		return p.leftKind() == token.DecNumber && p.rightKind() == token.UnBasedNumber
	}, 0)},
	{"multidimensional", when(func(p pair) bool {
		return p.leftKind() == token.RBracket && p.rightKind() == token.LBracket
	}, 0)},
	{"after-hash", when(func(p pair) bool { return p.leftKind() == token.Hash }, 0)},
	{"before-hash", when(func(p pair) bool { return p.rightKind() == token.Hash }, 1)},
	{"before-keyword", when(func(p pair) bool { return p.right.FormatType == Keyword }, 1)},
	{"after-paren", func(p pair) (int, bool) {
		if p.leftKind() != token.RParen {
			return 0, false
		}
		if p.rightKind() == token.Colon {
			return 0, true
		}
		return 1, true
	}},
	{"after-macro-call", func(p pair) (int, bool) {
		if p.leftKind() != token.MacroCallCloseToEndLine {
			return 0, false
		}
		if isSemicolon(p.rightKind()) {
			return 0, true
		}
		return 1, true
	}},
	{"after-bracket", when(func(p pair) bool { return p.leftKind() == token.RBracket }, 1)},
	{"before-directive", when(func(p pair) bool { return p.rightKind().IsPreprocessor() }, 1)},
	{"after-comment", when(func(p pair) bool { return p.left.FormatType.IsComment() }, 1)},
}

// spacesBetween returns the spaces required before the right token and the
// deciding rule's name. ok is false when no rule handled the pair.
func spacesBetween(p pair) (spaces int, rule string, ok bool) {
	for _, r := range spacingRules {
		n, applies := r.apply(p)
		if !applies {
			continue
		}
		if n == unhandledSpaces {
			return 0, r.name, false
		}
		return n, r.name, true
	}
	return 0, "", false
}

// breakPenalty is the cost of wrapping between a handled pair.
func breakPenalty(p pair) int {
	switch {
	case p.left.FormatType == Hierarchy:
		return 50
	case p.right.FormatType == Hierarchy:
		return 45
	case p.rightKind() == token.Comma:
		return 10
	case p.leftKind() == token.Assign:
		return 2
	case p.right.FormatType == OpenGroup:
		return 5
	case p.leftKind() == token.DecNumber && p.rightKind() == token.UnBasedNumber:
		return 90
	}
	return 1
}
