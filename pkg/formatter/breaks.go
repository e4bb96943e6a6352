package formatter

import (
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

type breakRule struct {
	name  string
	apply func(p pair) (SpacingOptions, bool)
}

func decide(pred func(pair) bool, d SpacingOptions) func(pair) (SpacingOptions, bool) {
	return func(p pair) (SpacingOptions, bool) {
		if pred(p) {
			return d, true
		}
		return Undecided, false
	}
}

// breakRules is evaluated in order; the first applicable rule wins and
// Undecided is the fallback.
var breakRules = []breakRule{
	{"dimensions", decide(inDimensions, Preserve)},
	{"newline-terminated", decide(func(p pair) bool {
		return p.left.FormatType == EOLComment || p.leftKind() == token.PPDefineBody
	}, MustWrap)},
	{"trailing-comment", decide(func(p pair) bool {
		return p.right.FormatType == EOLComment && !p.right.OriginalHasNewline()
	}, MustAppend)},
	{"unary-operand", decide(isUnaryOperand, MustAppend)},
	{"numeric-literal", decide(isInsideNumericLiteral, MustAppend)},
	{"macro-formals", decide(func(p pair) bool {
		return p.leftKind() == token.PPIdentifier && p.rightKind() == token.LParen
	}, MustAppend)},
	{"end-keyword", decide(func(p pair) bool { return p.rightKind().IsEndKeyword() }, MustWrap)},
	{"else", func(p pair) (SpacingOptions, bool) {
		if p.rightKind() != token.KwElse {
			return Undecided, false
		}
		if p.leftKind() == token.KwEnd {
			return MustAppend, true
		}
		return MustWrap, true
	}},
	{"begin", decide(func(p pair) bool {
		return p.rightKind() == token.KwBegin &&
			(p.leftKind() == token.KwElse || p.leftKind() == token.RParen)
	}, MustAppend)},
	{"after-macro-call", decide(func(p pair) bool {
		return p.leftKind() == token.MacroCallCloseToEndLine &&
			!p.right.FormatType.IsComment() && !isSemicolon(p.rightKind())
	}, MustWrap)},
	{"after-conditional-directive", func(p pair) (SpacingOptions, bool) {
		if p.leftKind() != token.PPElse && p.leftKind() != token.PPEndif {
			return Undecided, false
		}
		if p.right.FormatType.IsComment() {
			return Undecided, true
		}
		return MustWrap, true
	}},
	{"before-directive", decide(func(p pair) bool { return p.rightKind().IsPreprocessor() }, MustWrap)},
}

func breakDecision(p pair) (SpacingOptions, string) {
	for _, r := range breakRules {
		if d, ok := r.apply(p); ok {
			return d, r.name
		}
	}
	return Undecided, ""
}
