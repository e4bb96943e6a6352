package formatter

import (
	"strings"

	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// FormatTokenType is the coarse category the annotator reasons about.
type FormatTokenType int

const (
	Unknown FormatTokenType = iota
	Identifier
	Keyword
	NumericLiteral
	NumericBase
	StringLiteral
	UnaryOperator
	BinaryOperator
	OpenGroup
	CloseGroup
	Hierarchy
	EOLComment
	CommentBlock
)

var formatTokenTypeNames = [...]string{
	Unknown:        "unknown",
	Identifier:     "identifier",
	Keyword:        "keyword",
	NumericLiteral: "numeric_literal",
	NumericBase:    "numeric_base",
	StringLiteral:  "string_literal",
	UnaryOperator:  "unary_operator",
	BinaryOperator: "binary_operator",
	OpenGroup:      "open_group",
	CloseGroup:     "close_group",
	Hierarchy:      "hierarchy",
	EOLComment:     "eol_comment",
	CommentBlock:   "comment_block",
}

func (t FormatTokenType) String() string {
	if t >= 0 && int(t) < len(formatTokenTypeNames) {
		return formatTokenTypeNames[t]
	}
	return "unknown"
}

// IsComment reports whether t is either kind of comment.
func (t FormatTokenType) IsComment() bool { return t == EOLComment || t == CommentBlock }

// IsUnaryOperator reports whether t is an operator that only prefixes or
// suffixes an operand.
func (t FormatTokenType) IsUnaryOperator() bool { return t == UnaryOperator }

var formatTypes = map[token.Kind]FormatTokenType{
	token.Identifier:         Identifier,
	token.EscapedIdentifier:  Identifier,
	token.SystemTFIdentifier: Identifier,
	token.MacroIdentifier:    Identifier,
	token.MacroCallId:        Identifier,
	token.PPIdentifier:       Identifier,

	token.DecNumber:         NumericLiteral,
	token.BasedNumberDigits: NumericLiteral,
	token.UnBasedNumber:     NumericLiteral,
	token.RealNumber:        NumericLiteral,
	token.TimeLiteral:       NumericLiteral,
	token.BasedNumberBase:   NumericBase,

	token.StringLiteral: StringLiteral,

	token.EOLComment:   EOLComment,
	token.BlockComment: CommentBlock,

	token.LParen:   OpenGroup,
	token.LBracket: OpenGroup,
	token.LBrace:   OpenGroup,
	token.RParen:   CloseGroup,
	token.RBracket: CloseGroup,
	token.RBrace:   CloseGroup,

	token.Dot:      Hierarchy,
	token.ScopeRes: Hierarchy,

	token.Tilde:     UnaryOperator,
	token.Bang:      UnaryOperator,
	token.Increment: UnaryOperator,
	token.Decrement: UnaryOperator,

	// Punctuation with its own spacing rules.
	token.Comma:      Unknown,
	token.Semicolon:  Unknown,
	token.Colon:      Unknown,
	token.Hash:       Unknown,
	token.At:         Unknown,
	token.Apostrophe: Unknown,
}

// GetFormatTokenType maps a lexical kind to its format category. Keywords
// and preprocessor directives are Keyword; operators without a more
// specific category are BinaryOperator.
func GetFormatTokenType(kind token.Kind) FormatTokenType {
	if t, ok := formatTypes[kind]; ok {
		return t
	}
	switch {
	case kind.IsKeyword(), kind.IsPreprocessor():
		return Keyword
	case kind.IsOperator():
		return BinaryOperator
	}
	return Unknown
}

// SpacingOptions is the break decision made before a token.
type SpacingOptions int

const (
	// Undecided leaves the choice to line wrapping.
	Undecided SpacingOptions = iota
	// MustAppend keeps the token on the same line as its predecessor.
	MustAppend
	// MustWrap starts a new line before the token.
	MustWrap
	// Preserve keeps the original spacing.
	Preserve
)

func (o SpacingOptions) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case MustAppend:
		return "must-append"
	case MustWrap:
		return "must-wrap"
	case Preserve:
		return "preserve"
	}
	return "unknown"
}

// InterTokenInfo describes the gap before a token.
type InterTokenInfo struct {
	SpacesRequired int
	BreakDecision  SpacingOptions
	BreakPenalty   int
}

// PreFormatToken is a token with its format category and the annotation of
// the gap before it.
type PreFormatToken struct {
	Token      token.Token
	FormatType FormatTokenType
	Before     InterTokenInfo

	// OriginalSpacing is the source text between the previous token and
	// this one. HasOriginalSpacing is false for synthetic tokens.
	OriginalSpacing    string
	HasOriginalSpacing bool
}

// NewPreFormatToken classifies tok.
func NewPreFormatToken(tok token.Token) PreFormatToken {
	return PreFormatToken{Token: tok, FormatType: GetFormatTokenType(tok.Kind)}
}

// Kind is the lexical kind of the wrapped token.
func (t *PreFormatToken) Kind() token.Kind { return t.Token.Kind }

// Text is the source text of the wrapped token.
func (t *PreFormatToken) Text() string { return t.Token.Text }

// OriginalHasNewline reports whether the original spacing spans a line
// break.
func (t *PreFormatToken) OriginalHasNewline() bool {
	return strings.Contains(t.OriginalSpacing, "\n")
}

// originalSpaces is the width of the original spacing on the token's own
// line, or 1 when no original spacing is known.
func (t *PreFormatToken) originalSpaces() int {
	if !t.HasOriginalSpacing {
		return 1
	}
	s := t.OriginalSpacing
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return len(strings.TrimRight(s, "\r"))
}
