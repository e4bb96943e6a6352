package linter

import (
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// Rule is the contract shared by every lint rule. Report may be called any
// number of times; it does not reset the rule.
type Rule interface {
	Name() string
	Report() RuleStatus
}

// SyntaxTreeRule sees every node and leaf of one tree traversal.
type SyntaxTreeRule interface {
	Rule
	HandleNode(node *cst.Node, ctx cst.Context)
	HandleLeaf(leaf *cst.Leaf, ctx cst.Context)
}

// TokenStreamRule sees every token, comments included, in source order.
type TokenStreamRule interface {
	Rule
	HandleToken(tok token.Token)
}

// LineRule sees every line of the file; offset is the byte offset of the
// line start. Finalize is called once after the last line.
type LineRule interface {
	Rule
	HandleLine(line string, offset int)
	Finalize()
}

// TextStructureRule inspects the whole analyzed file at once.
type TextStructureRule interface {
	Rule
	Lint(ts *cst.TextStructure, filename string)
}

// Configurable is implemented by rules that accept parameters, such as
// "length:120" for line-length.
type Configurable interface {
	Configure(params string) error
}

// Factory creates a fresh rule instance with its own state.
type Factory func() Rule

// RuleKind identifies which input stream a rule consumes.
type RuleKind int

const (
	KindSyntaxTree RuleKind = iota
	KindTokenStream
	KindLine
	KindTextStructure
)

// Kinds lists every rule kind in execution order.
var Kinds = []RuleKind{KindSyntaxTree, KindTokenStream, KindLine, KindTextStructure}

func (k RuleKind) String() string {
	switch k {
	case KindSyntaxTree:
		return "syntax-tree"
	case KindTokenStream:
		return "token-stream"
	case KindLine:
		return "line"
	case KindTextStructure:
		return "text-structure"
	}
	return "unknown"
}

// DescriptionType selects how rule descriptions are rendered.
type DescriptionType int

const (
	HelpText DescriptionType = iota
	Markdown
)

// Codify renders text as inline code for the description type.
func Codify(text string, mode DescriptionType) string {
	if mode == Markdown {
		return "`" + text + "`"
	}
	return "'" + text + "'"
}

// StyleGuideURL is the base location of the style guide sections cited by
// rules.
const StyleGuideURL = "https://github.com/lowRISC/style-guides/blob/master/VerilogCodingStyle.md"

// StyleGuideCitation renders a reference to a style guide topic.
func StyleGuideCitation(topic string) string {
	return "[Style: " + topic + "]"
}

// StyleGuideLink renders a style guide topic as a markdown link.
func StyleGuideLink(topic string) string {
	return "[Style: " + topic + "](" + StyleGuideURL + "#" + topic + ")"
}
