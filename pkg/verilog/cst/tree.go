// Package cst holds the concrete syntax tree of a Verilog source unit: tagged
// nodes whose leaves each wrap exactly one token, plus the traversal and
// ancestor-context utilities used by lint rules and the formatter.
package cst

import (
	"strings"

	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// NodeKind tags a syntax tree node.
type NodeKind int

const (
	Unknown NodeKind = iota
	SourceText
	ModuleDeclaration
	ModuleHeader
	ModuleItemList
	ParamDeclarationList
	PortDeclarationList
	PortDeclaration
	Port
	ParamDeclaration
	ParamType
	TypeDeclaration
	DataDeclaration
	NetDeclaration
	DataTypeImplicitBasicIdDimensions
	UnqualifiedId
	PackedDimensions
	UnpackedDimensions
	DeclarationDimensions
	DimensionRange
	DimensionScalar
	AlwaysStatement
	InitialStatement
	ContinuousAssign
	EventControl
	SeqBlock
	GenerateRegion
	ConditionalStatement
	CaseStatement
	CaseItem
	DefaultCaseItem
	Statement
	Expression
	UnaryPrefixExpression
	BinaryExpression
	TernaryExpression
	ConcatenationExpression
	FunctionCall
	ParenGroup
	HierarchyExtension
	CastExpression
	GateInstantiation
	GateInstance
	ActualNamedPort
	ParamByName
	DefparamStatement
	PreprocessorDefine
	PreprocessorDirective
	MacroCall
	Number
	InterfaceDeclaration
	PackageDeclaration
	PackageImport
	FunctionDeclaration
	TaskDeclaration
	ClassDeclaration
	Reference
)

var nodeKindNames = [...]string{
	Unknown:                           "kUnknown",
	SourceText:                        "kSourceText",
	ModuleDeclaration:                 "kModuleDeclaration",
	ModuleHeader:                      "kModuleHeader",
	ModuleItemList:                    "kModuleItemList",
	ParamDeclarationList:              "kParamDeclarationList",
	PortDeclarationList:               "kPortDeclarationList",
	PortDeclaration:                   "kPortDeclaration",
	Port:                              "kPort",
	ParamDeclaration:                  "kParamDeclaration",
	ParamType:                         "kParamType",
	TypeDeclaration:                   "kTypeDeclaration",
	DataDeclaration:                   "kDataDeclaration",
	NetDeclaration:                    "kNetDeclaration",
	DataTypeImplicitBasicIdDimensions: "kDataTypeImplicitBasicIdDimensions",
	UnqualifiedId:                     "kUnqualifiedId",
	PackedDimensions:                  "kPackedDimensions",
	UnpackedDimensions:                "kUnpackedDimensions",
	DeclarationDimensions:             "kDeclarationDimensions",
	DimensionRange:                    "kDimensionRange",
	DimensionScalar:                   "kDimensionScalar",
	AlwaysStatement:                   "kAlwaysStatement",
	InitialStatement:                  "kInitialStatement",
	ContinuousAssign:                  "kContinuousAssign",
	EventControl:                      "kEventControl",
	SeqBlock:                          "kSeqBlock",
	GenerateRegion:                    "kGenerateRegion",
	ConditionalStatement:              "kConditionalStatement",
	CaseStatement:                     "kCaseStatement",
	CaseItem:                          "kCaseItem",
	DefaultCaseItem:                   "kDefaultCaseItem",
	Statement:                         "kStatement",
	Expression:                        "kExpression",
	UnaryPrefixExpression:             "kUnaryPrefixExpression",
	BinaryExpression:                  "kBinaryExpression",
	TernaryExpression:                 "kTernaryExpression",
	ConcatenationExpression:           "kConcatenationExpression",
	FunctionCall:                      "kFunctionCall",
	ParenGroup:                        "kParenGroup",
	HierarchyExtension:                "kHierarchyExtension",
	CastExpression:                    "kCastExpression",
	GateInstantiation:                 "kGateInstantiation",
	GateInstance:                      "kGateInstance",
	ActualNamedPort:                   "kActualNamedPort",
	ParamByName:                       "kParamByName",
	DefparamStatement:                 "kDefparamStatement",
	PreprocessorDefine:                "kPreprocessorDefine",
	PreprocessorDirective:             "kPreprocessorDirective",
	MacroCall:                         "kMacroCall",
	Number:                            "kNumber",
	InterfaceDeclaration:              "kInterfaceDeclaration",
	PackageDeclaration:                "kPackageDeclaration",
	PackageImport:                     "kPackageImport",
	FunctionDeclaration:               "kFunctionDeclaration",
	TaskDeclaration:                   "kTaskDeclaration",
	ClassDeclaration:                  "kClassDeclaration",
	Reference:                         "kReference",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "kInvalid"
}

// SymbolKind distinguishes nodes from leaves.
type SymbolKind int

const (
	NodeSymbol SymbolKind = iota
	LeafSymbol
)

// Symbol is either a *Node or a *Leaf.
type Symbol interface {
	Kind() SymbolKind
}

// Node is an interior tree element. Children may contain nil entries for
// optional constructs that were absent in the source.
type Node struct {
	Tag      NodeKind
	Children []Symbol
}

// Leaf wraps exactly one token.
type Leaf struct {
	Token token.Token
}

// NewNode builds a node, dropping nothing: nil children are kept so that
// positional accessors stay stable.
func NewNode(tag NodeKind, children ...Symbol) *Node {
	return &Node{Tag: tag, Children: children}
}

// NewLeaf wraps a token.
func NewLeaf(tok token.Token) *Leaf {
	return &Leaf{Token: tok}
}

func (*Node) Kind() SymbolKind { return NodeSymbol }
func (*Leaf) Kind() SymbolKind { return LeafSymbol }

// Append adds children to n and returns n.
func (n *Node) Append(children ...Symbol) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) Symbol {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FirstChildNode returns the first direct child node with the given tag.
func (n *Node) FirstChildNode(tag NodeKind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok && child != nil && child.Tag == tag {
			return child
		}
	}
	return nil
}

// FirstChildLeaf returns the first direct child leaf of the given kind.
func (n *Node) FirstChildLeaf(kind token.Kind) *Leaf {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if leaf, ok := c.(*Leaf); ok && leaf != nil && leaf.Token.Kind == kind {
			return leaf
		}
	}
	return nil
}

// AsNode returns s as a node, or nil.
func AsNode(s Symbol) *Node {
	n, _ := s.(*Node)
	return n
}

// AsLeaf returns s as a leaf, or nil.
func AsLeaf(s Symbol) *Leaf {
	l, _ := s.(*Leaf)
	return l
}

// IsNil reports whether s is nil or a typed nil pointer.
func IsNil(s Symbol) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case *Leaf:
		return v == nil
	}
	return false
}

// Leaves returns every leaf under s in source order.
func Leaves(s Symbol) []*Leaf {
	var out []*Leaf
	var visit func(Symbol)
	visit = func(s Symbol) {
		if IsNil(s) {
			return
		}
		switch v := s.(type) {
		case *Leaf:
			out = append(out, v)
		case *Node:
			for _, c := range v.Children {
				visit(c)
			}
		}
	}
	visit(s)
	return out
}

// LeftmostLeaf returns the first leaf under s, or nil.
func LeftmostLeaf(s Symbol) *Leaf {
	if IsNil(s) {
		return nil
	}
	if leaf, ok := s.(*Leaf); ok {
		return leaf
	}
	for _, c := range s.(*Node).Children {
		if leaf := LeftmostLeaf(c); leaf != nil {
			return leaf
		}
	}
	return nil
}

// RightmostLeaf returns the last leaf under s, or nil.
func RightmostLeaf(s Symbol) *Leaf {
	if IsNil(s) {
		return nil
	}
	if leaf, ok := s.(*Leaf); ok {
		return leaf
	}
	children := s.(*Node).Children
	for i := len(children) - 1; i >= 0; i-- {
		if leaf := RightmostLeaf(children[i]); leaf != nil {
			return leaf
		}
	}
	return nil
}

// StringSpan returns the source text covered by s, including the original
// whitespace between its tokens.
func StringSpan(contents string, s Symbol) string {
	left, right := LeftmostLeaf(s), RightmostLeaf(s)
	if left == nil || right == nil {
		return ""
	}
	return contents[left.Token.Left():right.Token.Right()]
}

// Describe renders the tree in an indented form, one symbol per line.
func Describe(s Symbol) string {
	var sb strings.Builder
	var visit func(Symbol, int)
	visit = func(s Symbol, depth int) {
		indent := strings.Repeat("  ", depth)
		switch v := s.(type) {
		case *Leaf:
			if v == nil {
				return
			}
			sb.WriteString(indent + v.Token.String() + "\n")
		case *Node:
			if v == nil {
				sb.WriteString(indent + "<nil>\n")
				return
			}
			sb.WriteString(indent + v.Tag.String() + "\n")
			for _, c := range v.Children {
				visit(c, depth+1)
			}
		}
	}
	visit(s, 0)
	return sb.String()
}
