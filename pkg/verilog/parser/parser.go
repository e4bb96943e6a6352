// Package parser builds a concrete syntax tree from Verilog tokens.
//
// The parser is deliberately shallow: it recognizes the constructs that lint
// rules and the formatter reason about (modules, ports, parameters,
// declarations, procedural blocks, instantiations, expressions and
// preprocessor definitions) and wraps anything else in kUnknown nodes. Every
// non-comment token appears exactly once in the resulting tree, so tree
// traversals see the same text the scanner produced.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/scanner"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// ErrUnexpectedEOF reports a construct truncated by the end of input. The
// tree returned alongside it is still complete.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// Analyze scans and parses contents. A scan error is fatal and yields a nil
// structure; a parse error is returned together with a usable structure.
func Analyze(contents string) (*cst.TextStructure, error) {
	tokens, err := scanner.Tokens(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	tree, err := Parse(contents, tokens)
	ts := cst.NewTextStructure(contents, tokens, tree)
	if err != nil {
		return ts, fmt.Errorf("failed to parse: %w", err)
	}
	return ts, nil
}

// Parse builds a kSourceText tree. Comment and EOF tokens are not part of
// the tree.
func Parse(contents string, tokens []token.Token) (*cst.Node, error) {
	p := &Parser{contents: contents}
	for _, tok := range tokens {
		if tok.Kind.IsComment() || tok.IsEOF() {
			continue
		}
		p.toks = append(p.toks, tok)
	}

	root := cst.NewNode(cst.SourceText)
	for !p.eof() {
		root.Append(p.parseDescription())
	}
	if len(p.errs) > 0 {
		return root, errors.Join(p.errs...)
	}
	return root, nil
}

// Parser holds the state of one parse.
type Parser struct {
	contents string
	toks     []token.Token
	pos      int
	errs     []error
}

func (p *Parser) eof() bool { return p.pos >= len(p.toks) }

// peek returns the token n positions ahead, or an EOF token.
func (p *Parser) peek(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token.New(token.EOF, "", len(p.contents))
}

func (p *Parser) kind() token.Kind { return p.peek(0).Kind }

func (p *Parser) at(kinds ...token.Kind) bool {
	k := p.kind()
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) next() *cst.Leaf {
	leaf := cst.NewLeaf(p.peek(0))
	p.pos++
	return leaf
}

// accept consumes the current token if it has one of kinds.
func (p *Parser) accept(kinds ...token.Kind) cst.Symbol {
	if !p.eof() && p.at(kinds...) {
		return p.next()
	}
	return nil
}

// expect consumes a token of the given kind or records an error. Nothing is
// consumed on mismatch.
func (p *Parser) expect(kind token.Kind) cst.Symbol {
	if s := p.accept(kind); s != nil {
		return s
	}
	if p.eof() {
		p.errs = append(p.errs, fmt.Errorf("%w: expected %s", ErrUnexpectedEOF, kind))
		return nil
	}
	tok := p.peek(0)
	p.errs = append(p.errs, fmt.Errorf("expected %s, got %q at offset %d", kind, tok.Text, tok.Offset))
	return nil
}

// sameLine reports whether the current token starts on the line where the
// previous token ended.
func (p *Parser) sameLine() bool {
	if p.eof() || p.pos == 0 {
		return false
	}
	prev := p.toks[p.pos-1]
	return !strings.Contains(p.contents[prev.Right():p.peek(0).Left()], "\n")
}

// skipToSync wraps tokens up to and including the next ';' in a kUnknown
// node. It stops before end keywords so enclosing constructs can close, and
// always consumes at least one token.
func (p *Parser) skipToSync() cst.Symbol {
	node := cst.NewNode(cst.Unknown)
	for !p.eof() {
		if len(node.Children) > 0 && p.kind().IsEndKeyword() {
			break
		}
		leaf := p.next()
		node.Append(leaf)
		if leaf.Token.Kind == token.Semicolon {
			break
		}
	}
	return node
}

// parseBalanced appends tokens through the delimiter that closes the open
// token at the current position.
func (p *Parser) parseBalanced(node *cst.Node, open, close token.Kind) {
	depth := 0
	for !p.eof() {
		leaf := p.next()
		node.Append(leaf)
		switch leaf.Token.Kind {
		case open:
			depth++
		case close, token.MacroCallCloseToEndLine:
			if leaf.Token.Kind == token.MacroCallCloseToEndLine && close != token.RParen {
				continue
			}
			depth--
			if depth == 0 {
				return
			}
		}
	}
	p.errs = append(p.errs, fmt.Errorf("%w: unbalanced %s", ErrUnexpectedEOF, open))
}

// parseDescription parses one top-level construct.
func (p *Parser) parseDescription() cst.Symbol {
	switch p.kind() {
	case token.KwModule, token.KwMacromodule:
		return p.parseModule(cst.ModuleDeclaration, token.KwEndmodule)
	case token.KwInterface:
		return p.parseModule(cst.InterfaceDeclaration, token.KwEndinterface)
	case token.KwPackage:
		return p.parsePackage()
	}
	return p.parseItem()
}

func (p *Parser) parseModule(tag cst.NodeKind, end token.Kind) cst.Symbol {
	header := cst.NewNode(cst.ModuleHeader, p.next())
	header.Append(p.expect(token.Identifier))
	if p.at(token.Hash) {
		header.Append(p.next(), p.parseParamDeclarationList())
	}
	if p.at(token.LParen) {
		header.Append(p.parsePortDeclarationList())
	}
	header.Append(p.expect(token.Semicolon))

	items := cst.NewNode(cst.ModuleItemList)
	for !p.eof() && !p.at(end) {
		items.Append(p.parseItem())
	}
	decl := cst.NewNode(tag, header, items, p.expect(end))
	p.parseEndLabel(decl)
	return decl
}

func (p *Parser) parsePackage() cst.Symbol {
	decl := cst.NewNode(cst.PackageDeclaration, p.next(), p.expect(token.Identifier), p.expect(token.Semicolon))
	for !p.eof() && !p.at(token.KwEndpackage) {
		decl.Append(p.parseItem())
	}
	decl.Append(p.expect(token.KwEndpackage))
	p.parseEndLabel(decl)
	return decl
}

// parseEndLabel consumes an optional ": label" after an end keyword.
func (p *Parser) parseEndLabel(node *cst.Node) {
	if p.at(token.Colon) && p.peek(1).Kind == token.Identifier {
		node.Append(p.next(), p.next())
	}
}

// parseParamDeclarationList parses "( parameter ... , ... )" after '#'.
func (p *Parser) parseParamDeclarationList() cst.Symbol {
	list := cst.NewNode(cst.ParamDeclarationList, p.expect(token.LParen))
	for !p.eof() && !p.at(token.RParen) {
		before := p.pos
		list.Append(p.parseParamDeclaration(false))
		if s := p.accept(token.Comma); s != nil {
			list.Append(s)
		}
		if p.pos == before {
			list.Append(p.next())
		}
	}
	return list.Append(p.expect(token.RParen))
}

// parsePortDeclarationList parses the port list of a module header, which
// may mix ANSI port declarations with bare port names.
func (p *Parser) parsePortDeclarationList() cst.Symbol {
	list := cst.NewNode(cst.PortDeclarationList, p.next())
	for !p.eof() && !p.at(token.RParen) {
		before := p.pos
		switch {
		case isDirection(p.kind()) || isDataTypeKeyword(p.kind()) || p.isUserTypedDeclaration():
			list.Append(p.parsePortDeclaration(false))
		case p.at(token.Identifier):
			port := cst.NewNode(cst.Port, cst.NewNode(cst.UnqualifiedId, p.next()))
			if p.at(token.LBracket) {
				port.Append(p.parseDimensions(cst.UnpackedDimensions))
			}
			list.Append(port)
		case p.at(token.Dot):
			list.Append(p.parseNamedPort(cst.Port))
		}
		if s := p.accept(token.Comma); s != nil {
			list.Append(s)
		}
		if p.pos == before {
			list.Append(p.next())
		}
	}
	return list.Append(p.expect(token.RParen))
}

// parsePortDeclaration parses "[direction] [type] [dims] name [dims]". When
// terminated is set, trailing names and the ';' of a non-ANSI declaration
// are consumed too.
func (p *Parser) parsePortDeclaration(terminated bool) cst.Symbol {
	decl := cst.NewNode(cst.PortDeclaration)
	if isDirection(p.kind()) {
		decl.Append(p.next())
	}
	decl.Append(p.parseDataTypeAndId(cst.DataTypeImplicitBasicIdDimensions))
	if p.at(token.LBracket) {
		decl.Append(p.parseDimensions(cst.UnpackedDimensions))
	}
	if p.at(token.Assign) {
		decl.Append(p.next(), p.parseExpression())
	}
	if terminated {
		for p.at(token.Comma) && p.peek(1).Kind == token.Identifier {
			decl.Append(p.next(), cst.NewNode(cst.UnqualifiedId, p.next()))
		}
		decl.Append(p.expect(token.Semicolon))
	}
	return decl
}

// parseDataTypeAndId parses an optional data type with packed dimensions
// followed by the declared identifier, as a single node tagged tag.
func (p *Parser) parseDataTypeAndId(tag cst.NodeKind) *cst.Node {
	node := cst.NewNode(tag)
	typed := false
	for !p.eof() {
		switch {
		case isDataTypeKeyword(p.kind()) || p.at(token.KwSigned, token.KwUnsigned, token.KwPacked):
			node.Append(p.next())
			typed = true
			continue
		case p.at(token.LBracket):
			node.Append(p.parseDimensions(cst.PackedDimensions))
			continue
		case p.at(token.Identifier) && p.peek(1).Kind == token.ScopeRes:
			node.Append(p.next(), p.next())
			continue
		case !typed && p.at(token.Identifier) && p.isTypeName():
			node.Append(p.next())
			typed = true
			continue
		}
		break
	}
	if p.at(token.Identifier, token.EscapedIdentifier) {
		node.Append(cst.NewNode(cst.UnqualifiedId, p.next()))
	} else {
		node.Append(p.expect(token.Identifier))
	}
	return node
}

// isTypeName reports whether the identifier at the current position names a
// type, i.e. another name follows it, possibly after packed dimensions.
func (p *Parser) isTypeName() bool {
	i := 1
	for p.peek(i).Kind == token.LBracket {
		depth := 0
	dims:
		for {
			switch p.peek(i).Kind {
			case token.EOF:
				return false
			case token.LBracket:
				depth++
			case token.RBracket:
				depth--
				if depth == 0 {
					i++
					break dims
				}
			}
			i++
		}
	}
	switch p.peek(i).Kind {
	case token.Identifier, token.EscapedIdentifier:
		return true
	}
	return false
}

// isUserTypedDeclaration reports "type_t name" at the current position.
func (p *Parser) isUserTypedDeclaration() bool {
	if !p.at(token.Identifier) {
		return false
	}
	if p.peek(1).Kind == token.ScopeRes {
		return p.peek(2).Kind == token.Identifier && p.peek(3).Kind == token.Identifier
	}
	next := p.peek(1).Kind
	if next != token.Identifier && next != token.EscapedIdentifier {
		return false
	}
	switch p.peek(2).Kind {
	case token.Semicolon, token.Comma, token.Assign, token.LBracket, token.RParen:
		return true
	}
	return false
}

// parseParamDeclaration parses "parameter [type] name = value". The keyword
// is optional inside a module header parameter list.
func (p *Parser) parseParamDeclaration(terminated bool) cst.Symbol {
	decl := cst.NewNode(cst.ParamDeclaration)
	if p.at(token.KwParameter, token.KwLocalparam) {
		decl.Append(p.next())
	}

	paramType := cst.NewNode(cst.ParamType)
	if p.at(token.KwType) {
		paramType.Append(p.next())
	} else {
	typeLoop:
		for !p.eof() && !p.isParamName() {
			switch {
			case p.at(token.LBracket):
				paramType.Append(p.parseDimensions(cst.PackedDimensions))
			case isDataTypeKeyword(p.kind()) || p.at(token.KwSigned, token.KwUnsigned, token.Identifier, token.ScopeRes):
				paramType.Append(p.next())
			default:
				break typeLoop
			}
		}
	}
	decl.Append(paramType)
	if p.at(token.Identifier) {
		decl.Append(cst.NewNode(cst.UnqualifiedId, p.next()))
	} else {
		decl.Append(p.expect(token.Identifier))
	}
	if p.at(token.LBracket) {
		decl.Append(p.parseDimensions(cst.UnpackedDimensions))
	}
	if p.at(token.Assign) {
		decl.Append(p.next(), p.parseExpression())
	}
	if terminated {
		for p.at(token.Comma) && p.peek(1).Kind == token.Identifier {
			decl.Append(p.next(), cst.NewNode(cst.UnqualifiedId, p.next()))
			if p.at(token.Assign) {
				decl.Append(p.next(), p.parseExpression())
			}
		}
		decl.Append(p.expect(token.Semicolon))
	}
	return decl
}

// isParamName reports whether the current identifier is the declared name
// rather than part of the type.
func (p *Parser) isParamName() bool {
	if !p.at(token.Identifier) {
		return false
	}
	switch p.peek(1).Kind {
	case token.Assign, token.Comma, token.Semicolon, token.RParen, token.LBracket:
		return true
	}
	return false
}

// parseDimensions parses consecutive [..] groups.
func (p *Parser) parseDimensions(tag cst.NodeKind) cst.Symbol {
	dims := cst.NewNode(tag)
	for p.at(token.LBracket) {
		dims.Append(p.parseSelect())
	}
	return dims
}

// parseItem parses a module item or a procedural statement; the grammar
// overlaps enough in generate regions and blocks that one entry point
// serves both.
func (p *Parser) parseItem() cst.Symbol {
	k := p.kind()
	switch {
	case k.IsPreprocessor():
		return p.parsePreprocessor()
	case k == token.MacroCallId:
		return p.parseMacroCall()
	case k == token.KwParameter || k == token.KwLocalparam:
		return p.parseParamDeclaration(true)
	case isDirection(k):
		return p.parsePortDeclaration(true)
	case isNetKeyword(k):
		return p.parseDataDeclaration(cst.NetDeclaration)
	case isDataTypeKeyword(k) || p.isUserTypedDeclaration():
		return p.parseDataDeclaration(cst.DataDeclaration)
	case k == token.KwAlways || k == token.KwAlwaysComb || k == token.KwAlwaysFF || k == token.KwAlwaysLatch:
		return p.parseAlways(cst.AlwaysStatement)
	case k == token.KwInitial:
		return p.parseAlways(cst.InitialStatement)
	case k == token.KwAssign:
		return p.parseContinuousAssign()
	case k == token.KwDefparam:
		node := cst.NewNode(cst.DefparamStatement, p.next())
		node.Append(p.parseLValue(), p.expect(token.Assign), p.parseExpression())
		return node.Append(p.expect(token.Semicolon))
	case k == token.KwGenerate:
		node := cst.NewNode(cst.GenerateRegion, p.next())
		for !p.eof() && !p.at(token.KwEndgenerate) {
			node.Append(p.parseItem())
		}
		return node.Append(p.expect(token.KwEndgenerate))
	case k == token.KwBegin:
		return p.parseBlock()
	case k == token.KwIf:
		return p.parseConditional()
	case k == token.KwCase || k == token.KwCasex || k == token.KwCasez:
		return p.parseCase()
	case k == token.KwFor || k == token.KwWhile || k == token.KwRepeat:
		node := cst.NewNode(cst.Statement, p.next())
		if p.at(token.LParen) {
			group := cst.NewNode(cst.ParenGroup)
			p.parseBalanced(group, token.LParen, token.RParen)
			node.Append(group)
		}
		return node.Append(p.parseItem())
	case k == token.KwForever:
		return cst.NewNode(cst.Statement, p.next(), p.parseItem())
	case k == token.KwReturn:
		node := cst.NewNode(cst.Statement, p.next())
		if !p.at(token.Semicolon) {
			node.Append(p.parseExpression())
		}
		return node.Append(p.expect(token.Semicolon))
	case k == token.KwFunction:
		return p.parseSubroutine(cst.FunctionDeclaration, token.KwEndfunction)
	case k == token.KwTask:
		return p.parseSubroutine(cst.TaskDeclaration, token.KwEndtask)
	case k == token.KwClass:
		return p.parseUntil(cst.ClassDeclaration, token.KwEndclass)
	case k == token.KwTypedef:
		return p.parseTerminated(cst.TypeDeclaration)
	case k == token.KwImport:
		return p.parseTerminated(cst.PackageImport)
	case k == token.At:
		return cst.NewNode(cst.Statement, p.parseEventControl(), p.parseItem())
	case k == token.Hash:
		node := cst.NewNode(cst.Statement, p.next())
		node.Append(p.parsePrimary())
		return node.Append(p.parseItem())
	case k == token.Semicolon:
		return cst.NewNode(cst.Statement, p.next())
	case k == token.Identifier && (p.peek(1).Kind == token.Hash || p.isInstanceName(1)):
		return p.parseInstantiation()
	case k == token.Identifier || k == token.SystemTFIdentifier || k == token.MacroIdentifier ||
		k == token.LBrace || k == token.Increment || k == token.Decrement:
		return p.parseStatement()
	}
	return p.skipToSync()
}

// isInstanceName reports "type name (" starting n tokens ahead of a type.
func (p *Parser) isInstanceName(n int) bool {
	if p.peek(n).Kind != token.Identifier {
		return false
	}
	next := p.peek(n + 1).Kind
	return next == token.LParen || next == token.LBracket
}

func (p *Parser) parseDataDeclaration(tag cst.NodeKind) cst.Symbol {
	decl := cst.NewNode(tag)
	if isNetKeyword(p.kind()) && tag == cst.NetDeclaration {
		decl.Append(p.next())
	}
	decl.Append(p.parseDataTypeAndId(cst.DataTypeImplicitBasicIdDimensions))
	for {
		if p.at(token.LBracket) {
			decl.Append(p.parseDimensions(cst.UnpackedDimensions))
		}
		if p.at(token.Assign) {
			decl.Append(p.next(), p.parseExpression())
		}
		if !p.at(token.Comma) {
			break
		}
		decl.Append(p.next())
		if p.at(token.Identifier, token.EscapedIdentifier) {
			decl.Append(cst.NewNode(cst.UnqualifiedId, p.next()))
		}
	}
	return decl.Append(p.expect(token.Semicolon))
}

func (p *Parser) parseAlways(tag cst.NodeKind) cst.Symbol {
	node := cst.NewNode(tag, p.next())
	if p.at(token.At) {
		node.Append(p.parseEventControl())
	}
	return node.Append(p.parseItem())
}

// parseEventControl parses "@*", "@(*)", "@ident" and "@(event or event)".
func (p *Parser) parseEventControl() cst.Symbol {
	node := cst.NewNode(cst.EventControl, p.next())
	switch {
	case p.at(token.Star):
		node.Append(p.next())
	case p.at(token.LParen) && p.peek(1).Kind == token.Star && p.peek(2).Kind == token.RParen:
		node.Append(cst.NewNode(cst.ParenGroup, p.next(), p.next(), p.next()))
	case p.at(token.LParen):
		group := cst.NewNode(cst.ParenGroup, p.next())
		events := cst.NewNode(cst.Expression)
		for !p.eof() && !p.at(token.RParen) {
			before := p.pos
			if s := p.accept(token.KwPosedge, token.KwNegedge); s != nil {
				events.Append(s)
			}
			events.Append(p.parseBinary(0))
			if s := p.accept(token.KwOr, token.Comma); s != nil {
				events.Append(s)
			}
			if p.pos == before {
				events.Append(p.next())
			}
		}
		group.Append(events, p.expect(token.RParen))
		node.Append(group)
	case p.at(token.Identifier):
		node.Append(p.next())
	}
	return node
}

func (p *Parser) parseContinuousAssign() cst.Symbol {
	node := cst.NewNode(cst.ContinuousAssign, p.next())
	for !p.eof() {
		node.Append(p.parseLValue(), p.expect(token.Assign), p.parseExpression())
		if !p.at(token.Comma) {
			break
		}
		node.Append(p.next())
	}
	return node.Append(p.expect(token.Semicolon))
}

// parseBlock parses "begin [: label] items end [: label]".
func (p *Parser) parseBlock() cst.Symbol {
	block := cst.NewNode(cst.SeqBlock, p.next())
	p.parseEndLabel(block)
	for !p.eof() && !p.at(token.KwEnd) {
		block.Append(p.parseItem())
	}
	block.Append(p.expect(token.KwEnd))
	p.parseEndLabel(block)
	return block
}

func (p *Parser) parseConditional() cst.Symbol {
	node := cst.NewNode(cst.ConditionalStatement, p.next())
	node.Append(p.parseParenExpression(), p.parseItem())
	if p.at(token.KwElse) {
		node.Append(p.next(), p.parseItem())
	}
	return node
}

func (p *Parser) parseParenExpression() cst.Symbol {
	group := cst.NewNode(cst.ParenGroup, p.expect(token.LParen))
	if !p.at(token.RParen) {
		group.Append(p.parseExpression())
	}
	return group.Append(p.expect(token.RParen))
}

func (p *Parser) parseCase() cst.Symbol {
	node := cst.NewNode(cst.CaseStatement, p.next())
	node.Append(p.parseParenExpression())
	for !p.eof() && !p.at(token.KwEndcase) {
		before := p.pos
		if p.at(token.KwDefault) {
			item := cst.NewNode(cst.DefaultCaseItem, p.next())
			if s := p.accept(token.Colon); s != nil {
				item.Append(s)
			}
			node.Append(item.Append(p.parseItem()))
			continue
		}
		item := cst.NewNode(cst.CaseItem)
		for !p.eof() && !p.at(token.Colon) {
			item.Append(p.parseExpression())
			if s := p.accept(token.Comma); s != nil {
				item.Append(s)
			} else {
				break
			}
		}
		item.Append(p.expect(token.Colon))
		item.Append(p.parseItem())
		node.Append(item)
		if p.pos == before {
			node.Append(p.next())
		}
	}
	return node.Append(p.expect(token.KwEndcase))
}

// parseSubroutine parses a function or task: a header through ';' followed
// by items up to the end keyword.
func (p *Parser) parseSubroutine(tag cst.NodeKind, end token.Kind) cst.Symbol {
	node := cst.NewNode(tag, p.next())
	for !p.eof() && !p.at(token.Semicolon) {
		if p.at(token.LParen) {
			group := cst.NewNode(cst.ParenGroup)
			p.parseBalanced(group, token.LParen, token.RParen)
			node.Append(group)
			continue
		}
		node.Append(p.next())
	}
	node.Append(p.expect(token.Semicolon))
	for !p.eof() && !p.at(end) {
		node.Append(p.parseItem())
	}
	node.Append(p.expect(end))
	p.parseEndLabel(node)
	return node
}

// parseUntil wraps every token through the end keyword.
func (p *Parser) parseUntil(tag cst.NodeKind, end token.Kind) cst.Symbol {
	node := cst.NewNode(tag)
	for !p.eof() {
		leaf := p.next()
		node.Append(leaf)
		if leaf.Token.Kind == end {
			p.parseEndLabel(node)
			return node
		}
	}
	p.errs = append(p.errs, fmt.Errorf("%w: expected %s", ErrUnexpectedEOF, end))
	return node
}

// parseTerminated wraps tokens through ';', keeping braces balanced.
func (p *Parser) parseTerminated(tag cst.NodeKind) cst.Symbol {
	node := cst.NewNode(tag)
	depth := 0
	for !p.eof() {
		leaf := p.next()
		node.Append(leaf)
		switch leaf.Token.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		case token.Semicolon:
			if depth <= 0 {
				return node
			}
		}
	}
	return node
}

// parseInstantiation parses "type [#(params)] name [dims] (ports) {, ...};".
func (p *Parser) parseInstantiation() cst.Symbol {
	node := cst.NewNode(cst.GateInstantiation, p.next())
	if p.at(token.Hash) {
		node.Append(p.next(), p.parseConnectionList(cst.ParamByName))
	}
	for !p.eof() {
		instance := cst.NewNode(cst.GateInstance, p.expect(token.Identifier))
		if p.at(token.LBracket) {
			instance.Append(p.parseDimensions(cst.UnpackedDimensions))
		}
		if p.at(token.LParen) {
			instance.Append(p.parseConnectionList(cst.ActualNamedPort))
		}
		node.Append(instance)
		if !p.at(token.Comma) {
			break
		}
		node.Append(p.next())
	}
	return node.Append(p.expect(token.Semicolon))
}

// parseConnectionList parses "( .a(b), c, .* )" for ports and parameters;
// named connections are tagged named.
func (p *Parser) parseConnectionList(named cst.NodeKind) cst.Symbol {
	group := cst.NewNode(cst.ParenGroup, p.expect(token.LParen))
	for !p.eof() && !p.at(token.RParen) {
		before := p.pos
		if p.at(token.Dot) {
			group.Append(p.parseNamedPort(named))
		} else if !p.at(token.Comma) {
			group.Append(p.parseExpression())
		}
		if s := p.accept(token.Comma); s != nil {
			group.Append(s)
		}
		if p.pos == before {
			group.Append(p.next())
		}
	}
	return group.Append(p.expect(token.RParen))
}

// parseNamedPort parses ".name(expr)", ".name" and ".*".
func (p *Parser) parseNamedPort(tag cst.NodeKind) cst.Symbol {
	node := cst.NewNode(tag, p.next())
	if s := p.accept(token.Star); s != nil {
		return node.Append(s)
	}
	node.Append(p.expect(token.Identifier))
	if p.at(token.LParen) {
		group := cst.NewNode(cst.ParenGroup, p.next())
		if !p.at(token.RParen) {
			group.Append(p.parseExpression())
		}
		node.Append(group.Append(p.expect(token.RParen)))
	}
	return node
}

// parseStatement parses assignments, increments and call statements.
func (p *Parser) parseStatement() cst.Symbol {
	stmt := cst.NewNode(cst.Statement)
	if s := p.accept(token.Increment, token.Decrement); s != nil {
		stmt.Append(s)
	}
	stmt.Append(p.parseLValue())
	switch {
	case p.at(token.Assign, token.LessEq, token.PlusAssign, token.MinusAssign):
		stmt.Append(p.next())
		if p.at(token.Hash) {
			stmt.Append(p.next(), p.parsePrimary())
		}
		stmt.Append(p.parseExpression())
	case p.at(token.Increment, token.Decrement):
		stmt.Append(p.next())
	}
	if p.at(token.Semicolon) {
		return stmt.Append(p.next())
	}
	if p.eof() || p.kind().IsEndKeyword() {
		return stmt.Append(p.expect(token.Semicolon))
	}
	return stmt.Append(p.skipToSync())
}

// parsePreprocessor parses a directive together with the arguments that
// share its line.
func (p *Parser) parsePreprocessor() cst.Symbol {
	if p.at(token.PPDefine) {
		node := cst.NewNode(cst.PreprocessorDefine, p.next())
		if s := p.accept(token.PPIdentifier); s != nil {
			node.Append(s)
		}
		if p.at(token.LParen) {
			formals := cst.NewNode(cst.ParenGroup)
			p.parseBalanced(formals, token.LParen, token.RParen)
			node.Append(formals)
		}
		return node.Append(p.expect(token.PPDefineBody))
	}
	node := cst.NewNode(cst.PreprocessorDirective, p.next())
	for !p.eof() && p.sameLine() && !p.kind().IsPreprocessor() {
		node.Append(p.next())
	}
	return node
}

func (p *Parser) parseMacroCall() cst.Symbol {
	node := cst.NewNode(cst.MacroCall, p.next())
	if p.at(token.LParen) {
		p.parseBalanced(node, token.LParen, token.RParen)
	}
	if s := p.accept(token.Semicolon); s != nil {
		node.Append(s)
	}
	return node
}

func isDirection(k token.Kind) bool {
	return k == token.KwInput || k == token.KwOutput || k == token.KwInout
}

func isNetKeyword(k token.Kind) bool {
	return k == token.KwWire
}

func isDataTypeKeyword(k token.Kind) bool {
	switch k {
	case token.KwWire, token.KwReg, token.KwLogic, token.KwBit, token.KwInt,
		token.KwInteger, token.KwReal, token.KwString, token.KwTime,
		token.KwEnum, token.KwStruct:
		return true
	}
	return false
}
