package parser

import (
	"fmt"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// binaryPrecedence maps binary operators to their binding strength; higher
// binds tighter.
var binaryPrecedence = map[token.Kind]int{
	token.LogicalOr:       1,
	token.LogicalAnd:      2,
	token.Pipe:            3,
	token.Nor:             3,
	token.Caret:           4,
	token.Xnor:            4,
	token.Ampersand:       5,
	token.Nand:            5,
	token.Equal:           6,
	token.NotEqual:        6,
	token.CaseEqual:       6,
	token.CaseNotEqual:    6,
	token.Less:            7,
	token.LessEq:          7,
	token.Greater:         7,
	token.GreaterEq:       7,
	token.ShiftLeft:       8,
	token.ShiftRight:      8,
	token.ArithShiftLeft:  8,
	token.ArithShiftRight: 8,
	token.Plus:            9,
	token.Minus:           9,
	token.Star:            10,
	token.Slash:           10,
	token.Percent:         10,
	token.Power:           11,
}

// parseExpression parses a full expression and wraps it in a kExpression
// node. Sub-expressions are not wrapped.
func (p *Parser) parseExpression() cst.Symbol {
	return cst.NewNode(cst.Expression, p.parseTernary())
}

func (p *Parser) parseTernary() cst.Symbol {
	cond := p.parseBinary(1)
	if !p.at(token.Question) {
		return cond
	}
	node := cst.NewNode(cst.TernaryExpression, cond, p.next(), p.parseTernary())
	node.Append(p.expect(token.Colon))
	return node.Append(p.parseTernary())
}

// parseBinary parses operators binding at least as tightly as minPrec,
// left-associatively.
func (p *Parser) parseBinary(minPrec int) cst.Symbol {
	lhs := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.kind()]
		if !ok || prec < minPrec || p.eof() {
			return lhs
		}
		op := p.next()
		rhs := p.parseBinary(prec + 1)
		lhs = cst.NewNode(cst.BinaryExpression, lhs, op, rhs)
	}
}

func (p *Parser) parseUnary() cst.Symbol {
	if p.kind().IsUnaryOperator() {
		op := p.next()
		return cst.NewNode(cst.UnaryPrefixExpression, op, p.parseUnary())
	}
	return p.parsePrimary()
}

// parsePrimary parses an operand: a number, a reference with its selects,
// a call, a cast, a grouped or concatenated expression, or a macro call.
func (p *Parser) parsePrimary() cst.Symbol {
	switch k := p.kind(); {
	case k == token.DecNumber:
		num := cst.NewNode(cst.Number, p.next())
		if p.at(token.BasedNumberBase) {
			num.Append(p.next())
			if s := p.accept(token.BasedNumberDigits); s != nil {
				num.Append(s)
			}
		}
		return p.parseCast(num)
	case k == token.BasedNumberBase:
		num := cst.NewNode(cst.Number, p.next())
		if s := p.accept(token.BasedNumberDigits); s != nil {
			num.Append(s)
		}
		return num
	case k == token.UnBasedNumber || k == token.RealNumber || k == token.TimeLiteral:
		return cst.NewNode(cst.Number, p.next())
	case k == token.StringLiteral:
		return p.next()
	case k == token.MacroCallId:
		node := cst.NewNode(cst.MacroCall, p.next())
		p.parseBalanced(node, token.LParen, token.RParen)
		return node
	case k == token.Identifier || k == token.EscapedIdentifier ||
		k == token.SystemTFIdentifier || k == token.MacroIdentifier:
		return p.parseCast(p.parseReference())
	case k == token.KwNew:
		call := cst.NewNode(cst.FunctionCall, p.next())
		if p.at(token.LParen) {
			call.Append(p.parseArguments())
		}
		return call
	case isDataTypeKeyword(k) || k == token.KwSigned || k == token.KwUnsigned:
		if p.peek(1).Kind == token.Apostrophe {
			return p.parseCast(p.next())
		}
	case k == token.LParen:
		group := cst.NewNode(cst.ParenGroup, p.next(), p.parseExpression())
		if s := p.accept(token.MacroCallCloseToEndLine); s != nil {
			return group.Append(s)
		}
		return group.Append(p.expect(token.RParen))
	case k == token.LBrace:
		return p.parseConcatenation(cst.NewNode(cst.ConcatenationExpression))
	case k == token.Apostrophe && p.peek(1).Kind == token.LBrace:
		return p.parseConcatenation(cst.NewNode(cst.ConcatenationExpression, p.next()))
	}

	if p.eof() || isExpressionTerminator(p.kind()) {
		tok := p.peek(0)
		p.errs = append(p.errs, fmt.Errorf("expected expression, got %q at offset %d", tok.Text, tok.Offset))
		return nil
	}
	return cst.NewNode(cst.Unknown, p.next())
}

// parseReference parses an identifier followed by any package scopes,
// hierarchy steps, selects and call arguments.
func (p *Parser) parseReference() cst.Symbol {
	var ref cst.Symbol = p.next()
	wrap := func() *cst.Node {
		if n := cst.AsNode(ref); n != nil && n.Tag == cst.Reference {
			return n
		}
		n := cst.NewNode(cst.Reference, ref)
		ref = n
		return n
	}
	for !p.eof() {
		switch {
		case p.at(token.ScopeRes):
			wrap().Append(p.next(), p.accept(token.Identifier, token.Star))
		case p.at(token.Dot) && p.peek(1).Kind == token.Identifier:
			wrap().Append(cst.NewNode(cst.HierarchyExtension, p.next(), p.next()))
		case p.at(token.LBracket):
			wrap().Append(p.parseSelect())
		case p.at(token.LParen) && p.sameLine():
			ref = cst.NewNode(cst.FunctionCall, ref, p.parseArguments())
		default:
			return ref
		}
	}
	return ref
}

// parseCast parses "type'(expr)" when an apostrophe follows operand.
func (p *Parser) parseCast(operand cst.Symbol) cst.Symbol {
	if !p.at(token.Apostrophe) || p.peek(1).Kind != token.LParen {
		return operand
	}
	cast := cst.NewNode(cst.CastExpression, operand, p.next())
	group := cst.NewNode(cst.ParenGroup, p.next(), p.parseExpression())
	return cast.Append(group.Append(p.expect(token.RParen)))
}

// parseArguments parses a parenthesized, comma-separated argument list.
func (p *Parser) parseArguments() cst.Symbol {
	group := cst.NewNode(cst.ParenGroup, p.next())
	for !p.eof() && !p.at(token.RParen, token.MacroCallCloseToEndLine) {
		before := p.pos
		if !p.at(token.Comma) {
			group.Append(p.parseExpression())
		}
		if s := p.accept(token.Comma); s != nil {
			group.Append(s)
		}
		if p.pos == before {
			group.Append(p.next())
		}
	}
	if s := p.accept(token.MacroCallCloseToEndLine); s != nil {
		return group.Append(s)
	}
	return group.Append(p.expect(token.RParen))
}

// parseSelect parses "[i]", "[msb:lsb]", "[base+:width]" and "[base-:width]".
func (p *Parser) parseSelect() cst.Symbol {
	open := p.next()
	if p.at(token.RBracket) {
		return cst.NewNode(cst.DimensionScalar, open, p.next())
	}
	first := p.parseExpression()
	if p.at(token.Colon, token.PlusColon, token.MinusColon) {
		node := cst.NewNode(cst.DimensionRange, open, first, p.next(), p.parseExpression())
		return node.Append(p.expect(token.RBracket))
	}
	return cst.NewNode(cst.DimensionScalar, open, first, p.expect(token.RBracket))
}

// parseConcatenation parses "{a, b}" and replications such as "{4{a}}".
func (p *Parser) parseConcatenation(node *cst.Node) cst.Symbol {
	node.Append(p.expect(token.LBrace))
	for !p.eof() && !p.at(token.RBrace) {
		before := p.pos
		switch {
		case p.at(token.LBrace):
			node.Append(p.parseConcatenation(cst.NewNode(cst.ConcatenationExpression)))
		case !p.at(token.Comma):
			node.Append(p.parseExpression())
		}
		if s := p.accept(token.Comma, token.Colon); s != nil {
			node.Append(s)
		}
		if p.pos == before {
			node.Append(p.next())
		}
	}
	return node.Append(p.expect(token.RBrace))
}

// parseLValue parses the target of an assignment.
func (p *Parser) parseLValue() cst.Symbol {
	switch {
	case p.at(token.LBrace):
		return p.parseConcatenation(cst.NewNode(cst.ConcatenationExpression))
	case p.at(token.Identifier, token.EscapedIdentifier, token.SystemTFIdentifier, token.MacroIdentifier):
		return p.parseReference()
	case p.at(token.MacroCallId):
		return p.parsePrimary()
	}
	tok := p.peek(0)
	p.errs = append(p.errs, fmt.Errorf("expected assignment target, got %q at offset %d", tok.Text, tok.Offset))
	return nil
}

func isExpressionTerminator(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.Comma, token.RParen, token.RBracket, token.RBrace,
		token.Colon, token.MacroCallCloseToEndLine, token.EOF:
		return true
	}
	return k.IsEndKeyword()
}
