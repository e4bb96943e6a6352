// Package scanner splits Verilog and SystemVerilog source text into tokens.
//
// Whitespace is skipped but never rewritten: every token records its byte
// offset into the original contents, so the text between two tokens can
// always be recovered from the contents.
package scanner

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

var (
	// ErrUnterminatedString is returned for a string literal that reaches a
	// newline or the end of input before its closing quote.
	ErrUnterminatedString = errors.New("unterminated string literal")
	// ErrUnterminatedComment is returned for a block comment without "*/".
	ErrUnterminatedComment = errors.New("unterminated block comment")
)

type defineState int

const (
	defineNone defineState = iota
	defineName
	defineParams
	defineBody
)

// Scanner is a lexical scanner for Verilog source text.
type Scanner struct {
	src  string
	pos  int
	last token.Kind

	define      defineState
	defineDepth int

	// macroDepth tracks open parentheses of the innermost macro call.
	macroDepth []int
}

// New creates a Scanner over contents.
func New(contents string) *Scanner {
	return &Scanner{src: contents}
}

// Tokens scans the whole input. The returned slice always ends with an EOF
// token, and contains comments but no whitespace.
func Tokens(contents string) ([]token.Token, error) {
	s := New(contents)
	var tokens []token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOF() {
			return tokens, nil
		}
	}
}

// Next returns the next token.
func (s *Scanner) Next() (token.Token, error) {
	tok, err := s.scan()
	if err != nil {
		return token.Token{}, err
	}
	s.last = tok.Kind
	return tok, nil
}

func (s *Scanner) scan() (token.Token, error) {
	if s.define == defineBody {
		return s.scanDefineBody(), nil
	}

	s.skipWhitespace()
	if s.pos >= len(s.src) {
		return token.New(token.EOF, "", len(s.src)), nil
	}

	start := s.pos
	ch := s.src[s.pos]
	if s.define == defineName && !isIdentStart(ch) {
		s.define = defineNone
	}

	switch {
	case s.define == defineName && isIdentStart(ch):
		name := s.scanIdentifier()
		if s.pos < len(s.src) && s.src[s.pos] == '(' {
			s.define = defineParams
			s.defineDepth = 0
		} else {
			s.define = defineBody
		}
		return token.New(token.PPIdentifier, name, start), nil

	case s.last == token.BasedNumberBase && isBasedDigit(ch):
		for s.pos < len(s.src) && isBasedDigit(s.src[s.pos]) {
			s.pos++
		}
		return s.token(token.BasedNumberDigits, start), nil

	case isIdentStart(ch):
		text := s.scanIdentifier()
		return token.New(token.LookupKeyword(text), text, start), nil

	case ch == '$':
		s.pos++
		s.scanIdentifier()
		return s.token(token.SystemTFIdentifier, start), nil

	case ch == '\\':
		for s.pos < len(s.src) && !isSpace(s.src[s.pos]) {
			s.pos++
		}
		return s.token(token.EscapedIdentifier, start), nil

	case ch == '`':
		return s.scanDirective(), nil

	case isDigit(ch):
		return s.scanNumber(), nil

	case ch == '\'':
		return s.scanApostrophe(), nil

	case ch == '"':
		return s.scanString()

	case ch == '/' && (s.peek() == '/' || s.peek() == '*'):
		return s.scanComment()
	}

	if tok, ok := s.scanOperator(); ok {
		return tok, nil
	}

	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return s.token(token.Unknown, start), nil
}

func (s *Scanner) token(kind token.Kind, start int) token.Token {
	return token.New(kind, s.src[start:s.pos], start)
}

// peek returns the byte after the current one, or 0.
func (s *Scanner) peek() byte {
	if s.pos+1 < len(s.src) {
		return s.src[s.pos+1]
	}
	return 0
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) scanIdentifier() string {
	start := s.pos
	for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *Scanner) scanDirective() token.Token {
	start := s.pos
	s.pos++
	s.scanIdentifier()
	text := s.src[start:s.pos]
	kind := token.LookupDirective(text)
	switch {
	case kind == token.PPDefine:
		s.define = defineName
	case kind == token.MacroIdentifier && s.pos < len(s.src) && s.src[s.pos] == '(':
		kind = token.MacroCallId
		s.macroDepth = append(s.macroDepth, 0)
	}
	return token.New(kind, text, start)
}

// scanDefineBody consumes the rest of a macro definition up to the first
// newline that is not escaped with a backslash. Trailing blanks are not part
// of the body, which may be empty.
func (s *Scanner) scanDefineBody() token.Token {
	s.define = defineNone
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && s.pos+1 < len(s.src) && (s.src[s.pos+1] == '\n' || s.src[s.pos+1] == '\r') {
			s.pos += 2
			continue
		}
		if c == '\n' {
			break
		}
		s.pos++
	}
	body := strings.TrimRight(s.src[start:s.pos], " \t\r")
	return token.New(token.PPDefineBody, body, start)
}

// scanNumber scans decimal, real and time literals. A decimal number may be
// the width of a following based literal.
func (s *Scanner) scanNumber() token.Token {
	start := s.pos
	s.scanDigits()
	kind := token.DecNumber
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && isDigit(s.src[s.pos+1]) {
		s.pos++
		s.scanDigits()
		kind = token.RealNumber
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		save := s.pos
		s.pos++
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			s.pos++
		}
		if s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.scanDigits()
			kind = token.RealNumber
		} else {
			s.pos = save
		}
	}
	for _, unit := range []string{"ms", "us", "ns", "ps", "fs", "s"} {
		if strings.HasPrefix(s.src[s.pos:], unit) {
			end := s.pos + len(unit)
			if end >= len(s.src) || !isIdentChar(s.src[end]) {
				s.pos = end
				kind = token.TimeLiteral
			}
			break
		}
	}
	return s.token(kind, start)
}

func (s *Scanner) scanDigits() {
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.pos++
	}
}

// scanApostrophe distinguishes a numeric base ('h, 'sb), an unbased literal
// ('0, 'x) and a plain apostrophe used by casts and assignment patterns.
func (s *Scanner) scanApostrophe() token.Token {
	start := s.pos
	i := s.pos + 1
	if i < len(s.src) && (s.src[i] == 's' || s.src[i] == 'S') {
		i++
	}
	if i < len(s.src) && strings.IndexByte("dDhHoObB", s.src[i]) >= 0 {
		next := i + 1
		for next < len(s.src) && (s.src[next] == ' ' || s.src[next] == '\t') {
			next++
		}
		if next < len(s.src) && isBasedDigit(s.src[next]) {
			s.pos = i + 1
			return s.token(token.BasedNumberBase, start)
		}
	}
	if i := s.pos + 1; i < len(s.src) && strings.IndexByte("01xXzZ", s.src[i]) >= 0 {
		if i+1 >= len(s.src) || !isIdentChar(s.src[i+1]) {
			s.pos = i + 1
			return s.token(token.UnBasedNumber, start)
		}
	}
	s.pos++
	return s.token(token.Apostrophe, start)
}

func (s *Scanner) scanString() (token.Token, error) {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '"':
			s.pos++
			return s.token(token.StringLiteral, start), nil
		case '\n':
			return token.Token{}, fmt.Errorf("%w at offset %d", ErrUnterminatedString, start)
		}
		s.pos++
	}
	return token.Token{}, fmt.Errorf("%w at offset %d", ErrUnterminatedString, start)
}

func (s *Scanner) scanComment() (token.Token, error) {
	start := s.pos
	if s.peek() == '/' {
		end := strings.IndexByte(s.src[s.pos:], '\n')
		if end < 0 {
			s.pos = len(s.src)
		} else {
			s.pos += end
		}
		return token.New(token.EOLComment, strings.TrimRight(s.src[start:s.pos], "\r"), start), nil
	}
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end < 0 {
		return token.Token{}, fmt.Errorf("%w at offset %d", ErrUnterminatedComment, start)
	}
	s.pos += 2 + end + 2
	return s.token(token.BlockComment, start), nil
}

func (s *Scanner) scanOperator() (token.Token, bool) {
	start := s.pos
	for n := 3; n > 0; n-- {
		if s.pos+n > len(s.src) {
			continue
		}
		kind, ok := token.LookupOperator(s.src[s.pos : s.pos+n])
		if !ok {
			continue
		}
		s.pos += n
		s.trackParens(kind)
		if kind == token.RParen && s.closesMacroCallLine() {
			kind = token.MacroCallCloseToEndLine
		}
		return s.token(kind, start), true
	}
	return token.Token{}, false
}

// trackParens follows parenthesis nesting inside macro definition formals and
// macro call arguments.
func (s *Scanner) trackParens(kind token.Kind) {
	if s.define == defineParams {
		switch kind {
		case token.LParen:
			s.defineDepth++
		case token.RParen:
			s.defineDepth--
			if s.defineDepth == 0 {
				s.define = defineBody
			}
		}
		return
	}
	if len(s.macroDepth) == 0 {
		return
	}
	top := len(s.macroDepth) - 1
	switch kind {
	case token.LParen:
		s.macroDepth[top]++
	case token.RParen:
		s.macroDepth[top]--
	}
}

// closesMacroCallLine reports whether the ')' just consumed closed a macro
// call and is the last token on its line, ignoring comments.
func (s *Scanner) closesMacroCallLine() bool {
	if len(s.macroDepth) == 0 || s.macroDepth[len(s.macroDepth)-1] != 0 {
		return false
	}
	s.macroDepth = s.macroDepth[:len(s.macroDepth)-1]
	rest := s.src[s.pos:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	rest = strings.TrimSpace(rest)
	return rest == "" || strings.HasPrefix(rest, "//")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '$' }

func isBasedDigit(c byte) bool {
	return isDigit(c) || c == '_' || c == '?' || strings.IndexByte("abcdefABCDEFxXzZ", c) >= 0
}
