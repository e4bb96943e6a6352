// Package token defines the lexical tokens of Verilog and SystemVerilog
// source text as produced by the scanner.
package token

import "fmt"

// Token is an immutable lexical unit. Offset is the byte offset of the first
// character of Text in the analyzed contents.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// New returns a token of the given kind.
func New(kind Kind, text string, offset int) Token {
	return Token{Kind: kind, Text: text, Offset: offset}
}

// Left returns the byte offset where the token starts.
func (t Token) Left() int { return t.Offset }

// Right returns the byte offset one past the end of the token.
func (t Token) Right() int { return t.Offset + len(t.Text) }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

func (t Token) String() string {
	return fmt.Sprintf("(#%s @%d-%d: %q)", t.Kind, t.Left(), t.Right(), t.Text)
}
