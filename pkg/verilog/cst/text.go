package cst

import (
	"strings"
	"sync"

	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// TextStructure is one analyzed source unit: the original contents, its
// tokens (comments included, EOF last), its raw lines and its syntax tree.
type TextStructure struct {
	Contents string
	Tokens   []token.Token
	Lines    []string
	Tree     *Node

	lcOnce sync.Once
	lcMap  *LineColumnMap
}

// NewTextStructure assembles a text structure and splits contents into lines.
func NewTextStructure(contents string, tokens []token.Token, tree *Node) *TextStructure {
	return &TextStructure{
		Contents: contents,
		Tokens:   tokens,
		Lines:    SplitLines(contents),
		Tree:     tree,
	}
}

// LineColumnMap returns the offset translation table, built on first use.
func (ts *TextStructure) LineColumnMap() *LineColumnMap {
	ts.lcOnce.Do(func() {
		ts.lcMap = NewLineColumnMap(ts.Contents)
	})
	return ts.lcMap
}

// EOF returns the end-of-input token.
func (ts *TextStructure) EOF() token.Token {
	if n := len(ts.Tokens); n > 0 && ts.Tokens[n-1].IsEOF() {
		return ts.Tokens[n-1]
	}
	return token.New(token.EOF, "", len(ts.Contents))
}

// SplitLines splits on '\n'. Lines keep no terminator; a final newline does
// not produce an extra empty line.
func SplitLines(contents string) []string {
	if contents == "" {
		return nil
	}
	lines := strings.Split(contents, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
