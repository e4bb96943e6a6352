package cst

import (
	"fmt"
	"sort"
)

// LineColumn is a 0-based position.
type LineColumn struct {
	Line   int
	Column int
}

// String renders the position 1-based, as editors expect.
func (lc LineColumn) String() string {
	return fmt.Sprintf("%d:%d", lc.Line+1, lc.Column+1)
}

// LineColumnMap translates byte offsets to line and column.
type LineColumnMap struct {
	starts []int
}

// NewLineColumnMap indexes the start offset of every line of contents.
func NewLineColumnMap(contents string) *LineColumnMap {
	starts := []int{0}
	for i := 0; i < len(contents); i++ {
		if contents[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineColumnMap{starts: starts}
}

// LineColumn converts a byte offset. Offsets past the end land on the last
// line.
func (m *LineColumnMap) LineColumn(offset int) LineColumn {
	line := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return LineColumn{Line: line, Column: offset - m.starts[line]}
}

// LineStart returns the byte offset of a 0-based line.
func (m *LineColumnMap) LineStart(line int) int {
	if line < 0 || line >= len(m.starts) {
		return -1
	}
	return m.starts[line]
}

// LineCount is the number of lines, counting a trailing partial line.
func (m *LineColumnMap) LineCount() int { return len(m.starts) }
