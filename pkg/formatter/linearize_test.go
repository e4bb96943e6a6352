package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

const commentedModule = "module m;\n  // c\n  wire w;\nendmodule // tail\n"

func TestLinearize(t *testing.T) {
	ts, err := parser.Analyze(commentedModule)
	require.NoError(t, err)

	tokens, contexts := Linearize(ts)
	require.Len(t, tokens, 9)
	require.Len(t, contexts, 9)

	var texts []string
	for _, pft := range tokens {
		texts = append(texts, pft.Text())
	}
	assert.Equal(t, []string{"module", "m", ";", "// c", "wire", "w", ";", "endmodule", "// tail"}, texts)

	assert.True(t, contexts[0].IsInside(cst.ModuleDeclaration))
	assert.Equal(t, contexts[4], contexts[3], "comment takes the context of the next leaf")
	assert.True(t, contexts[8].Empty(), "trailing comment has no context")

	assert.True(t, tokens[0].HasOriginalSpacing)
	assert.Equal(t, "", tokens[0].OriginalSpacing)
	assert.Equal(t, "\n  ", tokens[3].OriginalSpacing)
	assert.True(t, tokens[3].OriginalHasNewline())
	assert.Equal(t, " ", tokens[8].OriginalSpacing)
	assert.Equal(t, EOLComment, tokens[8].FormatType)
}

func TestLinearize_NoTree(t *testing.T) {
	ts := cst.NewTextStructure("", nil, nil)
	tokens, contexts := Linearize(ts)
	assert.Empty(t, tokens)
	assert.Empty(t, contexts)
}

func TestAnnotateText(t *testing.T) {
	ts, err := parser.Analyze(commentedModule)
	require.NoError(t, err)

	tokens, stats, err := NewAnnotator(DefaultStyle()).AnnotateText(ts)
	require.NoError(t, err)
	assert.Equal(t, Stats{Pairs: 8}, stats)

	assert.Equal(t, InterTokenInfo{}, tokens[0].Before)
	assert.Equal(t, InterTokenInfo{SpacesRequired: 2, BreakDecision: Undecided, BreakPenalty: 1}, tokens[3].Before)
	assert.Equal(t, InterTokenInfo{SpacesRequired: 1, BreakDecision: MustWrap, BreakPenalty: 1}, tokens[4].Before)
	assert.Equal(t, InterTokenInfo{SpacesRequired: 1, BreakDecision: MustWrap, BreakPenalty: 1}, tokens[7].Before)
	assert.Equal(t, InterTokenInfo{SpacesRequired: 2, BreakDecision: MustAppend, BreakPenalty: 1}, tokens[8].Before)
}

func TestDump(t *testing.T) {
	ts, err := parser.Analyze("module m;\nendmodule\n")
	require.NoError(t, err)
	tokens, _, err := NewAnnotator(DefaultStyle()).AnnotateText(ts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tokens))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"TOKEN", "KIND", "TYPE", "SPACES", "DECISION", "PENALTY"}, strings.Fields(lines[0]))
	assert.Equal(t, `"module"`, strings.Fields(lines[1])[0])
	assert.Contains(t, lines[4], "must-wrap")
}
