package linter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

const engineSample = "module m;\n// note\nendmodule\n"

func analyze(t *testing.T, contents string) *cst.TextStructure {
	t.Helper()
	ts, err := parser.Analyze(contents)
	require.NoError(t, err)
	return ts
}

func configFor(registry *Registry, names ...string) *Configuration {
	cfg := NewConfiguration(registry)
	for _, n := range names {
		cfg.TurnOn(n)
	}
	return cfg
}

func TestLinter_LintBeforeConfigurePanics(t *testing.T) {
	l := NewLinter(newTestRegistry(t))
	ts := analyze(t, engineSample)
	assert.PanicsWithValue(t, "linter: Lint called before Configure", func() {
		l.Lint(ts, "m.sv")
	})
}

func TestLinter_ConfigureUnknownRule(t *testing.T) {
	registry := newTestRegistry(t)
	l := NewLinter(registry)
	require.NoError(t, l.Configure(configFor(registry, "test-rule-1")))

	err := l.Configure(configFor(registry, "test-rule-3", "no-such-rule"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.True(t, IsConfigError(err))

	// The previous configuration survives a failed Configure.
	assert.Equal(t, 1, l.RuleCount())
	statuses := l.ReportStatus()
	require.Len(t, statuses, 1)
	assert.Equal(t, "test-rule-1", statuses[0].RuleName)
}

func TestLinter_ConfigureParams(t *testing.T) {
	registry := newTestRegistry(t)

	testCases := []struct {
		name    string
		rule    string
		params  string
		wantErr bool
	}{
		{"configurable accepts", "test-rule-5", "max:3", false},
		{"configurable rejects", "test-rule-5", "bad", true},
		{"not configurable", "test-rule-4", "length:3", true},
		{"no params", "test-rule-4", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(registry)
			cfg.UseRuleBundle(RuleBundle{
				Rules: map[string]RuleSetting{tc.rule: {Enabled: true, Params: tc.params}},
				Order: []string{tc.rule},
			})

			err := NewLinter(registry).Configure(cfg)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRuleParams)
				assert.Contains(t, err.Error(), tc.rule)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLinter_ConfigureKindMismatch(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("liar", KindTokenStream, func() Rule { return &mockLineRule{name: "liar"} })

	err := NewLinter(registry).Configure(configFor(registry, "liar"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token-stream")
}

func TestLinter_Dispatch(t *testing.T) {
	registry := NewRegistry()
	tree := &mockTreeRule{name: "tree"}
	tok := &mockTokenRule{name: "tok"}
	line := &mockLineRule{name: "line"}
	text := &mockTextRule{name: "text"}
	registry.MustRegister("tree", KindSyntaxTree, func() Rule { return tree })
	registry.MustRegister("tok", KindTokenStream, func() Rule { return tok })
	registry.MustRegister("line", KindLine, func() Rule { return line })
	registry.MustRegister("text", KindTextStructure, func() Rule { return text })

	l := NewLinter(registry)
	require.NoError(t, l.Configure(configFor(registry, "tree", "tok", "line", "text")))
	assert.Equal(t, 4, l.RuleCount())

	ts := analyze(t, engineSample)
	l.Lint(ts, "m.sv")

	assert.Positive(t, tree.nodes)
	assert.Equal(t, []string{"module", "m", ";", "endmodule"}, tree.leaves)

	// Comments are part of the token stream, EOF is not.
	require.Len(t, tok.tokens, 5)
	assert.Equal(t, "// note", tok.tokens[3].Text)
	for _, tk := range tok.tokens {
		assert.False(t, tk.IsEOF())
	}

	assert.Equal(t, []string{"module m;", "// note", "endmodule"}, line.lines)
	assert.Equal(t, []int{0, 10, 18}, line.offsets)
	assert.Equal(t, 1, line.finalized)

	assert.Equal(t, "m.sv", text.filename)

	statuses := l.ReportStatus()
	require.Len(t, statuses, 4)
	assert.Equal(t, []string{"tree", "tok", "line", "text"}, []string{
		statuses[0].RuleName, statuses[1].RuleName, statuses[2].RuleName, statuses[3].RuleName,
	})
}

func TestLinter_TreeViolations(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister("flagger", KindSyntaxTree, func() Rule { return &mockTreeRule{name: "flagger", flag: true} })

	l := NewLinter(registry)
	require.NoError(t, l.Configure(configFor(registry, "flagger")))
	l.Lint(analyze(t, engineSample), "m.sv")

	statuses := l.ReportStatus()
	require.Len(t, statuses, 1)
	require.Len(t, statuses[0].Violations, 4)
	assert.Equal(t, "leaf module", statuses[0].Violations[0].Message)
	assert.Equal(t, "[Style: mock]", statuses[0].Citation)
}

func TestLinter_LintContextSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	registry := newTestRegistry(t)
	l := NewLinter(registry, WithTracer(provider.Tracer("test")))
	require.NoError(t, l.Configure(configFor(registry, "test-rule-1", "test-rule-3")))

	l.LintContext(context.Background(), analyze(t, engineSample), "m.sv")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "linter.Lint", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("file", "m.sv"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("rules", 2))
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(ErrInvalidFlag))
	assert.True(t, IsConfigError(ErrInvalidConfig))
	assert.False(t, IsConfigError(parser.ErrUnexpectedEOF))
	assert.False(t, IsConfigError(nil))
}
