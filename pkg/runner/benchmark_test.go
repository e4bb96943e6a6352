package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/platinummonkey/vlint/pkg/cache"
	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/linter/rules"
)

// benchmarkSource builds a module with n always blocks
func benchmarkSource(n int) string {
	var b strings.Builder
	b.WriteString("module bench #(\n  parameter int Width = 8\n) (\n  input logic clk_i,\n  output logic [Width-1:0] q_o\n);\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  logic [Width-1:0] r%d_q;\n", i)
		fmt.Fprintf(&b, "  always_ff @(posedge clk_i) begin\n    r%d_q <= r%d_q + 1'b1;\n  end\n", i, i)
	}
	b.WriteString("  assign q_o = r0_q;\nendmodule\n")
	return b.String()
}

// BenchmarkLintSource benchmarks linting one file with every rule enabled
func BenchmarkLintSource(b *testing.B) {
	src := benchmarkSource(200)
	r := New(rules.Default(), nil, WithRuleSet(linter.RuleSetAll))
	ctx := context.Background()

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.LintSource(ctx, "bench.sv", src); err != nil {
			b.Fatalf("lint failed: %v", err)
		}
	}
}

// BenchmarkLintSourceWithCache benchmarks repeated lints served from the cache
func BenchmarkLintSourceWithCache(b *testing.B) {
	src := benchmarkSource(200)
	c, err := cache.New(16, time.Minute)
	if err != nil {
		b.Fatal(err)
	}
	r := New(rules.Default(), nil, WithCache(c))
	ctx := context.Background()

	if _, err := r.LintSource(ctx, "bench.sv", src); err != nil {
		b.Fatalf("lint failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.LintSource(ctx, "bench.sv", src); err != nil {
			b.Fatalf("lint failed: %v", err)
		}
	}
}
