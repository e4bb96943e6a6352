package formatter

import (
	"strings"
	"testing"

	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

// BenchmarkAnnotateText benchmarks annotating a parsed file
func BenchmarkAnnotateText(b *testing.B) {
	src := "module m (input logic a_i, output logic b_o);\n" +
		strings.Repeat("  assign b_o = a_i ? 1'b0 : {a_i, 2'b01};\n", 200) +
		"endmodule\n"
	ts, err := parser.Analyze(src)
	if ts == nil {
		b.Fatalf("analyze failed: %v", err)
	}
	annotator := NewAnnotator(DefaultStyle())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := annotator.AnnotateText(ts); err != nil {
			b.Fatal(err)
		}
	}
}
