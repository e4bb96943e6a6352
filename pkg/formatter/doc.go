// Package formatter annotates Verilog tokens with the spacing and line-break
// decisions a formatter needs before line wrapping.
//
// # Overview
//
// Each adjacent token pair is classified into coarse format categories and
// run through an ordered cascade of spacing rules, then an ordered cascade
// of break rules. The first applicable rule wins. Pairs no rule covers keep
// their original spacing and are counted as unhandled.
//
// # Usage
//
//	ts, _ := parser.Analyze(src)
//	a := formatter.NewAnnotator(formatter.DefaultStyle())
//	tokens, stats, err := a.AnnotateText(ts)
//	if err != nil {
//		return err
//	}
//	formatter.Dump(os.Stdout, tokens)
//
// # Style
//
// Style settings come from DefaultStyle or a YAML file read by LoadStyle:
//
//	comment_min_spaces: 2
//	column_limit: 100
package formatter
