// Package linter runs configurable style rules over Verilog source.
//
// # Overview
//
// Rules are registered by name in a Registry together with a factory. A
// Configuration selects which rules are active, starting from a RuleSet
// (none, default or all) and adjusted by ProjectPolicy entries and a
// RuleBundle. A Linter instantiates the active rules and feeds them one
// analyzed file.
//
// # Rule Kinds
//
// SyntaxTree: sees every node and leaf of one tree walk, with ancestor context
// TokenStream: sees every token, comments included
// Line: sees every raw line, then Finalize
// TextStructure: sees the whole file at once
//
// # Usage Example
//
//	registry := rules.Default()
//	cfg := linter.NewConfiguration(registry)
//	cfg.UseRuleSet(linter.RuleSetDefault)
//
//	bundle, err := linter.ParseRuleBundle("-no-tabs,line-length=length:120", registry)
//	if err != nil {
//		return err
//	}
//	cfg.UseRuleBundle(bundle)
//
//	report, err := linter.LintText(registry, cfg, "top.sv", contents)
//	for _, f := range report.Findings {
//		fmt.Printf("%s:%s\n", report.FilePath, f)
//	}
//
// # Waivers
//
// A "// vlint_waive <rule>" comment waives a rule on the next line, or on
// its own line when it follows code. "// vlint_waive_start <rule>" and
// "// vlint_waive_stop <rule>" waive a range.
//
// # Related Packages
//
//   - pkg/linter/rules: Built-in lint rules
//   - pkg/verilog/parser: Builds the syntax tree rules inspect
//   - pkg/runner: Lints many files in parallel
package linter
