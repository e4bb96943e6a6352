// Package cli provides the vlint command-line interface.
//
// # Overview
//
// This package implements the `vlint` tool on cobra: linting Verilog and
// SystemVerilog sources, listing rules, dumping spacing annotations and
// running the HTTP service.
//
// # Commands
//
// lint: Lint files and directories
//
//	vlint lint rtl/ \
//		--ruleset all \
//		--rules=-no-tabs,line-length=length:120 \
//		--format github
//
// Relint on change:
//
//	vlint lint --watch rtl/
//
// rules: List rules grouped by kind
//
//	vlint rules --markdown > RULES.md
//
// annotate: Print inter-token spacing
//
//	vlint annotate rtl/top.sv --style .vlint-style.yaml
//
// serve: Run the HTTP lint service
//
//	vlint serve --addr :8080 --config .vlint.yaml
//
// # Configuration
//
// Project rule selection is read from .vlint.yaml in the first linted
// path, or from --config. Process settings come from VLINT_* variables
// (see pkg/config); --log-level and --log-format override them.
//
// # Exit Codes
//
// lint exits 1 when violations or syntax errors are found, unless
// --fail-on-violation=false. Every other failure also exits 1.
//
// # Related Packages
//
//   - pkg/runner: Parallel file linting and watch mode
//   - pkg/server: HTTP service behind `vlint serve`
package cli
