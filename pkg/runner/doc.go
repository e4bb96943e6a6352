// Package runner lints many files concurrently.
//
// A Runner resolves the rule configuration of each file from the project
// configuration (rule set, path policies and rule bundles), lints the file
// with its own linter.Linter and records metrics, spans and cache entries
// along the way:
//
//	files, err := runner.FindFiles(cfg, "rtl/")
//	r := runner.New(rules.Default(), cfg,
//		runner.WithWorkers(8),
//		runner.WithLogger(logger),
//	)
//	reports, err := r.LintFiles(ctx, files)
//
// Watch relints files as they change until its context is cancelled.
package runner
