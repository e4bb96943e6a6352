package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
)

func lintOutput(w io.Writer, format string, reports []*linter.FileReport, summary linter.Summary) error {
	switch format {
	case "json":
		return lintOutputJSON(w, reports, summary)
	case "github":
		return lintOutputGitHub(w, reports)
	default:
		return lintOutputText(w, reports, summary)
	}
}

func lintOutputText(w io.Writer, reports []*linter.FileReport, summary linter.Summary) error {
	for _, report := range reports {
		if report.SyntaxError != "" {
			fmt.Fprintf(w, "%s: syntax error: %s\n", report.FilePath, report.SyntaxError)
		}
		for _, f := range report.Findings {
			fmt.Fprintf(w, "%s:%s\n", report.FilePath, strings.TrimRight(f.String(), " "))
		}
	}

	if summary.TotalViolations == 0 && summary.SyntaxErrors == 0 {
		fmt.Fprintf(w, "✓ %d files passed linting\n", summary.TotalFiles)
		return nil
	}

	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "  Files:         %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "  With findings: %d\n", summary.FilesWithViolations)
	fmt.Fprintf(w, "  Violations:    %d\n", summary.TotalViolations)
	fmt.Fprintf(w, "  Syntax errors: %d\n", summary.SyntaxErrors)

	names := make([]string, 0, len(summary.ByRule))
	for name := range summary.ByRule {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "    %-32s %d\n", name, summary.ByRule[name])
	}
	return nil
}

func lintOutputJSON(w io.Writer, reports []*linter.FileReport, summary linter.Summary) error {
	if reports == nil {
		reports = []*linter.FileReport{}
	}
	output := struct {
		Results []*linter.FileReport `json:"results"`
		Summary linter.Summary       `json:"summary"`
	}{
		Results: reports,
		Summary: summary,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func lintOutputGitHub(w io.Writer, reports []*linter.FileReport) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line},col={col}::{message}
	for _, report := range reports {
		if report.SyntaxError != "" {
			fmt.Fprintf(w, "::error file=%s::syntax error: %s\n", report.FilePath, report.SyntaxError)
		}
		for _, f := range report.Findings {
			level := "error"
			if f.Severity == linter.SeverityWarning {
				level = "warning"
			} else if f.Severity == linter.SeverityInfo {
				level = "notice"
			}

			fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d::[%s] %s\n",
				level,
				report.FilePath,
				f.Line,
				f.Column,
				f.Rule,
				f.Message,
			)
		}
	}

	return nil
}
