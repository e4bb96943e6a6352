package linter

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/parser"
)

// Severity indicates how serious a finding is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is a violation resolved to a source position
type Finding struct {
	Rule     string   `json:"rule"`
	Citation string   `json:"citation,omitempty"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%d:%d: %s [%s] %s", f.Line, f.Column, f.Message, f.Rule, f.Citation)
}

// FileReport contains the result of linting a single file
type FileReport struct {
	FilePath string       `json:"file"`
	Statuses []RuleStatus `json:"-"`
	Findings []Finding    `json:"findings"`
	// SyntaxError is set when the file only parsed partially.
	SyntaxError string `json:"syntax_error,omitempty"`
}

// HasViolations reports whether any finding was produced
func (r *FileReport) HasViolations() bool {
	return len(r.Findings) > 0
}

// NewFileReport resolves statuses against ts. Findings are ordered by
// position, then rule.
func NewFileReport(filePath string, ts *cst.TextStructure, statuses []RuleStatus) *FileReport {
	lc := ts.LineColumnMap()
	report := &FileReport{
		FilePath: filePath,
		Statuses: statuses,
		Findings: make([]Finding, 0),
	}
	for _, s := range statuses {
		for _, v := range s.Violations {
			pos := lc.LineColumn(v.Token.Offset)
			report.Findings = append(report.Findings, Finding{
				Rule:     s.RuleName,
				Citation: s.Citation,
				Message:  v.Message,
				Line:     pos.Line + 1,
				Column:   pos.Column + 1,
				Severity: SeverityError,
			})
		}
	}
	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})
	return report
}

// LintText analyzes contents, lints it with cfg, applies waiver comments
// and returns the report. Files that fail to scan are an error; files that
// parse partially are linted and flagged with SyntaxError.
func LintText(registry *Registry, cfg *Configuration, filename, contents string, opts ...Option) (*FileReport, error) {
	return LintTextContext(context.Background(), registry, cfg, filename, contents, opts...)
}

// LintTextContext is LintText with tracing.
func LintTextContext(ctx context.Context, registry *Registry, cfg *Configuration, filename, contents string, opts ...Option) (*FileReport, error) {
	ts, err := parser.Analyze(contents)
	if ts == nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", filename, err)
	}

	l := NewLinter(registry, opts...)
	if cerr := l.Configure(cfg); cerr != nil {
		return nil, cerr
	}
	l.LintContext(ctx, ts, filename)

	statuses := ParseWaivers(ts).Filter(l.ReportStatus(), ts.LineColumnMap())
	report := NewFileReport(filename, ts, statuses)
	if err != nil {
		report.SyntaxError = errors.Unwrap(err).Error()
	}
	return report, nil
}

// Summary provides an overview of all lint results
type Summary struct {
	TotalFiles          int            `json:"total_files"`
	TotalViolations     int            `json:"total_violations"`
	FilesWithViolations int            `json:"files_with_violations"`
	SyntaxErrors        int            `json:"syntax_errors"`
	ByRule              map[string]int `json:"by_rule"`
}

// GenerateSummary creates a summary of lint results
func GenerateSummary(reports []*FileReport) Summary {
	summary := Summary{
		TotalFiles: len(reports),
		ByRule:     make(map[string]int),
	}

	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.HasViolations() {
			summary.FilesWithViolations++
		}
		if r.SyntaxError != "" {
			summary.SyntaxErrors++
		}
		summary.TotalViolations += len(r.Findings)
		for _, f := range r.Findings {
			summary.ByRule[f.Rule]++
		}
	}

	return summary
}
