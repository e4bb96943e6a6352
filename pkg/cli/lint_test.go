package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cleanSource  = "module clean;\nendmodule\n"
	tabbedSource = "module tabbed;\n\tlogic x;\nendmodule\n"
)

func TestLintCommand_Text(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.sv", cleanSource)
	tabbed := writeFile(t, dir, "tabbed.sv", tabbedSource)

	stdout, _, err := execute(t, "lint", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrViolationsFound)

	assert.Contains(t, stdout, tabbed+":2:1: Use spaces, not tabs. [no-tabs] [Style: tabs]")
	assert.Contains(t, stdout, "Violations:    1")
	assert.NotContains(t, stdout, "clean.sv:")
}

func TestLintCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.sv", cleanSource)

	stdout, _, err := execute(t, "lint", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 files passed linting")
}

func TestLintCommand_Flags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "disable rule", args: []string{"--rules=-no-tabs"}},
		{name: "empty rule set", args: []string{"--ruleset", "none"}},
		{name: "no fail", args: []string{"--fail-on-violation=false"}},
		{name: "default rules", args: []string{"--ruleset", "default"}, wantErr: true},
		{name: "bad rule set", args: []string{"--ruleset", "some"}, wantErr: true},
		{name: "unknown rule", args: []string{"--rules", "no-such-rule"}, wantErr: true},
		{name: "bad format", args: []string{"--format", "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "tabbed.sv", tabbedSource)

			args := append([]string{"lint"}, tt.args...)
			_, _, err := execute(t, append(args, dir)...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLintCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tabbed.sv", tabbedSource)

	stdout, _, err := execute(t, "lint", "--format", "json", "--fail-on-violation=false", dir)
	require.NoError(t, err)

	var output struct {
		Results []struct {
			File     string `json:"file"`
			Findings []struct {
				Rule string `json:"rule"`
				Line int    `json:"line"`
			} `json:"findings"`
		} `json:"results"`
		Summary struct {
			TotalFiles      int            `json:"total_files"`
			TotalViolations int            `json:"total_violations"`
			ByRule          map[string]int `json:"by_rule"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))

	require.Len(t, output.Results, 1)
	require.Len(t, output.Results[0].Findings, 1)
	assert.Equal(t, "no-tabs", output.Results[0].Findings[0].Rule)
	assert.Equal(t, 2, output.Results[0].Findings[0].Line)
	assert.Equal(t, 1, output.Summary.TotalFiles)
	assert.Equal(t, 1, output.Summary.ByRule["no-tabs"])
}

func TestLintCommand_GitHub(t *testing.T) {
	dir := t.TempDir()
	tabbed := writeFile(t, dir, "tabbed.sv", tabbedSource)

	stdout, _, err := execute(t, "lint", "--format", "github", dir)
	assert.ErrorIs(t, err, ErrViolationsFound)
	assert.Equal(t, "::error file="+tabbed+",line=2,col=1::[no-tabs] Use spaces, not tabs.\n", stdout)
}

func TestLintCommand_ProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tabbed.sv", tabbedSource)
	writeFile(t, dir, "vendor/ip.sv", tabbedSource)

	t.Run("discovered in directory", func(t *testing.T) {
		writeFile(t, dir, ".vlint.yaml", "ruleset: default\nrules: -no-tabs\n")
		_, _, err := execute(t, "lint", dir)
		assert.NoError(t, err)
	})

	t.Run("explicit file", func(t *testing.T) {
		cfgPath := writeFile(t, t.TempDir(), "strict.yaml", "ruleset: all\n")
		_, _, err := execute(t, "lint", "--config", cfgPath, dir)
		assert.ErrorIs(t, err, ErrViolationsFound)
	})

	t.Run("invalid bundle", func(t *testing.T) {
		cfgPath := writeFile(t, t.TempDir(), "bad.yaml", "rules: not-a-rule\n")
		_, _, err := execute(t, "lint", "--config", cfgPath, dir)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrViolationsFound)
	})
}

func TestLintCommand_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.sv", cleanSource)
	metricsPath := filepath.Join(t.TempDir(), "vlint.prom")

	_, _, err := execute(t, "lint", "--metrics-file", metricsPath, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `vlint_files_linted_total{source="cli",status="clean"} 1`))
}

func TestLintCommand_NoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# docs\n")

	stdout, stderr, err := execute(t, "lint", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 files passed linting")
	assert.Contains(t, stderr, "No Verilog files found")
}
