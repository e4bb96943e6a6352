package rules

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/matcher"
)

// PosixEOFRule requires a file to end with a newline
type PosixEOFRule struct {
	BaseRule
}

// NewPosixEOFRule creates a new posix-eof rule
func NewPosixEOFRule() *PosixEOFRule {
	return &PosixEOFRule{
		BaseRule: BaseRule{
			RuleName:  "posix-eof",
			RuleTopic: "posix-file-endings",
		},
	}
}

func (r *PosixEOFRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that the file ends with a newline. See " + r.cite(mode) + "."
}

func (r *PosixEOFRule) Lint(ts *cst.TextStructure, filename string) {
	if ts.Contents == "" || strings.HasSuffix(ts.Contents, "\n") {
		return
	}
	r.addTokenViolation(ts.EOF(), "File must end with a newline.")
}

// ModuleFilenameRule requires a module named after the file
type ModuleFilenameRule struct {
	BaseRule
	allowDashForUnderscore bool
	modules                matcher.Matcher
}

// NewModuleFilenameRule creates a new module-filename rule
func NewModuleFilenameRule() *ModuleFilenameRule {
	return &ModuleFilenameRule{
		BaseRule: BaseRule{
			RuleName:  "module-filename",
			RuleTopic: "file-names",
		},
		modules: matcher.ModuleDeclaration(),
	}
}

func (r *ModuleFilenameRule) GetDescription(mode linter.DescriptionType) string {
	return "If a module is declared, checks that at least one module matches the first dot-delimited " +
		"component of the file name. Depending on configuration, it is also allowed to replace " +
		"underscore with dashes in filenames. See " + r.cite(mode) + ". Parameters: " +
		linter.Codify("allow-dash-for-underscore:false", mode) + "."
}

// Configure accepts "allow-dash-for-underscore:<bool>"
func (r *ModuleFilenameRule) Configure(params string) error {
	settings, err := parseParams(params, "allow-dash-for-underscore")
	if err != nil {
		return err
	}
	if v, ok := settings["allow-dash-for-underscore"]; ok {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("allow-dash-for-underscore: %w", err)
		}
		r.allowDashForUnderscore = allow
	}
	return nil
}

func (r *ModuleFilenameRule) Lint(ts *cst.TextStructure, filename string) {
	if ts.Tree == nil || filename == "" || filename == "-" {
		return
	}
	unitName, _, _ := strings.Cut(filepath.Base(filename), ".")
	if unitName == "" {
		return
	}
	if r.allowDashForUnderscore {
		unitName = strings.ReplaceAll(unitName, "-", "_")
	}

	var last *cst.Leaf
	for _, m := range matcher.Find(ts.Tree, r.modules) {
		name := cst.AsLeaf(m.Bound.Get("name"))
		if name == nil {
			continue
		}
		if name.Token.Text == unitName {
			return
		}
		last = name
	}
	if last == nil {
		return
	}
	r.addTokenViolation(last.Token,
		"Declared module does not match the first dot-delimited component of file name: \""+unitName+"\"")
}
