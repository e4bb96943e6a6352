package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/platinummonkey/vlint/pkg/linter"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// DefaultLineLength is the line-length limit when none is configured
const DefaultLineLength = 100

// lineToken anchors a line violation at a byte offset in the file.
func lineToken(text string, offset int) token.Token {
	return token.New(token.Unknown, text, offset)
}

// LineLengthRule flags lines longer than a configurable limit
type LineLengthRule struct {
	BaseRule
	length int
}

// NewLineLengthRule creates a new line-length rule
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: BaseRule{
			RuleName:  "line-length",
			RuleTopic: "line-length",
		},
		length: DefaultLineLength,
	}
}

func (r *LineLengthRule) GetDescription(mode linter.DescriptionType) string {
	return fmt.Sprintf("Checks that all lines do not exceed the maximum allowed length, %d characters by default. "+
		"See %s. Parameters: %s.", DefaultLineLength, r.cite(mode), linter.Codify("length:N", mode))
}

// Configure accepts "length:N"
func (r *LineLengthRule) Configure(params string) error {
	settings, err := parseParams(params, "length")
	if err != nil {
		return err
	}
	if v, ok := settings["length"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("length must be a positive integer, got %q", v)
		}
		r.length = n
	}
	return nil
}

func (r *LineLengthRule) HandleLine(line string, offset int) {
	line = strings.TrimSuffix(line, "\r")
	width := utf8.RuneCountInString(line)
	if width <= r.length || isURLComment(line) {
		return
	}
	r.addTokenViolation(lineToken(line, offset),
		fmt.Sprintf("Line length exceeds max: %d; is: %d", r.length, width))
}

func (r *LineLengthRule) Finalize() {}

// isURLComment reports a line holding nothing but a comment with a single
// URL, which cannot be wrapped.
func isURLComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	body := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	return strings.Contains(body, "://") && !strings.ContainsAny(body, " \t")
}

// NoTabsRule flags tab characters
type NoTabsRule struct {
	BaseRule
}

// NewNoTabsRule creates a new no-tabs rule
func NewNoTabsRule() *NoTabsRule {
	return &NoTabsRule{
		BaseRule: BaseRule{
			RuleName:  "no-tabs",
			RuleTopic: "tabs",
		},
	}
}

func (r *NoTabsRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that no tabs are used. Spaces should be used instead of tabs. See " + r.cite(mode) + "."
}

func (r *NoTabsRule) HandleLine(line string, offset int) {
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		r.addTokenViolation(lineToken("\t", offset+i), "Use spaces, not tabs.")
	}
}

func (r *NoTabsRule) Finalize() {}

// NoTrailingSpacesRule flags whitespace at the end of a line
type NoTrailingSpacesRule struct {
	BaseRule
}

// NewNoTrailingSpacesRule creates a new no-trailing-spaces rule
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: BaseRule{
			RuleName:  "no-trailing-spaces",
			RuleTopic: "trailing-spaces",
		},
	}
}

func (r *NoTrailingSpacesRule) GetDescription(mode linter.DescriptionType) string {
	return "Checks that there are no trailing spaces on any lines. See " + r.cite(mode) + "."
}

func (r *NoTrailingSpacesRule) HandleLine(line string, offset int) {
	line = strings.TrimSuffix(line, "\r")
	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) == len(line) {
		return
	}
	r.addTokenViolation(lineToken(line[len(trimmed):], offset+len(trimmed)), "Remove trailing spaces.")
}

func (r *NoTrailingSpacesRule) Finalize() {}
