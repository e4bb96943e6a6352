package linter

import (
	"strings"

	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// Waiver comment directives. A waive comment alone on its line applies to
// the next line; after code it applies to its own line.
//
//	// vlint_waive no-tabs
//	// vlint_waive_start line-length
//	...
//	// vlint_waive_stop line-length
const (
	WaiveDirective      = "vlint_waive"
	WaiveStartDirective = "vlint_waive_start"
	WaiveStopDirective  = "vlint_waive_stop"
)

type lineRange struct {
	first, last int
}

// Waivers records which rules are waived on which 0-based lines.
type Waivers struct {
	lines  map[string]map[int]bool
	ranges map[string][]lineRange
}

// ParseWaivers scans the comments of ts for waiver directives.
func ParseWaivers(ts *cst.TextStructure) *Waivers {
	w := &Waivers{
		lines:  make(map[string]map[int]bool),
		ranges: make(map[string][]lineRange),
	}
	lc := ts.LineColumnMap()
	open := make(map[string]int)

	for _, tok := range ts.Tokens {
		if !tok.Kind.IsComment() {
			continue
		}
		directive, rules := parseWaiverComment(tok)
		if directive == "" {
			continue
		}
		pos := lc.LineColumn(tok.Offset)
		switch directive {
		case WaiveDirective:
			line := pos.Line
			if startsLine(ts.Contents, lc.LineStart(pos.Line), tok.Offset) {
				line++
			}
			for _, rule := range rules {
				if w.lines[rule] == nil {
					w.lines[rule] = make(map[int]bool)
				}
				w.lines[rule][line] = true
			}
		case WaiveStartDirective:
			for _, rule := range rules {
				if _, ok := open[rule]; !ok {
					open[rule] = pos.Line
				}
			}
		case WaiveStopDirective:
			for _, rule := range rules {
				if first, ok := open[rule]; ok {
					w.ranges[rule] = append(w.ranges[rule], lineRange{first: first, last: pos.Line})
					delete(open, rule)
				}
			}
		}
	}
	last := lc.LineCount()
	for rule, first := range open {
		w.ranges[rule] = append(w.ranges[rule], lineRange{first: first, last: last})
	}
	return w
}

func parseWaiverComment(tok token.Token) (string, []string) {
	text := tok.Text
	switch tok.Kind {
	case token.EOLComment:
		text = strings.TrimPrefix(text, "//")
	case token.BlockComment:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	}
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", nil
	}
	switch fields[0] {
	case WaiveDirective, WaiveStartDirective, WaiveStopDirective:
		return fields[0], fields[1:]
	}
	return "", nil
}

func startsLine(contents string, lineStart, offset int) bool {
	if lineStart < 0 || lineStart > offset {
		return false
	}
	return strings.TrimSpace(contents[lineStart:offset]) == ""
}

// IsWaived reports whether rule is waived on the 0-based line.
func (w *Waivers) IsWaived(rule string, line int) bool {
	if w == nil {
		return false
	}
	if w.lines[rule][line] {
		return true
	}
	for _, r := range w.ranges[rule] {
		if line >= r.first && line <= r.last {
			return true
		}
	}
	return false
}

// Empty reports whether no waivers were found.
func (w *Waivers) Empty() bool {
	return w == nil || (len(w.lines) == 0 && len(w.ranges) == 0)
}

// Filter drops waived violations from statuses.
func (w *Waivers) Filter(statuses []RuleStatus, lc *cst.LineColumnMap) []RuleStatus {
	if w.Empty() {
		return statuses
	}
	out := make([]RuleStatus, len(statuses))
	for i, s := range statuses {
		kept := make([]Violation, 0, len(s.Violations))
		for _, v := range s.Violations {
			if !w.IsWaived(s.RuleName, lc.LineColumn(v.Token.Offset).Line) {
				kept = append(kept, v)
			}
		}
		s.Violations = kept
		out[i] = s
	}
	return out
}
