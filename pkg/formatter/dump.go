package formatter

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Dump writes one row per token: text, lexical kind, format type, spaces,
// break decision and penalty.
func Dump(w io.Writer, tokens []PreFormatToken) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TOKEN\tKIND\tTYPE\tSPACES\tDECISION\tPENALTY"); err != nil {
		return err
	}
	for i := range tokens {
		t := &tokens[i]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%d\n",
			strconv.Quote(t.Text()), t.Kind(), t.FormatType,
			t.Before.SpacesRequired, t.Before.BreakDecision, t.Before.BreakPenalty); err != nil {
			return err
		}
	}
	return tw.Flush()
}
