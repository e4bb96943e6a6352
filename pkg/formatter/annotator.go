package formatter

import (
	"fmt"

	"github.com/platinummonkey/vlint/pkg/observability"
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
)

// Outcome tells whether a rule decided the spacing of a pair.
type Outcome int

const (
	Handled Outcome = iota
	// Unhandled pairs keep their original spacing.
	Unhandled
)

func (o Outcome) String() string {
	if o == Unhandled {
		return "unhandled"
	}
	return "handled"
}

// Stats counts annotated pairs.
type Stats struct {
	Pairs     int `json:"pairs"`
	Unhandled int `json:"unhandled"`
}

// Annotator computes the spacing and break decision before each token. It
// keeps no state between pairs and may be shared across goroutines.
type Annotator struct {
	Style  Style
	Logger *observability.Logger
}

// NewAnnotator creates an annotator for style.
func NewAnnotator(style Style) *Annotator {
	return &Annotator{Style: style, Logger: observability.NopLogger()}
}

// AnnotateToken sets curr.Before from the pair (prev, curr) and the context
// of curr.
func (a *Annotator) AnnotateToken(prev, curr *PreFormatToken, ctx cst.Context) Outcome {
	p := pair{style: a.Style, left: prev, right: curr, ctx: ctx}

	spaces, rule, ok := spacesBetween(p)
	if !ok {
		curr.Before = InterTokenInfo{
			SpacesRequired: curr.originalSpaces(),
			BreakDecision:  Preserve,
		}
		a.logger().WithFields(map[string]interface{}{
			"left":    prev.Text(),
			"right":   curr.Text(),
			"context": ctx.String(),
			"rule":    rule,
		}).Debug("Unhandled token pair, preserving spacing")
		return Unhandled
	}

	decision, _ := breakDecision(p)
	curr.Before = InterTokenInfo{
		SpacesRequired: spaces,
		BreakDecision:  decision,
		BreakPenalty:   breakPenalty(p),
	}
	return Handled
}

// Annotate annotates every token after the first. contexts[i] is the
// context of tokens[i].
func (a *Annotator) Annotate(tokens []PreFormatToken, contexts []cst.Context) (Stats, error) {
	if len(tokens) != len(contexts) {
		return Stats{}, fmt.Errorf("annotate: %d tokens but %d contexts", len(tokens), len(contexts))
	}
	var stats Stats
	if len(tokens) == 0 {
		return stats, nil
	}
	tokens[0].Before = InterTokenInfo{}
	for i := 1; i < len(tokens); i++ {
		stats.Pairs++
		if a.AnnotateToken(&tokens[i-1], &tokens[i], contexts[i]) == Unhandled {
			stats.Unhandled++
		}
	}
	return stats, nil
}

func (a *Annotator) logger() *observability.Logger {
	if a.Logger == nil {
		return observability.NopLogger()
	}
	return a.Logger
}
