// Package matcher provides composable predicates over syntax tree symbols.
//
// Matchers are built once and evaluated against many symbols. A successful
// match may capture sub-symbols by name through Bind; captured symbols are
// collected in a BoundSymbols passed by the caller.
//
//	m := matcher.NodeMatcher(cst.ParamDeclaration,
//		matcher.HasChild(cst.ParamType, matcher.Bind("type", matcher.Any())),
//	)
//	var bound matcher.BoundSymbols
//	if m.Matches(node, &bound) {
//		paramType := bound.Get("type")
//	}
package matcher

import (
	"github.com/platinummonkey/vlint/pkg/verilog/cst"
	"github.com/platinummonkey/vlint/pkg/verilog/token"
)

// BoundSymbols holds symbols captured by Bind during a match. An id bound
// more than once keeps every symbol in match order.
type BoundSymbols struct {
	symbols map[string][]cst.Symbol
}

// Get returns the first symbol bound to id, or nil.
func (b *BoundSymbols) Get(id string) cst.Symbol {
	if b == nil || len(b.symbols[id]) == 0 {
		return nil
	}
	return b.symbols[id][0]
}

// All returns every symbol bound to id.
func (b *BoundSymbols) All(id string) []cst.Symbol {
	if b == nil {
		return nil
	}
	return b.symbols[id]
}

// Len returns the number of bound ids.
func (b *BoundSymbols) Len() int {
	if b == nil {
		return 0
	}
	return len(b.symbols)
}

func (b *BoundSymbols) set(id string, s cst.Symbol) {
	if b == nil {
		return
	}
	if b.symbols == nil {
		b.symbols = make(map[string][]cst.Symbol)
	}
	b.symbols[id] = append(b.symbols[id], s)
}

// Matcher is a predicate over a symbol.
type Matcher interface {
	Matches(s cst.Symbol, bound *BoundSymbols) bool
}

// Func adapts a function to a Matcher.
type Func func(s cst.Symbol, bound *BoundSymbols) bool

func (f Func) Matches(s cst.Symbol, bound *BoundSymbols) bool { return f(s, bound) }

// Any matches every non-nil symbol.
func Any() Matcher {
	return Func(func(s cst.Symbol, _ *BoundSymbols) bool { return !cst.IsNil(s) })
}

// NodeMatcher matches a node with the tag for which every inner matcher
// also matches.
func NodeMatcher(tag cst.NodeKind, inner ...Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		n := cst.AsNode(s)
		if n == nil || n.Tag != tag {
			return false
		}
		return allMatch(n, inner, bound)
	})
}

// LeafMatcher matches a leaf whose token has one of the kinds.
func LeafMatcher(kinds ...token.Kind) Matcher {
	return Func(func(s cst.Symbol, _ *BoundSymbols) bool {
		l := cst.AsLeaf(s)
		if l == nil {
			return false
		}
		for _, k := range kinds {
			if l.Token.Kind == k {
				return true
			}
		}
		return false
	})
}

// HasChild matches a node with a direct child node tagged tag that
// satisfies every inner matcher. The first such child wins.
func HasChild(tag cst.NodeKind, inner ...Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		n := cst.AsNode(s)
		if n == nil {
			return false
		}
		for _, c := range n.Children {
			child := cst.AsNode(c)
			if child == nil || child.Tag != tag {
				continue
			}
			if allMatch(child, inner, bound) {
				return true
			}
		}
		return false
	})
}

// EachChild matches a node with at least one direct child node tagged tag
// that satisfies every inner matcher. Unlike HasChild every such child is
// tried, so bindings accumulate across children.
func EachChild(tag cst.NodeKind, inner ...Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		n := cst.AsNode(s)
		if n == nil {
			return false
		}
		matched := false
		for _, c := range n.Children {
			child := cst.AsNode(c)
			if child == nil || child.Tag != tag {
				continue
			}
			if allMatch(child, inner, bound) {
				matched = true
			}
		}
		return matched
	})
}

// HasLeafChild matches a node with a direct child leaf satisfying m. The
// first such leaf wins.
func HasLeafChild(m Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		n := cst.AsNode(s)
		if n == nil {
			return false
		}
		for _, c := range n.Children {
			if l := cst.AsLeaf(c); l != nil && m.Matches(l, bound) {
				return true
			}
		}
		return false
	})
}

// HasLeaf matches a node with a direct child leaf of the kind.
func HasLeaf(kind token.Kind) Matcher {
	return Func(func(s cst.Symbol, _ *BoundSymbols) bool {
		return cst.AsNode(s).FirstChildLeaf(kind) != nil
	})
}

// HasDescendant matches a node with any descendant node tagged tag.
func HasDescendant(tag cst.NodeKind) Matcher {
	return Func(func(s cst.Symbol, _ *BoundSymbols) bool {
		n := cst.AsNode(s)
		if n == nil {
			return false
		}
		for _, c := range n.Children {
			if !cst.IsNil(c) && len(cst.NodesWithTag(c, tag)) > 0 {
				return true
			}
		}
		return false
	})
}

// AnyOf matches when at least one matcher matches; evaluation stops at the
// first success so only its bindings are recorded.
func AnyOf(ms ...Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		for _, m := range ms {
			if m.Matches(s, bound) {
				return true
			}
		}
		return false
	})
}

// AllOf matches when every matcher matches.
func AllOf(ms ...Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		return allMatch(s, ms, bound)
	})
}

// Optional runs m for its bindings and always matches.
func Optional(m Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		m.Matches(s, bound)
		return true
	})
}

// Not inverts m. Bindings made by m are discarded.
func Not(m Matcher) Matcher {
	return Func(func(s cst.Symbol, _ *BoundSymbols) bool {
		return !m.Matches(s, &BoundSymbols{})
	})
}

// Bind records the symbol under id when m matches it.
func Bind(id string, m Matcher) Matcher {
	return Func(func(s cst.Symbol, bound *BoundSymbols) bool {
		if !m.Matches(s, bound) {
			return false
		}
		bound.set(id, s)
		return true
	})
}

func allMatch(s cst.Symbol, ms []Matcher, bound *BoundSymbols) bool {
	for _, m := range ms {
		if !m.Matches(s, bound) {
			return false
		}
	}
	return true
}
