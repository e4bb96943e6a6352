package cst

import (
	"slices"
	"strings"
)

// Context is the stack of ancestor node tags at a position in the tree,
// ordered from the root to the innermost enclosing node. Contexts are
// values: Push never modifies the receiver, so a context handed to a visitor
// can be kept after the traversal moves on.
type Context struct {
	tags []NodeKind
}

// NewContext builds a context from tags ordered root first.
func NewContext(tags ...NodeKind) Context {
	return Context{tags: append([]NodeKind(nil), tags...)}
}

// Push returns a new context with tag as the innermost ancestor.
func (c Context) Push(tag NodeKind) Context {
	tags := make([]NodeKind, len(c.tags)+1)
	copy(tags, c.tags)
	tags[len(c.tags)] = tag
	return Context{tags: tags}
}

// Len is the number of ancestors.
func (c Context) Len() int { return len(c.tags) }

// Empty reports whether there are no ancestors.
func (c Context) Empty() bool { return len(c.tags) == 0 }

// Top returns the innermost ancestor tag.
func (c Context) Top() (NodeKind, bool) {
	if len(c.tags) == 0 {
		return Unknown, false
	}
	return c.tags[len(c.tags)-1], true
}

// Tags returns a copy of the ancestor tags, root first.
func (c Context) Tags() []NodeKind {
	return append([]NodeKind(nil), c.tags...)
}

// IsInside reports whether any ancestor has the tag.
func (c Context) IsInside(tag NodeKind) bool {
	return slices.Contains(c.tags, tag)
}

// IsInsideFirst searches from the innermost ancestor outward and reports
// whether one of includes is found before any of excludes.
func (c Context) IsInsideFirst(includes, excludes []NodeKind) bool {
	for i := len(c.tags) - 1; i >= 0; i-- {
		if slices.Contains(includes, c.tags[i]) {
			return true
		}
		if slices.Contains(excludes, c.tags[i]) {
			return false
		}
	}
	return false
}

// DirectParentIs reports whether the innermost ancestor has the tag.
func (c Context) DirectParentIs(tag NodeKind) bool {
	top, ok := c.Top()
	return ok && top == tag
}

// DirectParentIsOneOf reports whether the innermost ancestor has one of tags.
func (c Context) DirectParentIsOneOf(tags ...NodeKind) bool {
	top, ok := c.Top()
	return ok && slices.Contains(tags, top)
}

// DirectParentsAre reports whether the innermost ancestors match tags,
// with tags[0] being the innermost.
func (c Context) DirectParentsAre(tags ...NodeKind) bool {
	if len(tags) > len(c.tags) {
		return false
	}
	for i, tag := range tags {
		if c.tags[len(c.tags)-1-i] != tag {
			return false
		}
	}
	return true
}

func (c Context) String() string {
	names := make([]string, len(c.tags))
	for i, t := range c.tags {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}
