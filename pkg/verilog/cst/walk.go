package cst

// Visitor receives every symbol of a pre-order depth-first traversal along
// with the ancestor context of the visited symbol. The visited node's own tag
// is not part of its context.
type Visitor interface {
	VisitNode(node *Node, ctx Context)
	VisitLeaf(leaf *Leaf, ctx Context)
}

// Walk traverses root in pre-order. Nil children are skipped.
func Walk(root Symbol, v Visitor) {
	walk(root, Context{}, v)
}

func walk(s Symbol, ctx Context, v Visitor) {
	if IsNil(s) {
		return
	}
	switch sym := s.(type) {
	case *Leaf:
		v.VisitLeaf(sym, ctx)
	case *Node:
		v.VisitNode(sym, ctx)
		inner := ctx.Push(sym.Tag)
		for _, c := range sym.Children {
			walk(c, inner, v)
		}
	}
}

// VisitorFuncs adapts plain functions to a Visitor. Either function may be
// nil.
type VisitorFuncs struct {
	Node func(*Node, Context)
	Leaf func(*Leaf, Context)
}

func (f VisitorFuncs) VisitNode(n *Node, ctx Context) {
	if f.Node != nil {
		f.Node(n, ctx)
	}
}

func (f VisitorFuncs) VisitLeaf(l *Leaf, ctx Context) {
	if f.Leaf != nil {
		f.Leaf(l, ctx)
	}
}

// SearchNodes returns every node under root, root included, for which pred
// returns true, in pre-order.
func SearchNodes(root Symbol, pred func(*Node) bool) []*Node {
	var found []*Node
	Walk(root, VisitorFuncs{Node: func(n *Node, _ Context) {
		if pred(n) {
			found = append(found, n)
		}
	}})
	return found
}

// NodesWithTag returns every node under root tagged tag.
func NodesWithTag(root Symbol, tag NodeKind) []*Node {
	return SearchNodes(root, func(n *Node) bool { return n.Tag == tag })
}
