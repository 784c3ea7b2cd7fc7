package ast

// Order selects when a Walker calls back for a node relative to its
// children.
type Order int

const (
	PreOrder Order = iota
	PostOrder
)

// Walker traverses a tree, calling back once per statement-level node.
// Only containers have children: Program (Body), ElementNode (Children),
// BlockStatement (Program then Inverse) and ComponentNode (Program).
// Every other node is a leaf.
type Walker struct {
	Order Order
	stack []Node
}

// NewWalker returns a walker using the given traversal order.
func NewWalker(order Order) *Walker {
	return &Walker{Order: order}
}

// Visit walks node and its descendants.
func (w *Walker) Visit(node Node, callback func(node Node, w *Walker)) {
	if isNil(node) {
		return
	}

	w.stack = append(w.stack, node)
	if w.Order == PostOrder {
		w.children(node, callback)
		callback(node, w)
	} else {
		callback(node, w)
		w.children(node, callback)
	}
	w.stack = w.stack[:len(w.stack)-1]
}

// Stack returns the nodes currently being visited, outermost first. The
// last element is the node passed to the running callback.
func (w *Walker) Stack() []Node {
	return w.stack
}

// Parent returns the nearest ancestor of the node being visited, or nil
// at the root.
func (w *Walker) Parent() Node {
	if len(w.stack) < 2 {
		return nil
	}
	return w.stack[len(w.stack)-2]
}

func (w *Walker) children(node Node, callback func(node Node, w *Walker)) {
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			w.Visit(s, callback)
		}
	case *ElementNode:
		for _, c := range n.Children {
			w.Visit(c, callback)
		}
	case *BlockStatement:
		if n.Program != nil {
			w.Visit(n.Program, callback)
		}
		if n.Inverse != nil {
			w.Visit(n.Inverse, callback)
		}
	case *ComponentNode:
		if n.Program != nil {
			w.Visit(n.Program, callback)
		}
	}
}

// isNil catches typed nil pointers stored in a Node.
func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *Program:
		return n == nil
	case *ElementNode:
		return n == nil
	case *BlockStatement:
		return n == nil
	case *ComponentNode:
		return n == nil
	}
	return false
}
