package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, operands left to right.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Definition:
		Walk(n.Proto, v)
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *BinaryOp:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Call:
		for _, a := range n.Args {
			Walk(a, v)
		}

	// Leaf nodes: Prototype, NumberLit, VariableRef
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// CountNodes returns the number of nodes in the tree rooted at node.
func CountNodes(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
