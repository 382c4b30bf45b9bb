package autodiff

// The arena doubles as a tape: nodes are appended in construction order and
// an operand is always appended before any of its consumers. Walking the tape
// backwards therefore visits every consumer before its operands. Restricting
// the walk to the nodes reachable from a root gives the reverse topological
// order the gradient engine needs, with ties broken by construction order.

// reachable marks every node reachable from root through operand links.
// The returned slice is indexed by ID and has length root+1; no reachable
// node can have a larger ID than root.
func (g *Graph[V]) reachable(root ID) []bool {
	seen := make([]bool, root+1)
	seen[root] = true
	stack := make([]ID, 1, 16)
	stack[0] = root

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, o := range g.operandIDs(id) {
			if !seen[o] {
				seen[o] = true
				stack = append(stack, o)
			}
		}
	}
	return seen
}

// ReverseTopological returns the IDs of all nodes reachable from root, root
// first and leaves last. Every node appears before all of its operands, and
// each node appears exactly once.
func (g *Graph[V]) ReverseTopological(root Node[V]) []ID {
	g.mustOwn(root)

	seen := g.reachable(root.id)
	order := make([]ID, 0, len(seen))
	for id := root.id; id >= 0; id-- {
		if seen[id] {
			order = append(order, id)
		}
	}
	return order
}
