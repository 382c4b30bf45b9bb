package autodiff

import (
	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// SeedRoot sets the gradient of root to 1, the derivative of the root with
// respect to itself. Backward does not seed on its own.
func (g *Graph[V]) SeedRoot(root Node[V]) {
	g.mustOwn(root)
	g.nodes[root.id].grad = 1
}

// Backward propagates the gradient stored on root to every node reachable
// from it.
//
// Algorithm:
//  1. Compute the reverse topological order of the reachable nodes
//  2. Visit each node once, in that order, so its gradient is complete
//     before it flows further
//  3. Apply the node's local-gradient rule and add (never assign) each
//     contribution to the operand's gradient
//
// Backward does not reset gradients. Calling it twice without
// ResetGradients accumulates both passes; call SeedRoot first or every
// gradient stays zero.
func (g *Graph[V]) Backward(root Node[V]) {
	order := g.ReverseTopological(root)

	var inputs, grads []V
	for _, id := range order {
		rec := &g.nodes[id]
		if rec.op == ops.None {
			continue
		}

		// Rules exist for every op accepted by Apply.
		rule, _ := ops.Lookup[V](rec.op)
		operands := g.operandIDs(id)

		inputs = inputs[:0]
		for _, o := range operands {
			inputs = append(inputs, g.nodes[o].value)
		}
		if cap(grads) < len(operands) {
			grads = make([]V, len(operands))
		}
		grads = grads[:len(operands)]

		rule.Backward(inputs, rec.value, rec.grad, grads)

		for i, o := range operands {
			g.nodes[o].grad += grads[i]
		}
	}
}

// ResetGradients sets every gradient in the graph back to zero.
func (g *Graph[V]) ResetGradients() {
	var zero V
	for i := range g.nodes {
		g.nodes[i].grad = zero
	}
}

// Gradients returns the current gradient of every node reachable from root.
func (g *Graph[V]) Gradients(root Node[V]) map[ID]V {
	order := g.ReverseTopological(root)
	grads := make(map[ID]V, len(order))
	for _, id := range order {
		grads[id] = g.nodes[id].grad
	}
	return grads
}

// Backward seeds n and propagates its gradient through the graph.
// It is shorthand for SeedRoot followed by Graph.Backward.
func (n Node[V]) Backward() {
	n.g.SeedRoot(n)
	n.g.Backward(n)
}
