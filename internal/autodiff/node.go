package autodiff

import (
	"fmt"

	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// Node is a handle to one node of a Graph. Handles are values: two handles
// refer to the same node iff they have the same graph and ID. The zero Node
// is invalid.
type Node[V ops.Scalar] struct {
	g  *Graph[V]
	id ID
}

// ID returns the node's identity within its graph.
func (n Node[V]) ID() ID {
	return n.id
}

// Graph returns the owning graph.
func (n Node[V]) Graph() *Graph[V] {
	return n.g
}

// Valid reports whether n refers to an existing node.
func (n Node[V]) Valid() bool {
	return n.g != nil && n.g.owns(n)
}

// Value returns the value computed at construction.
func (n Node[V]) Value() V {
	return n.g.nodes[n.id].value
}

// Grad returns the accumulated gradient of the last root this node was
// propagated from. It is zero before any gradient pass.
func (n Node[V]) Grad() V {
	return n.g.nodes[n.id].grad
}

// Op returns the operation that produced the node, ops.None for a leaf.
func (n Node[V]) Op() ops.Kind {
	return n.g.nodes[n.id].op
}

// IsLeaf reports whether the node has no producing operation.
func (n Node[V]) IsLeaf() bool {
	return n.Op() == ops.None
}

// Label returns the display label.
func (n Node[V]) Label() string {
	return n.g.nodes[n.id].label
}

// WithLabel sets the display label and returns n.
// Labels have no effect on values or gradients.
func (n Node[V]) WithLabel(label string) Node[V] {
	n.g.nodes[n.id].label = label
	return n
}

// Operands returns the direct inputs of the node, in order.
func (n Node[V]) Operands() []Node[V] {
	ids := n.g.operandIDs(n.id)
	out := make([]Node[V], len(ids))
	for i, id := range ids {
		out[i] = Node[V]{g: n.g, id: id}
	}
	return out
}

// String implements fmt.Stringer.
func (n Node[V]) String() string {
	if !n.Valid() {
		return "Node(invalid)"
	}
	label := n.Label()
	if label == "" {
		label = fmt.Sprintf("#%d", n.id)
	}
	if n.IsLeaf() {
		return fmt.Sprintf("%s(value=%v, grad=%v)", label, n.Value(), n.Grad())
	}
	return fmt.Sprintf("%s[%s](value=%v, grad=%v)", label, n.Op(), n.Value(), n.Grad())
}

// Add returns n + o.
func (n Node[V]) Add(o Node[V]) Node[V] {
	return n.g.MustApply(ops.Add, "", n, o)
}

// Sub returns n - o.
func (n Node[V]) Sub(o Node[V]) Node[V] {
	return n.g.MustApply(ops.Sub, "", n, o)
}

// Mul returns n * o.
func (n Node[V]) Mul(o Node[V]) Node[V] {
	return n.g.MustApply(ops.Mul, "", n, o)
}

// Neg returns -n.
func (n Node[V]) Neg() Node[V] {
	return n.g.MustApply(ops.Neg, "", n)
}

// Tanh returns tanh(n).
func (n Node[V]) Tanh() Node[V] {
	return n.g.MustApply(ops.Tanh, "", n)
}

// Exp returns exp(n).
func (n Node[V]) Exp() Node[V] {
	return n.g.MustApply(ops.Exp, "", n)
}

// Sigmoid returns 1 / (1 + exp(-n)).
func (n Node[V]) Sigmoid() Node[V] {
	return n.g.MustApply(ops.Sigmoid, "", n)
}

// ReLU returns max(0, n).
func (n Node[V]) ReLU() Node[V] {
	return n.g.MustApply(ops.ReLU, "", n)
}
