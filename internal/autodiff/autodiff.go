// Package autodiff implements reverse-mode automatic differentiation over
// scalar expression graphs.
//
// Architecture:
//   - Graph: an arena owning every node; nodes are addressed by a dense ID
//     that is also their construction order
//   - Node: a small handle {graph, id}; operands are shared by reference, so
//     a value used by several consumers is one node
//   - ops.Operation: value formula and local-gradient rule per ops.Kind
//   - Backward: walks the reachable nodes in descending ID order (a reverse
//     topological order) and accumulates gradients with +=
//
// Usage:
//
//	g := autodiff.NewGraph[float64]()
//	a := g.NewLeaf(2, "a")
//	b := g.NewLeaf(-3, "b")
//	c := g.NewLeaf(10, "c")
//	r := a.Mul(b).Add(c) // r = a*b + c = 4
//
//	g.SeedRoot(r)
//	g.Backward(r)
//	fmt.Println(a.Grad(), b.Grad(), c.Grad()) // -3 2 1
//
// A Graph is not safe for concurrent construction or gradient passes.
// Evaluate and Trace only read the graph.
package autodiff

import (
	"github.com/pkg/errors"

	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// Errors returned by Apply.
var (
	// ErrArity is returned when the operand count does not match the operation.
	ErrArity = errors.New("operand count does not match operation arity")

	// ErrForeignNode is returned when an operand is invalid or owned by another graph.
	ErrForeignNode = errors.New("operand does not belong to this graph")

	// ErrUnknownOp is returned for None and for kinds without a rule.
	ErrUnknownOp = ops.ErrUnknownOp
)

// ID identifies a node within its Graph. IDs are assigned in construction
// order starting at zero, so every operand has a smaller ID than its consumer.
type ID int

type record[V ops.Scalar] struct {
	value V
	grad  V
	op    ops.Kind
	label string
	// operands of this node are g.operands[first : first+count].
	first int
	count int
}

// Graph is the arena that owns every node of an expression graph.
//
// Type parameter V is the scalar type of values and gradients.
type Graph[V ops.Scalar] struct {
	nodes    []record[V]
	operands []ID // Operand lists of all nodes, back to back.
}

// NewGraph creates an empty graph.
func NewGraph[V ops.Scalar]() *Graph[V] {
	return &Graph[V]{
		nodes:    make([]record[V], 0, 16),
		operands: make([]ID, 0, 32),
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph[V]) Len() int {
	return len(g.nodes)
}

// NewLeaf creates a node with no operands and zero gradient.
func (g *Graph[V]) NewLeaf(value V, label string) Node[V] {
	g.nodes = append(g.nodes, record[V]{
		value: value,
		op:    ops.None,
		label: label,
		first: len(g.operands),
	})
	return Node[V]{g: g, id: ID(len(g.nodes) - 1)}
}

// Apply creates a node whose value is k applied to the current values of
// operands. The operands are referenced, not copied.
//
// Apply fails fast with ErrUnknownOp, ErrArity or ErrForeignNode; the graph
// is left unchanged on error.
func (g *Graph[V]) Apply(k ops.Kind, label string, operands ...Node[V]) (Node[V], error) {
	rule, ok := ops.Lookup[V](k)
	if !ok {
		return Node[V]{}, errors.Wrapf(ErrUnknownOp, "apply %s", k)
	}
	if !k.AcceptsArity(len(operands)) {
		return Node[V]{}, errors.Wrapf(ErrArity, "apply %s: got %d operands", k, len(operands))
	}

	inputs := make([]V, len(operands))
	for i, o := range operands {
		if !g.owns(o) {
			return Node[V]{}, errors.Wrapf(ErrForeignNode, "apply %s: operand %d", k, i)
		}
		inputs[i] = g.nodes[o.id].value
	}

	first := len(g.operands)
	for _, o := range operands {
		g.operands = append(g.operands, o.id)
	}
	g.nodes = append(g.nodes, record[V]{
		value: rule.Forward(inputs),
		op:    k,
		label: label,
		first: first,
		count: len(operands),
	})
	return Node[V]{g: g, id: ID(len(g.nodes) - 1)}, nil
}

// MustApply is like Apply but panics on error.
func (g *Graph[V]) MustApply(k ops.Kind, label string, operands ...Node[V]) Node[V] {
	n, err := g.Apply(k, label, operands...)
	if err != nil {
		panic(err)
	}
	return n
}

// Sum adds any positive number of nodes with a single variadic node.
func (g *Graph[V]) Sum(nodes ...Node[V]) Node[V] {
	return g.MustApply(ops.Sum, "", nodes...)
}

// Node returns the handle for id. It panics if id is out of range.
func (g *Graph[V]) Node(id ID) Node[V] {
	if id < 0 || int(id) >= len(g.nodes) {
		panic(errors.Errorf("node %d out of range [0, %d)", id, len(g.nodes)))
	}
	return Node[V]{g: g, id: id}
}

func (g *Graph[V]) owns(n Node[V]) bool {
	return n.g == g && n.id >= 0 && int(n.id) < len(g.nodes)
}

func (g *Graph[V]) mustOwn(n Node[V]) {
	if !g.owns(n) {
		panic(errors.Wrapf(ErrForeignNode, "node %d", n.id))
	}
}

func (g *Graph[V]) operandIDs(id ID) []ID {
	r := &g.nodes[id]
	return g.operands[r.first : r.first+r.count]
}
