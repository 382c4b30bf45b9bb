// Copyright 2026 Majin Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Values are recorded as nodes of a Graph. Every node remembers the operation
// that produced it and its operands, so one gradient pass from a root fills
// the gradient of every node the root depends on.
//
// Example:
//
//	import "github.com/majin-ml/majin/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph[float64]()
//	    a := g.NewLeaf(2, "a")
//	    b := g.NewLeaf(-3, "b")
//	    c := a.Mul(b).Add(a).Tanh()
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad())
//	}
package autodiff

import (
	"github.com/majin-ml/majin/internal/autodiff"
	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// Scalar is the set of value types a graph can hold.
type Scalar = ops.Scalar

// Graph owns nodes and their gradients.
type Graph[V Scalar] = autodiff.Graph[V]

// Node is a handle to one value in a Graph.
type Node[V Scalar] = autodiff.Node[V]

// ID identifies a node within its graph. IDs follow construction order.
type ID = autodiff.ID

// Edge links an operand to the node it feeds.
type Edge = autodiff.Edge

// Trace is the set of nodes and edges reachable from a root.
type Trace = autodiff.Trace

// Op names the operation that produced a node.
type Op = ops.Kind

// Supported operations.
const (
	OpNone    = ops.None
	OpAdd     = ops.Add
	OpSub     = ops.Sub
	OpMul     = ops.Mul
	OpNeg     = ops.Neg
	OpTanh    = ops.Tanh
	OpExp     = ops.Exp
	OpSigmoid = ops.Sigmoid
	OpReLU    = ops.ReLU
	OpSum     = ops.Sum
)

// Errors returned when building nodes.
var (
	ErrArity       = autodiff.ErrArity
	ErrForeignNode = autodiff.ErrForeignNode
	ErrUnknownOp   = autodiff.ErrUnknownOp
)

// NewGraph creates an empty graph.
//
// Example:
//
//	g := autodiff.NewGraph[float32]()
//	x := g.NewLeaf(0.5, "x")
func NewGraph[V Scalar]() *Graph[V] {
	return autodiff.NewGraph[V]()
}

// ParseOp resolves an operation by name ("mul") or symbol ("*").
func ParseOp(s string) (Op, error) {
	return ops.ParseKind(s)
}
