// Copyright 2026 Majin Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majin-ml/majin/autodiff"
)

// TestChainRule builds r = a*b + c through the public API.
func TestChainRule(t *testing.T) {
	g := autodiff.NewGraph[float64]()
	a := g.NewLeaf(2, "a")
	b := g.NewLeaf(-3, "b")
	c := g.NewLeaf(10, "c")

	mul, err := autodiff.ParseOp("*")
	require.NoError(t, err)
	add, err := autodiff.ParseOp("add")
	require.NoError(t, err)

	ab, err := g.Apply(mul, "ab", a, b)
	require.NoError(t, err)
	r, err := g.Apply(add, "r", ab, c)
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.Value())

	g.SeedRoot(r)
	g.Backward(r)

	assert.Equal(t, -3.0, a.Grad())
	assert.Equal(t, 2.0, b.Grad())
	assert.Equal(t, 1.0, c.Grad())
	assert.Equal(t, autodiff.OpMul, ab.Op())
}

// TestSharedNode verifies accumulation over a node used twice.
func TestSharedNode(t *testing.T) {
	g := autodiff.NewGraph[float32]()
	x := g.NewLeaf(1, "x")
	y := g.NewLeaf(2, "y")
	s := x.Add(y)
	p := s.Mul(s)

	p.Backward()

	assert.Equal(t, float32(6), s.Grad())
	assert.Equal(t, s.Grad(), x.Grad())
	assert.Equal(t, s.Grad(), y.Grad())
}

// TestTraceAPI verifies the Trace and Edge aliases.
func TestTraceAPI(t *testing.T) {
	g := autodiff.NewGraph[int64]()
	x := g.NewLeaf(3, "x")
	e := x.Exp()
	n := x.Neg()
	r := g.Sum(e, n)

	var tr autodiff.Trace = g.Trace(r)
	assert.Equal(t, r.ID(), tr.Root)
	assert.Len(t, tr.Nodes, 4)
	assert.Equal(t, int64(20), e.Value())
	assert.Contains(t, tr.Edges, autodiff.Edge{From: x.ID(), To: n.ID()})
}

// TestErrors verifies the exported sentinels.
func TestErrors(t *testing.T) {
	g := autodiff.NewGraph[float64]()
	other := autodiff.NewGraph[float64]()
	x := g.NewLeaf(1, "x")

	_, err := g.Apply(autodiff.OpTanh, "", x, x)
	assert.True(t, errors.Is(err, autodiff.ErrArity))

	_, err = g.Apply(autodiff.OpNeg, "", other.NewLeaf(1, "y"))
	assert.True(t, errors.Is(err, autodiff.ErrForeignNode))

	_, err = g.Apply(autodiff.OpNone, "", x)
	assert.True(t, errors.Is(err, autodiff.ErrUnknownOp))

	_, err = autodiff.ParseOp("pow")
	assert.True(t, errors.Is(err, autodiff.ErrUnknownOp))
}
