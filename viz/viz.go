// Copyright 2026 Majin Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package viz renders expression graphs as text.
package viz

import (
	"io"

	"github.com/majin-ml/majin/internal/autodiff"
	"github.com/majin-ml/majin/internal/autodiff/ops"
	"github.com/majin-ml/majin/internal/viz"
)

// DrawASCII writes every node reachable from root with its value, followed
// by the operand edges between them.
func DrawASCII[V ops.Scalar](w io.Writer, root autodiff.Node[V]) error {
	return viz.DrawASCII(w, root)
}

// RenderTable writes one table row per node reachable from root, root first.
func RenderTable[V ops.Scalar](w io.Writer, root autodiff.Node[V]) {
	viz.RenderTable(w, root)
}
