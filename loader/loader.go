// Copyright 2026 Majin Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader builds expression graphs from YAML definitions.
//
// A definition lists nodes in dependency order. Leaves carry a value,
// operation nodes name an operation and the labels of their operands:
//
//	name: neuron
//	root: o
//	nodes:
//	  - {label: x1, value: 2}
//	  - {label: w1, value: -3}
//	  - {label: n, op: mul, operands: [x1, w1]}
//	  - {label: o, op: tanh, operands: [n]}
//
// Example usage:
//
//	import "github.com/majin-ml/majin/loader"
//
//	def, err := loader.LoadFile("neuron.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	built, err := loader.Build[float64](def)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	built.Root.Backward()
package loader

import (
	"github.com/majin-ml/majin/internal/autodiff/ops"
	"github.com/majin-ml/majin/internal/loader"
)

// Definition is a parsed graph file.
type Definition = loader.GraphYAML

// NodeDefinition is one entry of Definition.Nodes.
type NodeDefinition = loader.NodeYAML

// Built is a definition turned into a graph, with nodes indexed by label.
type Built[V ops.Scalar] = loader.Built[V]

// ErrInvalidGraph is the cause of every validation failure.
var ErrInvalidGraph = loader.ErrInvalidGraph

// LoadFile reads and parses a graph definition without validating it.
func LoadFile(path string) (*Definition, error) {
	return loader.LoadFile(path)
}

// Parse parses a graph definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	return loader.Parse(data)
}

// Build validates def and records its nodes into a new graph.
//
// All validation problems are reported together; each one wraps
// ErrInvalidGraph.
func Build[V ops.Scalar](def *Definition) (*Built[V], error) {
	return loader.Build[V](def)
}
