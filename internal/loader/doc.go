// Package loader reads expression-graph definitions from YAML and builds
// them into autodiff graphs.
//
// A definition lists nodes in construction order. Leaves carry a value,
// operation nodes carry an op and the labels of earlier nodes as operands:
//
//	name: neuron
//	root: o
//	nodes:
//	  - {label: x1, value: 2}
//	  - {label: w1, value: -3}
//	  - {label: x1w1, op: mul, operands: [x1, w1]}
//	  - {label: o, op: tanh, operands: [x1w1]}
//
// Example:
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
//
// Validation reports every problem of a definition at once.
package loader
