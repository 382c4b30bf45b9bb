// Package ops defines the operations that can produce a node and their local-gradient rules.
//
// Each operation implements the Operation interface, which provides:
//   - Forward: the value formula, applied once when the node is constructed
//   - Backward: the partial derivative of the output with respect to each input,
//     scaled by the output gradient (chain rule)
//
// Supported operations:
//   - Add: d(a+b)/da = 1, d(a+b)/db = 1
//   - Sub: d(a-b)/da = 1, d(a-b)/db = -1
//   - Mul: d(a*b)/da = b, d(a*b)/db = a
//   - Neg: d(-x)/dx = -1
//   - Tanh: d(tanh(x))/dx = 1 - tanh²(x)
//   - Exp: d(exp(x))/dx = exp(x)
//   - Sigmoid: d(σ(x))/dx = σ(x)(1 - σ(x))
//   - ReLU: d(ReLU(x))/dx = 1 if x > 0, else 0
//   - Sum: d(Σxᵢ)/dxᵢ = 1 (any number of inputs)
package ops

import "golang.org/x/exp/constraints"

// Scalar is the set of numeric types a node can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Operation is the value formula and local-gradient rule of one Kind.
type Operation[V Scalar] interface {
	// Forward computes the output value from the input values.
	Forward(inputs []V) V

	// Backward writes into grads[i] the contribution of outputGrad to input i.
	// len(grads) == len(inputs). The caller accumulates the contributions,
	// Backward never reads the previous content of grads.
	//
	// Example for Mul:
	//   inputs: [a, b]
	//   returns: grads = [b * outputGrad, a * outputGrad]
	Backward(inputs []V, output, outputGrad V, grads []V)
}

// Lookup returns the rule for k. The second result is false for None and
// for unknown kinds.
func Lookup[V Scalar](k Kind) (Operation[V], bool) {
	switch k {
	case Add:
		return addOp[V]{}, true
	case Sub:
		return subOp[V]{}, true
	case Mul:
		return mulOp[V]{}, true
	case Neg:
		return negOp[V]{}, true
	case Tanh:
		return tanhOp[V]{}, true
	case Exp:
		return expOp[V]{}, true
	case Sigmoid:
		return sigmoidOp[V]{}, true
	case ReLU:
		return reluOp[V]{}, true
	case Sum:
		return sumOp[V]{}, true
	}
	return nil, false
}
