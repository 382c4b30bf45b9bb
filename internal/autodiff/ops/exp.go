package ops

import "math"

// expOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x)
//   - grad_input = grad_output * exp(x)
type expOp[V Scalar] struct{}

func (op expOp[V]) Forward(inputs []V) V {
	return apply(inputs[0], math.Exp)
}

func (op expOp[V]) Backward(inputs []V, _, outputGrad V, grads []V) {
	grads[0] = scale(math.Exp(float64(inputs[0])), outputGrad)
}
