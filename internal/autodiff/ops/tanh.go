package ops

import "math"

// tanhOp represents the hyperbolic tangent: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x)).
type tanhOp[V Scalar] struct{}

func (op tanhOp[V]) Forward(inputs []V) V {
	return apply(inputs[0], math.Tanh)
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// t is recomputed from the input rather than read from the output, because
// an integer output has already lost the fraction.
func (op tanhOp[V]) Backward(inputs []V, _, outputGrad V, grads []V) {
	t := math.Tanh(float64(inputs[0]))
	grads[0] = scale(1-t*t, outputGrad)
}
