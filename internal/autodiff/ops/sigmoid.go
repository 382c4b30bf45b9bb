package ops

// sigmoidOp represents the logistic function: σ(x) = 1 / (1 + exp(-x)).
//
// Backward pass:
//   - d(σ(x))/dx = σ(x) * (1 - σ(x))
type sigmoidOp[V Scalar] struct{}

func (op sigmoidOp[V]) Forward(inputs []V) V {
	return apply(inputs[0], sigmoid)
}

func (op sigmoidOp[V]) Backward(inputs []V, _, outputGrad V, grads []V) {
	s := sigmoid(float64(inputs[0]))
	grads[0] = scale(s*(1-s), outputGrad)
}
