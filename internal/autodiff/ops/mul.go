package ops

// mulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type mulOp[V Scalar] struct{}

func (op mulOp[V]) Forward(inputs []V) V {
	return inputs[0] * inputs[1]
}

func (op mulOp[V]) Backward(inputs []V, _, outputGrad V, grads []V) {
	a, b := inputs[0], inputs[1]
	grads[0] = b * outputGrad
	grads[1] = a * outputGrad
}
