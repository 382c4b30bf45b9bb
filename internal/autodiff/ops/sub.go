package ops

// subOp represents subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type subOp[V Scalar] struct{}

func (op subOp[V]) Forward(inputs []V) V {
	return inputs[0] - inputs[1]
}

func (op subOp[V]) Backward(_ []V, _, outputGrad V, grads []V) {
	grads[0] = outputGrad
	grads[1] = -outputGrad
}
