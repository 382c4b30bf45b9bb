package ops

// addOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type addOp[V Scalar] struct{}

func (op addOp[V]) Forward(inputs []V) V {
	return inputs[0] + inputs[1]
}

func (op addOp[V]) Backward(_ []V, _, outputGrad V, grads []V) {
	grads[0] = outputGrad
	grads[1] = outputGrad
}
