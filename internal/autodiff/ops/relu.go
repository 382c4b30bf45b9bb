package ops

// reluOp represents a ReLU (Rectified Linear Unit) activation: output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type reluOp[V Scalar] struct{}

func (op reluOp[V]) Forward(inputs []V) V {
	var zero V
	if inputs[0] > zero {
		return inputs[0]
	}
	return zero
}

func (op reluOp[V]) Backward(inputs []V, _, outputGrad V, grads []V) {
	var zero V
	if inputs[0] > zero {
		grads[0] = outputGrad
		return
	}
	grads[0] = zero
}
