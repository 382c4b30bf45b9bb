package ops

// sumOp adds any positive number of inputs. The gradient flows unchanged to
// every input.
type sumOp[V Scalar] struct{}

func (op sumOp[V]) Forward(inputs []V) V {
	var total V
	for _, x := range inputs {
		total += x
	}
	return total
}

func (op sumOp[V]) Backward(_ []V, _, outputGrad V, grads []V) {
	for i := range grads {
		grads[i] = outputGrad
	}
}
