package ops

// negOp represents negation: output = -x.
type negOp[V Scalar] struct{}

func (op negOp[V]) Forward(inputs []V) V {
	return -inputs[0]
}

func (op negOp[V]) Backward(_ []V, _, outputGrad V, grads []V) {
	grads[0] = -outputGrad
}
