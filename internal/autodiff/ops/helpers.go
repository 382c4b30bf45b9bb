package ops

import "math"

// apply evaluates f in float64 and converts back to V.
// Integer V truncates toward zero.
func apply[V Scalar](x V, f func(float64) float64) V {
	return V(f(float64(x)))
}

// scale returns d * g computed in float64, so that a fractional local
// derivative is not truncated before it is multiplied by the output gradient.
func scale[V Scalar](d float64, g V) V {
	return V(d * float64(g))
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
