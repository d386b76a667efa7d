package activations

import "math"

// expNeg returns e^-x for any Float width; math.Exp only takes float64, so
// this is the single conversion point every activation's Sigmoid path
// funnels through.
func expNeg[T ~float32 | ~float64](x T) T {
	return T(math.Exp(-float64(x)))
}
