// Package activations implements the scalar call/back pairs neurons apply
// at their pre-activation output, grounded on _examples/muchq-MoonBase/go/neuro/activations (a
// Forward/Backward/Name interface over *utils.Tensor) but narrowed to the
// scalar signature a Neuron actually calls with: one value in, one value
// and its upstream gradient out.
package activations

import "github.com/sparsecore/slide/go/slide/numeric"

// Activation is a stateless scalar nonlinearity: Call computes y = f(x),
// Back computes dx = f'(y) * dy given the forward output y (not x), matching
// ReLU and Sigmoid's backward passes in _examples/muchq-MoonBase/go/neuro/activations, which both
// differentiate through the cached forward output rather than the input.
type Activation[T numeric.Float] interface {
	Call(x T) T
	Back(y T, dy T) T
	Name() string
}

// Linear is the identity activation.
type Linear[T numeric.Float] struct{}

func (Linear[T]) Call(x T) T      { return x }
func (Linear[T]) Back(_ T, dy T) T { return dy }
func (Linear[T]) Name() string    { return "Linear" }

// ReLU zeroes negative inputs.
type ReLU[T numeric.Float] struct{}

func (ReLU[T]) Call(x T) T {
	if x > 0 {
		return x
	}
	return 0
}

func (ReLU[T]) Back(y T, dy T) T {
	if y > 0 {
		return dy
	}
	return 0
}

func (ReLU[T]) Name() string { return "ReLU" }

// Sigmoid is the logistic function, differentiated through its own output
// (y(1-y)) the way _examples/muchq-MoonBase/go/neuro/activations.Sigmoid.Backward does.
type Sigmoid[T numeric.Float] struct{}

func (Sigmoid[T]) Call(x T) T {
	return 1 / (1 + expNeg(x))
}

func (Sigmoid[T]) Back(y T, dy T) T {
	return y * (1 - y) * dy
}

func (Sigmoid[T]) Name() string { return "Sigmoid" }
