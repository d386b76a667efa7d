// Package neuron implements Neuron(Weight, Activation): the forward/backward
// unit a Dense layer holds one of per output position.
package neuron

import (
	"github.com/sparsecore/slide/go/slide/activations"
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/tensor"
	"github.com/sparsecore/slide/go/slide/weight"
)

// Contribution is one neuron's backward-pass gradient contribution to a
// single input position, to be summed (by the caller, typically a layer)
// into that position's delta alongside every other neuron's contribution at
// the same index.
type Contribution[T numeric.Float] struct {
	Index int
	Delta T
}

// Neuron owns one Weight and a shared Activation, plus whatever the last
// Forward call needs remembered for the following Backward call.
type Neuron[T numeric.Float] struct {
	id         int
	weight     *weight.Weight[T]
	activation activations.Activation[T]

	lastInput      tensor.Data[T]
	lastPrevActive []int
	lastFx         T
}

// New constructs a Neuron with the given stable id, owned Weight, and
// Activation.
func New[T numeric.Float](id int, w *weight.Weight[T], act activations.Activation[T]) *Neuron[T] {
	return &Neuron[T]{id: id, weight: w, activation: act}
}

// ID returns the neuron's stable id, the value an lsh.Index retrieves.
func (n *Neuron[T]) ID() int { return n.id }

// W returns a snapshot of the neuron's input weights, the vector an
// lsh.Index hashes (the weight vector, not the input).
func (n *Neuron[T]) W() tensor.Data[T] { return n.weight.Weight() }

// Fx returns the most recent Forward call's output.
func (n *Neuron[T]) Fx() T { return n.lastFx }

// Forward computes the affine combination over x restricted to prevActive,
// applies the activation, and remembers everything Backward needs.
func (n *Neuron[T]) Forward(x tensor.Data[T], prevActive []int) T {
	z := n.weight.Affine(x, prevActive)
	fx := n.activation.Call(z)

	n.lastInput = x
	n.lastPrevActive = prevActive
	n.lastFx = fx
	return fx
}

// Backward takes the upstream gradient w.r.t. this neuron's output, deposits
// a weight gradient at every active input position plus an unconditional
// bias gradient, and returns this neuron's contribution to the delta of
// every active input position (the bias always updates,
// whether or not an input position happens to be active).
func (n *Neuron[T]) Backward(deltaOut T) []Contribution[T] {
	deltaZ := n.activation.Back(n.lastFx, deltaOut)

	contribs := make([]Contribution[T], len(n.lastPrevActive))
	for k, i := range n.lastPrevActive {
		n.weight.AddWeightGrad(i, deltaZ*n.lastInput.At(i))
		contribs[k] = Contribution[T]{Index: i, Delta: deltaZ * n.weight.WeightAt(i)}
	}
	n.weight.AddBiasGrad(deltaZ)
	return contribs
}

// Update applies the pending optimizer step to the neuron's weight (inputs
// and bias alike).
func (n *Neuron[T]) Update() { n.weight.Update() }
