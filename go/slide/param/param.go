// Package param implements Parameter: a single trainable scalar with an
// atomically-accumulated gradient and its own optimizer client, the unit
// every Weight is built from. There is no direct teacher
// analogue — _examples/muchq-MoonBase/go/neuro/layers.Dense accumulates gradients into a whole
// *utils.Tensor under the optimizer's exclusive Step(), never concurrently
// — so this package's atomic discipline is new, built on the CAS-loop
// primitive in go/slide/numeric.
package param

import (
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/optimizer"
)

// Parameter holds a value, an atomically-accumulated gradient, and an
// owned optimizer Client. AddGrad may be called concurrently from many
// backward-pass goroutines; Update is called exclusively, once per batch.
type Parameter[T numeric.Float] struct {
	value  T
	grad   T
	client optimizer.Client[T]
	l1, l2 T
}

// New constructs a Parameter seeded at initial, bound to opt (from which it
// requests its own Client), with the given L1/L2 regularization
// coefficients (0 to disable either).
func New[T numeric.Float](initial T, opt optimizer.Optimizer[T], l1, l2 T) *Parameter[T] {
	return &Parameter[T]{
		value:  initial,
		client: opt.NewClient(),
		l1:     l1,
		l2:     l2,
	}
}

// Value returns the current value. Safe to call during forward/backward:
// by the forward/backward/update phase discipline, nothing writes value outside
// Update, and Update never overlaps a forward/backward phase.
func (p *Parameter[T]) Value() T { return p.value }

// AddGrad atomically deposits g, plus L1/L2 regularization evaluated at
// the parameter's current value, into the gradient accumulator. Safe to
// call concurrently from many goroutines.
func (p *Parameter[T]) AddGrad(g T) {
	deposit := g + numeric.Sign(p.value)*p.l1 + p.l2*p.value
	numeric.AddFloat(&p.grad, deposit)
}

// Update atomically reads and clears the gradient accumulator, then applies
// the optimizer client's diff to value. Must not be called concurrently
// with itself or with another Update on the same Parameter.
func (p *Parameter[T]) Update() {
	accum := numeric.SwapFloat(&p.grad)
	p.value += p.client.Diff(accum)
}
