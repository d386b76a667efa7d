// Package weight implements Weight(N): N input Parameters plus one bias
// Parameter, and the affine evaluation every Neuron forwards through.
package weight

import (
	"github.com/sparsecore/slide/go/slide/initializers"
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/sparsecore/slide/go/slide/param"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// Weight holds n input Parameters and one bias Parameter, all bound to the
// same Optimizer.
type Weight[T numeric.Float] struct {
	inputs []*param.Parameter[T]
	bias   *param.Parameter[T]
}

// New constructs a Weight with n input parameters and a bias, each seeded
// by init and bound to opt, sharing the given regularization coefficients.
func New[T numeric.Float](n int, opt optimizer.Optimizer[T], init initializers.Initializer[T], l1, l2 T) *Weight[T] {
	inputs := make([]*param.Parameter[T], n)
	for i := range inputs {
		inputs[i] = param.New(init.Next(), opt, l1, l2)
	}
	return &Weight[T]{
		inputs: inputs,
		bias:   param.New(init.Next(), opt, l1, l2),
	}
}

// Weight returns a snapshot of the input-parameter values as a Data vector,
// the form the hash functions encode.
func (w *Weight[T]) Weight() tensor.Data[T] {
	vals := make([]T, len(w.inputs))
	for i, p := range w.inputs {
		vals[i] = p.Value()
	}
	return tensor.FromSlice(vals)
}

// WeightAt returns the i'th input parameter's value.
func (w *Weight[T]) WeightAt(i int) T { return w.inputs[i].Value() }

// Bias returns the bias parameter's value.
func (w *Weight[T]) Bias() T { return w.bias.Value() }

// Affine computes bias + sum_{i in prevActive} weight[i]*x[i]. prevActive
// may be empty, in which case the result is just the bias.
func (w *Weight[T]) Affine(x tensor.Data[T], prevActive []int) T {
	sum := w.bias.Value()
	for _, i := range prevActive {
		sum += w.inputs[i].Value() * x.At(i)
	}
	return sum
}

// AddWeightGrad deposits a gradient against the i'th input parameter.
func (w *Weight[T]) AddWeightGrad(i int, g T) { w.inputs[i].AddGrad(g) }

// AddBiasGrad deposits a gradient against the bias parameter.
func (w *Weight[T]) AddBiasGrad(g T) { w.bias.AddGrad(g) }

// Update applies the pending optimizer step to every input parameter and
// the bias.
func (w *Weight[T]) Update() {
	for _, p := range w.inputs {
		p.Update()
	}
	w.bias.Update()
}
