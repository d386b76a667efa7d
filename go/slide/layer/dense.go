package layer

import (
	"github.com/sparsecore/slide/go/slide/activations"
	"github.com/sparsecore/slide/go/slide/hash"
	"github.com/sparsecore/slide/go/slide/initializers"
	"github.com/sparsecore/slide/go/slide/lsh"
	"github.com/sparsecore/slide/go/slide/neuron"
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
	"github.com/sparsecore/slide/go/slide/weight"
)

// DenseLayer owns units neurons plus the LSH index retrieval narrows
// every forward/backward pass down to.
type DenseLayer[T numeric.Float] struct {
	base[T]
	units      int
	activation activations.Activation[T]
	neurons    []*neuron.Neuron[T]
	index      *lsh.Index[T]

	y         []tensor.Data[T]
	activeIdx [][]int
}

// NewDenseLayer constructs units neurons (each with a prevUnits-wide
// Weight seeded by init and bound to opt), builds an L-table LSH index
// over them, and bulk-inserts every neuron into it.
func NewDenseLayer[T numeric.Float](
	prevUnits, units int,
	activation activations.Activation[T],
	l int,
	factory hash.Factory[T],
	opt optimizer.Optimizer[T],
	init initializers.Initializer[T],
	l1, l2 T,
	sparsity float64,
	source randsource.Source,
) (*DenseLayer[T], error) {
	neurons := make([]*neuron.Neuron[T], units)
	indexables := make([]lsh.Indexable[T], units)
	for i := 0; i < units; i++ {
		w := weight.New[T](prevUnits, opt, init, l1, l2)
		n := neuron.New[T](i, w, activation)
		neurons[i] = n
		indexables[i] = n
	}

	index, err := lsh.New[T](l, prevUnits, factory, sparsity, source)
	if err != nil {
		return nil, err
	}
	if err := index.Add(indexables); err != nil {
		return nil, err
	}

	return &DenseLayer[T]{
		units:      units,
		activation: activation,
		neurons:    neurons,
		index:      index,
	}, nil
}

// Units returns the number of neurons, the "prev_units" a following Dense
// layer is constructed with.
func (d *DenseLayer[T]) Units() int { return d.units }

func (d *DenseLayer[T]) Reset(batchSize int) {
	y := make([]tensor.Data[T], batchSize)
	for i := range y {
		y[i] = tensor.New[T](d.units)
	}
	d.y = y
	d.activeIdx = make([][]int, batchSize)
}

// Forward retrieves the active neuron set for x, evaluates only those
// neurons, and leaves every other position of Y[i] at its zeroed default
// (forward output positions for non-active neurons stay zero).
func (d *DenseLayer[T]) Forward(i int, x tensor.Data[T]) tensor.Data[T] {
	active, err := d.index.Retrieve(x)
	if err != nil {
		panic(err)
	}
	d.activeIdx[i] = active

	prevActive := d.prevActiveID(i)
	for _, nID := range active {
		d.y[i].Set(nID, d.neurons[nID].Forward(x, prevActive))
	}

	if nxt := d.next(); nxt != nil {
		return nxt.Forward(i, d.y[i])
	}
	return d.y[i]
}

// Backward routes dL/dy through every active neuron, accumulating their
// gradient contributions into a previous-layer-sized delta, then hands
// that delta to the previous layer. Batch slot i is only ever touched by
// one goroutine, so the accumulation below needs no atomics.
func (d *DenseLayer[T]) Backward(i int, dLdy tensor.Data[T]) {
	prevLayer := d.prev()
	x := prevLayer.Fx(i)
	dLdx := tensor.New[T](x.Len())

	for _, nID := range d.activeIdx[i] {
		for _, c := range d.neurons[nID].Backward(dLdy.At(nID)) {
			dLdx.Set(c.Index, dLdx.At(c.Index)+c.Delta)
		}
	}
	prevLayer.Backward(i, dLdx)
}

func (d *DenseLayer[T]) ActiveID(i int) []int { return d.activeIdx[i] }

func (d *DenseLayer[T]) Fx(i int) tensor.Data[T] { return d.y[i] }

// Update applies the pending optimizer step to every neuron, then, if
// isRehash, rebuilds the LSH index from the neurons' post-update weights.
func (d *DenseLayer[T]) Update(isRehash bool) error {
	for _, n := range d.neurons {
		n.Update()
	}
	if !isRehash {
		return nil
	}
	if err := d.index.Reset(); err != nil {
		return err
	}
	indexables := make([]lsh.Indexable[T], len(d.neurons))
	for i, n := range d.neurons {
		indexables[i] = n
	}
	return d.index.Add(indexables)
}

func (d *DenseLayer[T]) prevActiveID(i int) []int {
	if p := d.prev(); p != nil {
		return p.ActiveID(i)
	}
	return nil
}
