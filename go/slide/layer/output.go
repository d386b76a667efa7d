package layer

import (
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// OutputLayer is the network's terminal layer: Forward just records and
// returns its input; Backward hands the caller-supplied dL/dy straight to
// the previous layer, starting the backward chain.
type OutputLayer[T numeric.Float] struct {
	base[T]
	units int
	y     []tensor.Data[T]
}

// NewOutputLayer constructs an OutputLayer over the given output dimension.
func NewOutputLayer[T numeric.Float](units int) *OutputLayer[T] {
	return &OutputLayer[T]{units: units}
}

func (l *OutputLayer[T]) Reset(batchSize int) {
	l.y = make([]tensor.Data[T], batchSize)
}

func (l *OutputLayer[T]) Forward(i int, x tensor.Data[T]) tensor.Data[T] {
	l.y[i] = x
	return x
}

func (l *OutputLayer[T]) Backward(i int, dLdy tensor.Data[T]) {
	if p := l.prev(); p != nil {
		p.Backward(i, dLdy)
	}
}

func (l *OutputLayer[T]) ActiveID(i int) []int { return identityRange(l.units) }

func (l *OutputLayer[T]) Fx(i int) tensor.Data[T] { return l.y[i] }

func (l *OutputLayer[T]) Update(isRehash bool) error { return nil }
