package layer

import (
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// InputLayer is the network's entry point: it remembers each batch slot's
// raw input and forwards it on unchanged. Its active set is every
// dimension.
type InputLayer[T numeric.Float] struct {
	base[T]
	units int
	y     []tensor.Data[T]
}

// NewInputLayer constructs an InputLayer over the given input dimension.
func NewInputLayer[T numeric.Float](units int) *InputLayer[T] {
	return &InputLayer[T]{units: units}
}

func (l *InputLayer[T]) Reset(batchSize int) {
	l.y = make([]tensor.Data[T], batchSize)
}

func (l *InputLayer[T]) Forward(i int, x tensor.Data[T]) tensor.Data[T] {
	l.y[i] = x
	if nxt := l.next(); nxt != nil {
		return nxt.Forward(i, x)
	}
	return x
}

// Backward is a no-op: there is nothing upstream of the input layer.
func (l *InputLayer[T]) Backward(i int, dLdy tensor.Data[T]) {}

func (l *InputLayer[T]) ActiveID(i int) []int { return identityRange(l.units) }

func (l *InputLayer[T]) Fx(i int) tensor.Data[T] { return l.y[i] }

func (l *InputLayer[T]) Update(isRehash bool) error { return nil }
