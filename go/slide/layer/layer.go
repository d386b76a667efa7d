// Package layer implements the Input/Dense/Output layer state machine
// grounded on _examples/muchq-MoonBase/go/neuro/layers' Layer interface and Dense
// struct but restructured around the arena-indexed layer graph documented
// a layer never holds a pointer to its neighbor, only its
// own slot index plus a non-owning Owner (satisfied by network.Network)
// that resolves sibling lookups. This avoids the cyclic-ownership structure
// a literal prev/next pointer pair would require.
package layer

import (
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// Layer is the capability set required of every layer
// variant.
type Layer[T numeric.Float] interface {
	Forward(batchIdx int, x tensor.Data[T]) tensor.Data[T]
	Backward(batchIdx int, dLdy tensor.Data[T])
	ActiveID(batchIdx int) []int
	Fx(batchIdx int) tensor.Data[T]
	Reset(batchSize int)
	Update(isRehash bool) error

	// Bind assigns the layer its slot index in owner's layer arena. Called
	// once, at network construction time.
	Bind(idx int, owner Owner[T])
}

// Owner resolves a layer's neighbors by arena index. network.Network is
// the only real implementation; layer never imports network (network
// imports layer), which is what keeps this arena acyclic at the package
// level.
type Owner[T numeric.Float] interface {
	// LayerAt returns the layer at idx, or nil if idx is out of range.
	LayerAt(idx int) Layer[T]
}

// base is embedded by every concrete layer; it carries the arena wiring
// state and the prev()/next() neighbor lookups built on it.
type base[T numeric.Float] struct {
	idx   int
	owner Owner[T]
}

func (b *base[T]) Bind(idx int, owner Owner[T]) {
	b.idx = idx
	b.owner = owner
}

func (b *base[T]) prev() Layer[T] {
	if b.owner == nil {
		return nil
	}
	return b.owner.LayerAt(b.idx - 1)
}

func (b *base[T]) next() Layer[T] {
	if b.owner == nil {
		return nil
	}
	return b.owner.LayerAt(b.idx + 1)
}

// identityRange returns {0, 1, ..., n-1}, the active set of an Input or
// Output layer (both have the identity active set).
func identityRange(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}
