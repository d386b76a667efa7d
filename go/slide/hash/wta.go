package hash

import (
	"fmt"

	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// WTA is a Winner-Take-All hash: binSize independent bins, each an argmax
// over a random sample of sampleSize input dimensions, packed MSB-first
// into a 64-bit code.
type WTA[T numeric.Float] struct {
	binSize    int
	dataSize   int
	sampleSize int
	sampleBits int
	theta      [][]int
}

// NewWTA draws binSize permutations of {0..dataSize-1}, keeping the first
// sampleSize entries of each.
func NewWTA[T numeric.Float](binSize, dataSize, sampleSize int, src randsource.Source) (*WTA[T], error) {
	if err := validateConstruction(binSize, dataSize, sampleSize); err != nil {
		return nil, err
	}
	return &WTA[T]{
		binSize:    binSize,
		dataSize:   dataSize,
		sampleSize: sampleSize,
		sampleBits: bitsFor(sampleSize),
		theta:      buildTheta(binSize, dataSize, sampleSize, src),
	}, nil
}

// Encode packs each bin's argmax index (ties broken by lowest index) into a
// 64-bit code, MSB first.
func (w *WTA[T]) Encode(x tensor.Data[T]) (uint64, error) {
	if x.Len() != w.dataSize {
		return 0, fmt.Errorf("%w: got %d want %d", ErrDimensionMismatch, x.Len(), w.dataSize)
	}
	var code uint64
	for b := 0; b < w.binSize; b++ {
		_, idx := argmaxBin(x, w.theta[b])
		code = (code << w.sampleBits) | uint64(idx)
	}
	return code, nil
}

func (w *WTA[T]) Name() string { return "WTA" }

// WTAFactory constructs a fresh WTA bound to a requested data size,
// clamping the sample size down when it exceeds that dimension.
type WTAFactory[T numeric.Float] struct {
	BinSize    int
	SampleSize int
	Source     randsource.Source
}

func (f WTAFactory[T]) Get(dataSize int) (Hash[T], error) {
	k := f.SampleSize
	if k > dataSize {
		k = dataSize
	}
	return NewWTA[T](f.BinSize, dataSize, k, f.Source)
}
