// Package hash implements the WTA and DWTA hash families that map a
// real-valued vector to a 64-bit code. There is no teacher
// analogue for the algorithm itself (_examples/muchq-MoonBase/go/neuro has no hashing); the package
// shape — a small closed interface with a constructor-validated error path,
// Name()-style self-description, stateless-after-construction encode — is
// grounded on _examples/muchq-MoonBase/go/neuro/activations' Activation interface and its
// construction-time validation style.
package hash

import (
	"errors"
	"fmt"

	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// Errors returned at construction or encode time (hash configuration and
// dimension mismatch).
var (
	ErrSampleSizeExceedsDataSize = errors.New("hash: sample size exceeds data size")
	ErrCodeExceeds64Bits         = errors.New("hash: bin_size * sample_bits exceeds 64 bits")
	ErrDimensionMismatch         = errors.New("hash: input dimension does not match the hash's data size")
)

// Hash maps a Data vector to a 64-bit code. Implementations are stateless
// after construction: Encode never mutates observable state.
type Hash[T numeric.Float] interface {
	Encode(x tensor.Data[T]) (uint64, error)
	Name() string
}

// Factory constructs a fresh Hash bound to a given input dimension, used
// once per table when an LSH index is (re)built.
type Factory[T numeric.Float] interface {
	Get(dataSize int) (Hash[T], error)
}

// bitsFor returns ceil(log2(k)), with a floor of 1.
func bitsFor(k int) int {
	if k <= 1 {
		return 1
	}
	bits := 0
	for (1 << bits) < k {
		bits++
	}
	return bits
}

// buildTheta draws binSize independent permutations of {0..dataSize-1} and
// keeps the first sampleSize indices of each, the theta table WTA and DWTA
// both construct identically.
func buildTheta(binSize, dataSize, sampleSize int, src randsource.Source) [][]int {
	theta := make([][]int, binSize)
	for b := 0; b < binSize; b++ {
		perm := src.Perm(dataSize)
		row := make([]int, sampleSize)
		copy(row, perm[:sampleSize])
		theta[b] = row
	}
	return theta
}

// argmaxBin returns the max value and its ties-broken-by-lowest-index
// position (0..len(indices)-1, not the underlying dimension) of x sampled
// at the given dimension indices.
func argmaxBin[T numeric.Float](x tensor.Data[T], indices []int) (T, int) {
	best := x.At(indices[0])
	bestIdx := 0
	for k := 1; k < len(indices); k++ {
		v := x.At(indices[k])
		if v > best {
			best = v
			bestIdx = k
		}
	}
	return best, bestIdx
}

func validateConstruction(binSize, dataSize, sampleSize int) error {
	if sampleSize > dataSize {
		return fmt.Errorf("%w: sample_size=%d data_size=%d", ErrSampleSizeExceedsDataSize, sampleSize, dataSize)
	}
	bits := bitsFor(sampleSize)
	if binSize*bits > 64 {
		return fmt.Errorf("%w: bin_size=%d sample_bits=%d", ErrCodeExceeds64Bits, binSize, bits)
	}
	return nil
}
