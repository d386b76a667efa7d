package hash

import (
	"fmt"

	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// DWTA is WTA with densification: a bin whose max is exactly zero is
// rescued by a universal-hash walk to another bin's argmax, so every bin
// still contributes a real signal. Follows SLIDE (Spring et al. 2020), not
// the original densified-WTA paper's "+attempt" offset.
type DWTA[T numeric.Float] struct {
	binSize     int
	dataSize    int
	sampleSize  int
	maxAttempt  int
	sampleBits  int
	attemptBits int
	coprime     int
	theta       [][]int
}

// NewDWTA draws the same theta table as WTA, plus a random multiplier
// coprime to sampleSize for the universal-hash rescue.
func NewDWTA[T numeric.Float](binSize, dataSize, sampleSize, maxAttempt int, src randsource.Source) (*DWTA[T], error) {
	if err := validateConstruction(binSize, dataSize, sampleSize); err != nil {
		return nil, err
	}
	return &DWTA[T]{
		binSize:     binSize,
		dataSize:    dataSize,
		sampleSize:  sampleSize,
		maxAttempt:  maxAttempt,
		sampleBits:  bitsFor(sampleSize),
		attemptBits: bitsFor(maxAttempt),
		coprime:     coprimeTo(sampleSize, src),
		theta:       buildTheta(binSize, dataSize, sampleSize, src),
	}, nil
}

// Encode computes every bin's (max, argmax) exactly like WTA, then for any
// bin whose max is exactly zero, walks universalHash(bin, attempt) until it
// finds a non-zero-max bin to borrow an argmax index from, or gives up
// after maxAttempt tries and borrows from the last one tried anyway.
func (d *DWTA[T]) Encode(x tensor.Data[T]) (uint64, error) {
	if x.Len() != d.dataSize {
		return 0, fmt.Errorf("%w: got %d want %d", ErrDimensionMismatch, x.Len(), d.dataSize)
	}

	maxVals := make([]T, d.binSize)
	argIdx := make([]int, d.binSize)
	for b := 0; b < d.binSize; b++ {
		maxVals[b], argIdx[b] = argmaxBin(x, d.theta[b])
	}

	var code uint64
	for b := 0; b < d.binSize; b++ {
		packIdx := argIdx[b]
		if maxVals[b] == 0 {
			next := b
			for attempt := 0; attempt < d.maxAttempt; attempt++ {
				next = universalHash(b, attempt, d.sampleSize, d.coprime, d.attemptBits)
				if maxVals[next] != 0 {
					break
				}
			}
			packIdx = argIdx[next]
		}
		code = (code << d.sampleBits) | uint64(packIdx)
	}
	return code, nil
}

func (d *DWTA[T]) Name() string { return "DWTA" }

// universalHash computes ((i << attemptBits) + a) * c mod k, the
// densification rescue's probe sequence.
func universalHash(i, a, k, c, attemptBits int) int {
	v := ((i << attemptBits) + a) * c
	return ((v % k) + k) % k
}

// coprimeTo draws a random c in [1,k) with gcd(k,c)=1. For k<=1 every c is
// trivially coprime, so it returns 1.
func coprimeTo(k int, src randsource.Source) int {
	if k <= 1 {
		return 1
	}
	for {
		c := src.IntN(k-1) + 1
		if gcd(k, c) == 1 {
			return c
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// DWTAFactory constructs a fresh DWTA bound to a requested data size,
// clamping the sample size down when it exceeds that dimension and
// defaulting maxAttempt to 100 when unset.
type DWTAFactory[T numeric.Float] struct {
	BinSize    int
	SampleSize int
	MaxAttempt int
	Source     randsource.Source
}

func (f DWTAFactory[T]) Get(dataSize int) (Hash[T], error) {
	k := f.SampleSize
	if k > dataSize {
		k = dataSize
	}
	maxAttempt := f.MaxAttempt
	if maxAttempt == 0 {
		maxAttempt = 100
	}
	return NewDWTA[T](f.BinSize, dataSize, k, maxAttempt, f.Source)
}
