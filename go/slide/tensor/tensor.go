// Package tensor holds the vector and batch containers the rest of the
// engine is built on: a fixed-length Data vector, and the owning/borrowing
// pair BatchData/BatchView over a row-major sample-major buffer, the same
// split _examples/muchq-MoonBase/go/neuro/utils/tensor.go draws between an owned utils.Tensor and
// the views it hands out of it.
package tensor

import (
	"fmt"

	"github.com/sparsecore/slide/go/slide/numeric"
)

// Data is a fixed-length, owned vector of scalars.
type Data[T numeric.Float] struct {
	values []T
}

// New allocates a zeroed Data of length n.
func New[T numeric.Float](n int) Data[T] {
	return Data[T]{values: make([]T, n)}
}

// FromSlice wraps a copy of src; the returned Data owns its storage.
func FromSlice[T numeric.Float](src []T) Data[T] {
	values := make([]T, len(src))
	copy(values, src)
	return Data[T]{values: values}
}

// Len returns the vector's length.
func (d Data[T]) Len() int { return len(d.values) }

// At returns the i'th element, panicking on out-of-range i the way
// utils.Tensor.Get does for a malformed index (a programmer error, not a
// precondition this library documents as a recoverable error).
func (d Data[T]) At(i int) T {
	if i < 0 || i >= len(d.values) {
		panic(fmt.Sprintf("tensor: index %d out of range [0,%d)", i, len(d.values)))
	}
	return d.values[i]
}

// Set assigns the i'th element.
func (d Data[T]) Set(i int, v T) {
	if i < 0 || i >= len(d.values) {
		panic(fmt.Sprintf("tensor: index %d out of range [0,%d)", i, len(d.values)))
	}
	d.values[i] = v
}

// Slice exposes the backing array directly, for callers (tests, mostly)
// that need to compare or inspect a whole row at once rather than
// element-by-element through At. Callers must not retain it past the
// Data's lifetime changing.
func (d Data[T]) Slice() []T { return d.values }

// BatchData owns a contiguous dataSize*batchSize buffer, row-major (one row
// per sample), the owned counterpart to BatchView.
type BatchData[T numeric.Float] struct {
	buf       []T
	dataSize  int
	batchSize int
}

// NewBatchData allocates a zeroed batch of batchSize rows, each of length
// dataSize.
func NewBatchData[T numeric.Float](dataSize, batchSize int) *BatchData[T] {
	if dataSize <= 0 || batchSize < 0 {
		panic(fmt.Sprintf("tensor: invalid batch shape dataSize=%d batchSize=%d", dataSize, batchSize))
	}
	return &BatchData[T]{
		buf:       make([]T, dataSize*batchSize),
		dataSize:  dataSize,
		batchSize: batchSize,
	}
}

// DataSize returns the per-row length.
func (b *BatchData[T]) DataSize() int { return b.dataSize }

// BatchSize returns the number of rows.
func (b *BatchData[T]) BatchSize() int { return b.batchSize }

// SetRow copies row into the i'th slot, which must have length DataSize().
func (b *BatchData[T]) SetRow(i int, row Data[T]) {
	if i < 0 || i >= b.batchSize {
		panic(fmt.Sprintf("tensor: row %d out of range [0,%d)", i, b.batchSize))
	}
	if row.Len() != b.dataSize {
		panic(fmt.Sprintf("tensor: row length %d does not match data size %d", row.Len(), b.dataSize))
	}
	copy(b.buf[i*b.dataSize:(i+1)*b.dataSize], row.values)
}

// Row returns a copy of the i'th row as an owned Data.
func (b *BatchData[T]) Row(i int) Data[T] {
	if i < 0 || i >= b.batchSize {
		panic(fmt.Sprintf("tensor: row %d out of range [0,%d)", i, b.batchSize))
	}
	return FromSlice(b.buf[i*b.dataSize : (i+1)*b.dataSize])
}

// AppendRow grows the batch by one row, copying row onto the end of the
// backing buffer, mirroring original_source/HashDL/data.hh's
// BatchData::push_back row-at-a-time growth. A row whose length is not
// exactly the per-row data size is rejected and the batch is left as it was.
func (b *BatchData[T]) AppendRow(row Data[T]) error {
	if row.Len() != b.dataSize {
		return fmt.Errorf("tensor: row length %d does not match data size %d", row.Len(), b.dataSize)
	}
	b.buf = append(b.buf, row.values...)
	b.batchSize++
	return nil
}

// View returns a non-owning BatchView over this BatchData's buffer.
func (b *BatchData[T]) View() BatchView[T] {
	return BatchView[T]{buf: b.buf, dataSize: b.dataSize, batchSize: b.batchSize}
}

// BatchData implements BatchView would not add much (Go has no inheritance);
// NewBatchViewFromSlice lets a caller wrap an externally-owned buffer
// without a BatchData detour, matching how a driver typically hands the
// engine a slice it read a minibatch into.
func NewBatchViewFromSlice[T numeric.Float](buf []T, dataSize int) (BatchView[T], error) {
	if dataSize <= 0 {
		return BatchView[T]{}, fmt.Errorf("tensor: data size must be positive, got %d", dataSize)
	}
	if len(buf)%dataSize != 0 {
		return BatchView[T]{}, fmt.Errorf("tensor: buffer length %d is not a multiple of data size %d", len(buf), dataSize)
	}
	return BatchView[T]{buf: buf, dataSize: dataSize, batchSize: len(buf) / dataSize}, nil
}

// BatchView is a non-owning reference to a row-major sample-major buffer.
type BatchView[T numeric.Float] struct {
	buf       []T
	dataSize  int
	batchSize int
}

// DataSize returns the per-row length.
func (v BatchView[T]) DataSize() int { return v.dataSize }

// BatchSize returns the number of rows.
func (v BatchView[T]) BatchSize() int { return v.batchSize }

// Row returns a copy of the i'th row as an owned Data.
func (v BatchView[T]) Row(i int) Data[T] {
	if i < 0 || i >= v.batchSize {
		panic(fmt.Sprintf("tensor: row %d out of range [0,%d)", i, v.batchSize))
	}
	return FromSlice(v.buf[i*v.dataSize : (i+1)*v.dataSize])
}
