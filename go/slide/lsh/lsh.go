// Package lsh implements the LSH neuron-retrieval index: L
// independent hash tables, bulk-inserted from every neuron in a Dense
// layer, retrieved from with early termination once enough candidates are
// collected. The bounded retrieval memo is adapted from
// _examples/muchq-MoonBase/go/r3dr/shortener.go's LRU-fronted lookup, using the thread-safe
// github.com/hashicorp/golang-lru/v2.Cache: Retrieve runs one goroutine per
// batch slot against the same Index, so the memo's own locking (not
// simplelru's bare, unsynchronized LRU) is required here.
package lsh

import (
	"errors"
	"fmt"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sparsecore/slide/go/slide/hash"
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// ErrInvalidSparsity is returned when sparsity is not in (0,1].
var ErrInvalidSparsity = errors.New("lsh: sparsity must be in (0,1]")

// defaultMemoCapacity bounds the retrieval memo; it is an engineering
// optimization, invisible to retrieval semantics (every entry is purged
// wholesale on reset/add), so it is not exposed as a construction knob.
const defaultMemoCapacity = 4096

// Indexable is what Index needs from a neuron: a stable id and a snapshot
// of its current weight vector to hash.
type Indexable[T numeric.Float] interface {
	ID() int
	W() tensor.Data[T]
}

// Index holds L independent hashes and their backing tables.
type Index[T numeric.Float] struct {
	factory    hash.Factory[T]
	dataSize   int
	l          int
	sparsity   float64
	source     randsource.Source
	hashes     []hash.Hash[T]
	tables     []map[uint64][]int
	neuronSize int
	memo       *lru.Cache[memoKey, []int]
}

type memoKey struct {
	table int
	code  uint64
}

// New constructs an Index with l tables over dataSize-dimensional inputs,
// immediately calling Reset to build the initial (empty) hash tables.
func New[T numeric.Float](l, dataSize int, factory hash.Factory[T], sparsity float64, source randsource.Source) (*Index[T], error) {
	if sparsity <= 0 || sparsity > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSparsity, sparsity)
	}
	memo, _ := lru.New[memoKey, []int](defaultMemoCapacity)
	idx := &Index[T]{
		factory:  factory,
		dataSize: dataSize,
		l:        l,
		sparsity: sparsity,
		source:   source,
		memo:     memo,
	}
	if err := idx.Reset(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reset rebuilds every hash from the factory and clears every table. A
// freshly-reset index (before Add) retrieves the empty set for any query.
func (idx *Index[T]) Reset() error {
	hashes := make([]hash.Hash[T], idx.l)
	for t := 0; t < idx.l; t++ {
		h, err := idx.factory.Get(idx.dataSize)
		if err != nil {
			return fmt.Errorf("lsh: building table %d: %w", t, err)
		}
		hashes[t] = h
	}
	idx.hashes = hashes

	tables := make([]map[uint64][]int, idx.l)
	for t := range tables {
		tables[t] = make(map[uint64][]int)
	}
	idx.tables = tables
	idx.neuronSize = 0
	idx.memo.Purge()
	return nil
}

// Add bulk-inserts every neuron into every table in parallel, one goroutine
// per table (tables never share state, so there is no contention to
// coordinate beyond the final join).
func (idx *Index[T]) Add(neurons []Indexable[T]) error {
	errs := make([]error, idx.l)
	var wg sync.WaitGroup
	for t := 0; t < idx.l; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			table := make(map[uint64][]int, len(neurons))
			for _, n := range neurons {
				code, err := idx.hashes[t].Encode(n.W())
				if err != nil {
					errs[t] = fmt.Errorf("lsh: encoding neuron %d for table %d: %w", n.ID(), t, err)
					return
				}
				table[code] = append(table[code], n.ID())
			}
			idx.tables[t] = table
		}(t)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	idx.neuronSize = len(neurons)
	idx.memo.Purge()
	return nil
}

// Retrieve returns the set of candidate neuron ids for x: tables are
// visited in a random order, accumulating every id in each table's bucket,
// stopping as soon as max(1, floor(neuronSize*sparsity)) distinct ids have
// been collected.
func (idx *Index[T]) Retrieve(x tensor.Data[T]) ([]int, error) {
	threshold := retrieveThreshold(idx.neuronSize, idx.sparsity)
	order := idx.source.Perm(idx.l)

	seen := make(map[int]struct{})
	for _, t := range order {
		code, err := idx.hashes[t].Encode(x)
		if err != nil {
			return nil, fmt.Errorf("lsh: encoding query for table %d: %w", t, err)
		}
		for _, id := range idx.bucket(t, code) {
			seen[id] = struct{}{}
		}
		if len(seen) >= threshold {
			break
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}

func (idx *Index[T]) bucket(table int, code uint64) []int {
	key := memoKey{table: table, code: code}
	if ids, ok := idx.memo.Get(key); ok {
		return ids
	}
	ids := idx.tables[table][code]
	if ids != nil {
		idx.memo.Add(key, ids)
	}
	return ids
}

func retrieveThreshold(neuronSize int, sparsity float64) int {
	t := int(math.Floor(float64(neuronSize) * sparsity))
	if t < 1 {
		t = 1
	}
	return t
}
