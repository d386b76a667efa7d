package randsource

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemSourcePermIsAPermutation(t *testing.T) {
	s := NewSystemSource(1)
	p := s.Perm(10)
	sorted := append([]int(nil), p...)
	sort.Ints(sorted)
	for i, v := range sorted {
		assert.Equal(t, i, v)
	}
}

func TestSystemSourceIntNInRange(t *testing.T) {
	s := NewSystemSource(2)
	for i := 0; i < 100; i++ {
		v := s.IntN(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
}

// TestSystemSourceConcurrentUse exercises the mutex directly: lsh.Index
// calls Perm from every batch-slot goroutine of a forward pass, so a
// shared SystemSource must tolerate that without racing.
func TestSystemSourceConcurrentUse(t *testing.T) {
	s := NewSystemSource(3)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Perm(8)
			s.IntN(8)
		}()
	}
	wg.Wait()
}

func TestFixedSourceReplaysAndCycles(t *testing.T) {
	s := NewFixedSource([][]int{{2, 0, 1}, {1, 0, 2}}, []int{3, 5})

	assert.Equal(t, []int{2, 0, 1}, s.Perm(3))
	assert.Equal(t, []int{1, 0, 2}, s.Perm(3))
	assert.Equal(t, []int{2, 0, 1}, s.Perm(3)) // cycles back to the first

	assert.Equal(t, 0, s.IntN(3)) // 3 mod 3
	assert.Equal(t, 0, s.IntN(5)) // 5 mod 5
	assert.Equal(t, 0, s.IntN(3)) // cycles back to 3, 3 mod 3
}

func TestFixedSourceFallsBackToIdentityOnLengthMismatch(t *testing.T) {
	s := NewFixedSource([][]int{{0, 1}}, nil)
	assert.Equal(t, []int{0, 1, 2}, s.Perm(3)) // fixture has length 2, requested 3
}

func TestFixedSourceEmptyFixturesFallBack(t *testing.T) {
	s := NewFixedSource(nil, nil)
	assert.Equal(t, []int{0, 1, 2, 3}, s.Perm(4))
	assert.Equal(t, 0, s.IntN(9))
}
