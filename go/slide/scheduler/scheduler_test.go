package scheduler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConstantFrequencyTickPattern is S6: ConstantFrequency(2) over six
// calls fires F, T, F, T, F, T.
func TestConstantFrequencyTickPattern(t *testing.T) {
	s, err := NewConstantFrequency(2)
	require.NoError(t, err)

	want := []bool{false, true, false, true, false, true}
	for i, w := range want {
		assert.Equal(t, w, s.Tick(), "call %d", i+1)
	}
}

func TestConstantFrequencyEveryNthCall(t *testing.T) {
	s, err := NewConstantFrequency(3)
	require.NoError(t, err)

	fires := 0
	for i := 0; i < 30; i++ {
		if s.Tick() {
			fires++
		}
	}
	assert.Equal(t, 10, fires)
}

func TestConstantFrequencyRejectsZero(t *testing.T) {
	_, err := NewConstantFrequency(0)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExponentialDecayGrowsPeriodOnFire(t *testing.T) {
	s, err := NewExponentialDecay(2, 1)
	require.NoError(t, err)

	assert.False(t, s.Tick())
	assert.True(t, s.Tick())

	assert.Equal(t, uint64(0), s.counter)
	assert.InDelta(t, 2*2.718281828, s.period, 1e-3)
}

func TestExponentialDecayRejectsInvalidParams(t *testing.T) {
	_, err := NewExponentialDecay(0, 1)
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewExponentialDecay(1, math.NaN())
	require.ErrorIs(t, err, ErrInvalidPeriod)
}
