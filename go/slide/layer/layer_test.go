package layer

import (
	"testing"

	"github.com/sparsecore/slide/go/slide/activations"
	"github.com/sparsecore/slide/go/slide/hash"
	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArena is the minimal Owner: a fixed slice of layers addressed by
// index, standing in for network.Network in isolation.
type testArena struct {
	layers []Layer[float32]
}

func (a *testArena) LayerAt(idx int) Layer[float32] {
	if idx < 0 || idx >= len(a.layers) {
		return nil
	}
	return a.layers[idx]
}

// fixedInitializer hands out a fixed sequence of values, one per Next()
// call, so two neurons in the same Dense layer can be seeded with
// distinguishable, non-colliding weight vectors.
type fixedInitializer struct {
	vals []float32
	i    int
}

func (f *fixedInitializer) Next() float32 {
	v := f.vals[f.i]
	f.i++
	return v
}

// buildChain wires Input(2) -> Dense(2 neurons) -> Output(2), with neuron 0
// seeded to weight [2,1] and neuron 1 to [1,2] (both bias 0), so the two
// neurons' WTA codes are guaranteed to differ in every table: whichever of
// x[0], x[1] is larger determines the argmax position, and the two weight
// vectors disagree on that by construction.
func buildChain(t *testing.T, sparsity float64) (*testArena, *InputLayer[float32], *DenseLayer[float32], *OutputLayer[float32]) {
	src := randsource.NewSystemSource(11)
	in := NewInputLayer[float32](2)

	factory := hash.WTAFactory[float32]{BinSize: 4, SampleSize: 2, Source: src}
	sgd := optimizer.NewSGD[float32](1)
	init := &fixedInitializer{vals: []float32{2, 1, 0, 1, 2, 0}}
	dense, err := NewDenseLayer[float32](2, 2, activations.Linear[float32]{}, 3, factory, sgd, init, 0, 0, sparsity, src)
	require.NoError(t, err)

	out := NewOutputLayer[float32](2)

	arena := &testArena{layers: []Layer[float32]{in, dense, out}}
	in.Bind(0, arena)
	dense.Bind(1, arena)
	out.Bind(2, arena)
	return arena, in, dense, out
}

func resetAll(batchSize int, layers ...Layer[float32]) {
	for _, l := range layers {
		l.Reset(batchSize)
	}
}

func TestDenseForwardLeavesInactivePositionsZero(t *testing.T) {
	_, in, dense, out := buildChain(t, 1.0)
	resetAll(1, in, dense, out)

	x := tensor.FromSlice([]float32{5, 3}) // matches neuron 0's ordering, never neuron 1's
	y := in.Forward(0, x)

	require.Equal(t, 2, y.Len())
	assert.Equal(t, []int{0}, dense.ActiveID(0))
	assert.Equal(t, float32(13), y.At(0)) // bias(0) + 2*5 + 1*3
	assert.Equal(t, float32(0), y.At(1))  // neuron 1 never retrieved
}

func TestDenseForwardBackwardUpdateRoundTrip(t *testing.T) {
	_, in, dense, out := buildChain(t, 1.0)
	resetAll(1, in, dense, out)

	x := tensor.FromSlice([]float32{5, 3})
	_ = in.Forward(0, x)

	dLdy := tensor.FromSlice([]float32{1, 1})
	out.Backward(0, dLdy)

	require.NoError(t, dense.Update(false))

	// Only neuron 0 was active, so only its parameters moved; a second
	// forward call over a fresh reset should reflect the update for
	// position 0 and stay untouched (still the original init) at
	// position 1, since neuron 1 received no gradient this round.
	resetAll(1, in, dense, out)
	y := in.Forward(0, x)
	assert.NotEqual(t, float32(13), y.At(0))
}

func TestInputLayerActiveIDIsIdentity(t *testing.T) {
	in := NewInputLayer[float32](3)
	in.Bind(0, &testArena{layers: []Layer[float32]{in}})
	in.Reset(1)
	assert.Equal(t, []int{0, 1, 2}, in.ActiveID(0))
}

func TestOutputLayerForwardIsIdentity(t *testing.T) {
	out := NewOutputLayer[float32](2)
	out.Bind(0, &testArena{layers: []Layer[float32]{out}})
	out.Reset(1)

	x := tensor.FromSlice([]float32{4, 9})
	y := out.Forward(0, x)
	assert.Equal(t, float32(4), y.At(0))
	assert.Equal(t, float32(9), y.At(1))
}

func TestIdentityRange(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, identityRange(3))
	assert.Empty(t, identityRange(0))
}
