package weight

import (
	"testing"

	"github.com/sparsecore/slide/go/slide/initializers"
	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/sparsecore/slide/go/slide/tensor"
	"github.com/stretchr/testify/assert"
)

// TestS2WeightAffineZeroWeights checks affine evaluation at all-zero weights.
func TestS2WeightAffineZeroWeights(t *testing.T) {
	opt := optimizer.NewSGD[float32](1)
	w := New[float32](1, opt, initializers.Constant[float32]{}, 0, 0)

	assert.Equal(t, []float32{0}, w.Weight().Slice())
	assert.Equal(t, float32(0), w.Bias())
	assert.Equal(t, float32(0), w.Affine(tensor.FromSlice([]float32{0}), []int{0}))
	assert.Equal(t, float32(0), w.Affine(tensor.FromSlice([]float32{0}), nil))
}

// TestS3WeightUpdate checks weight and bias values after one update.
func TestS3WeightUpdate(t *testing.T) {
	opt := optimizer.NewSGD[float32](1)
	w := New[float32](1, opt, initializers.Constant[float32]{}, 0, 0)

	w.AddWeightGrad(0, 0.5)
	w.AddBiasGrad(0.2)
	w.Update()

	assert.Equal(t, []float32{-0.5}, w.Weight().Slice())
	assert.Equal(t, float32(-0.2), w.Bias())
	assert.InDelta(t, -0.7, w.Affine(tensor.FromSlice([]float32{1}), []int{0}), 1e-6)
	assert.InDelta(t, -0.2, w.Affine(tensor.FromSlice([]float32{1}), nil), 1e-6)
}
