package param

import (
	"sync"
	"testing"

	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/stretchr/testify/assert"
)

// TestS1SingleParameterSGD drives a single parameter through one SGD step.
func TestS1SingleParameterSGD(t *testing.T) {
	opt := optimizer.NewSGD[float32](1)
	p := New[float32](0, opt, 0, 0)

	p.AddGrad(0.5)
	assert.Equal(t, float32(0), p.Value())

	p.Update()
	assert.Equal(t, float32(-0.5), p.Value())
}

func TestAddGradConcurrentThenUpdate(t *testing.T) {
	opt := optimizer.NewSGD[float32](1)
	p := New[float32](0, opt, 0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.AddGrad(0.002)
		}()
	}
	wg.Wait()
	p.Update()
	assert.InDelta(t, -1.0, p.Value(), 1e-3)
}

func TestL1L2RegularizationAddedAtDeposit(t *testing.T) {
	opt := optimizer.NewSGD[float32](1)
	// value starts at 1: L1 adds sign(1)*L1=0.1, L2 adds L2*value=0.2*1=0.2
	p := New[float32](1, opt, 0.1, 0.2)
	p.AddGrad(0)
	p.Update()
	// diff = -(0 + 0.1 + 0.2) = -0.3, value = 1 - 0.3 = 0.7
	assert.InDelta(t, 0.7, p.Value(), 1e-6)
}
