// Package network implements Network: the ordered
// Input/Dense.../Output layer chain, a shared optimizer, and a shared
// rehash scheduler, running batch-parallel forward and backward passes.
// The parallel-for-over-batch-index pattern is grounded on the
// goroutine-per-unit-of-work plus sync.WaitGroup style of
// _examples/muchq-MoonBase/go/neuro/examples/mnist_cnn_parallel_optimized.go's worker pool, scaled
// down to one goroutine per batch slot (every index need only be visited
// exactly once; nothing stronger than that is required).
// Construction and rehash events are logged with log/slog, tagged with a
// github.com/google/uuid per-network run id so concurrent training runs
// stay distinguishable in shared log output, the way
// _examples/muchq-MoonBase/go/games_ws_backend/hub.go tags each websocket
// connection with its own uuid.
package network

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sparsecore/slide/go/slide/activations"
	"github.com/sparsecore/slide/go/slide/hash"
	"github.com/sparsecore/slide/go/slide/initializers"
	"github.com/sparsecore/slide/go/slide/layer"
	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/optimizer"
	"github.com/sparsecore/slide/go/slide/randsource"
	"github.com/sparsecore/slide/go/slide/scheduler"
	"github.com/sparsecore/slide/go/slide/tensor"
)

// Config collects every Network construction parameter.
// Activation, Initializer, L1/L2, and Sparsity fall back to their
// documented defaults (ReLU, Constant(0), 0, 0.5) when left zero-valued.
type Config[T numeric.Float] struct {
	InputSize      int
	HiddenUnits    []int
	L              int
	HashFactory    hash.Factory[T]
	Optimizer      optimizer.Optimizer[T]
	RehashSchedule scheduler.Scheduler
	Activation     activations.Activation[T]
	Initializer    initializers.Initializer[T]
	L1, L2         T
	Sparsity       float64
	Source         randsource.Source
	Logger         *slog.Logger
}

// Network is the top-level training surface: an ordered layer chain plus
// the optimizer and scheduler every Dense layer shares.
type Network[T numeric.Float] struct {
	id        uuid.UUID
	layers    []layer.Layer[T]
	optimizer optimizer.Optimizer[T]
	schedule  scheduler.Scheduler
	outputDim int
	logger    *slog.Logger
}

// New builds [InputLayer(InputSize), DenseLayer(prev, u)... , OutputLayer]
// per cfg, binding every layer into the network's own arena.
func New[T numeric.Float](cfg Config[T]) (*Network[T], error) {
	if cfg.L <= 0 {
		return nil, fmt.Errorf("network: L must be positive, got %d", cfg.L)
	}
	activation := cfg.Activation
	if activation == nil {
		activation = activations.ReLU[T]{}
	}
	init := cfg.Initializer
	if init == nil {
		init = initializers.Constant[T]{Value: 0}
	}
	sparsity := cfg.Sparsity
	if sparsity == 0 {
		sparsity = 0.5
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	logger = logger.With(slog.String("run_id", id.String()))

	n := &Network[T]{
		id:        id,
		optimizer: cfg.Optimizer,
		schedule:  cfg.RehashSchedule,
		logger:    logger,
	}

	layers := make([]layer.Layer[T], 0, len(cfg.HiddenUnits)+2)
	layers = append(layers, layer.NewInputLayer[T](cfg.InputSize))

	prevUnits := cfg.InputSize
	for _, units := range cfg.HiddenUnits {
		dense, err := layer.NewDenseLayer[T](
			prevUnits, units, activation, cfg.L, cfg.HashFactory,
			cfg.Optimizer, init, cfg.L1, cfg.L2, sparsity, cfg.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("network: constructing dense layer over %d units: %w", units, err)
		}
		layers = append(layers, dense)
		prevUnits = units
	}
	layers = append(layers, layer.NewOutputLayer[T](prevUnits))

	for i, l := range layers {
		l.Bind(i, n)
	}
	n.layers = layers
	n.outputDim = prevUnits

	logger.Debug("network constructed", slog.Int("layers", len(layers)), slog.Int("output_dim", prevUnits))
	return n, nil
}

// ID returns the network's run id.
func (n *Network[T]) ID() uuid.UUID { return n.id }

// LayerAt satisfies layer.Owner, resolving a layer's neighbors by arena
// index.
func (n *Network[T]) LayerAt(idx int) layer.Layer[T] {
	if idx < 0 || idx >= len(n.layers) {
		return nil
	}
	return n.layers[idx]
}

// Forward runs a full forward pass over a batch, one goroutine per batch
// slot. It does not mutate any parameter.
func (n *Network[T]) Forward(x tensor.BatchView[T]) (*tensor.BatchData[T], error) {
	batchSize := x.BatchSize()
	for _, l := range n.layers {
		l.Reset(batchSize)
	}

	out := tensor.NewBatchData[T](n.outputDim, batchSize)
	front := n.layers[0]

	var wg sync.WaitGroup
	wg.Add(batchSize)
	for i := 0; i < batchSize; i++ {
		go func(i int) {
			defer wg.Done()
			row := front.Forward(i, x.Row(i))
			out.SetRow(i, row)
		}(i)
	}
	wg.Wait()

	return out, nil
}

// Backward runs a full backward pass over a batch of output-gradient rows,
// then applies one optimizer step and, if the rehash scheduler fires,
// rebuilds every Dense layer's LSH index. It must be
// called with the same batch size as the most recent Forward.
func (n *Network[T]) Backward(dLdy tensor.BatchView[T]) error {
	batchSize := dLdy.BatchSize()
	back := n.layers[len(n.layers)-1]

	var wg sync.WaitGroup
	wg.Add(batchSize)
	for i := 0; i < batchSize; i++ {
		go func(i int) {
			defer wg.Done()
			back.Backward(i, dLdy.Row(i))
		}(i)
	}
	wg.Wait()

	n.optimizer.Step()
	isRehash := n.schedule.Tick()
	if isRehash {
		n.logger.Debug("rehashing", slog.Int("num_layers", len(n.layers)))
	}

	errs := make([]error, len(n.layers))
	var uwg sync.WaitGroup
	uwg.Add(len(n.layers))
	for i, l := range n.layers {
		go func(i int, l layer.Layer[T]) {
			defer uwg.Done()
			errs[i] = l.Update(isRehash)
		}(i, l)
	}
	uwg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("network: layer update failed: %w", err)
		}
	}
	return nil
}
