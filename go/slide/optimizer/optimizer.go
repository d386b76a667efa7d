// Package optimizer implements a two-object split:
// a shared Optimizer holding hyperparameters and phase counters, and a
// per-parameter Client holding that parameter's own state (Adam's m, v).
// Grounded on _examples/muchq-MoonBase/go/neuro/network/optimizer.go's SGD/Adam, which hold the
// per-layer state in maps keyed by layer; here each Parameter owns its
// Client directly instead, since Parameter (not Layer) is this engine's
// optimizer-state granularity.
package optimizer

import (
	"fmt"
	"math"

	"github.com/sparsecore/slide/go/slide/numeric"
)

// Client carries one parameter's private optimizer state and turns a
// deposited gradient into the delta to add to that parameter's value.
type Client[T numeric.Float] interface {
	Diff(grad T) T
}

// Optimizer is shared across every Parameter in the network. Step advances
// any phase counter (Adam's t) once per batch, called serially by
// Network.backward before the per-layer parameter updates that consume it.
type Optimizer[T numeric.Float] interface {
	NewClient() Client[T]
	Step()
	Name() string
}

// SGD is plain stochastic gradient descent with an optional per-step
// multiplicative learning-rate decay (1 = no decay, the documented
// default).
type SGD[T numeric.Float] struct {
	LR    T
	Decay T
}

// NewSGD constructs an SGD optimizer with decay=1 (no decay).
func NewSGD[T numeric.Float](lr T) *SGD[T] {
	return &SGD[T]{LR: lr, Decay: 1}
}

func (s *SGD[T]) NewClient() Client[T] { return sgdClient[T]{opt: s} }
func (s *SGD[T]) Step()                { s.LR *= s.Decay }
func (s *SGD[T]) Name() string         { return "SGD" }

// String renders the optimizer's current hyperparameters, matching
// original_source/HashDL/optimizer.hh's SGD::to_string format.
func (s *SGD[T]) String() string {
	return fmt.Sprintf("SGD<T>(eta=%v, decay=%v)", s.LR, s.Decay)
}

type sgdClient[T numeric.Float] struct {
	opt *SGD[T]
}

func (c sgdClient[T]) Diff(grad T) T { return -c.opt.LR * grad }

// String renders the client's owning optimizer's hyperparameters, matching
// original_source/HashDL/optimizer.hh's SGDClient::to_string format.
func (c sgdClient[T]) String() string { return c.opt.String() }

// Adam is the standard bias-corrected adaptive moment optimizer.
type Adam[T numeric.Float] struct {
	LR      T
	Beta1   T
	Beta2   T
	Epsilon T
	t       uint64
}

// NewAdam constructs an Adam optimizer with the conventional defaults
// (beta1=0.9, beta2=0.999, epsilon=1e-8).
func NewAdam[T numeric.Float](lr T) *Adam[T] {
	return &Adam[T]{LR: lr, Beta1: 0.9, Beta2: 0.999, Epsilon: 1e-8}
}

func (a *Adam[T]) NewClient() Client[T] { return &adamClient[T]{opt: a} }
func (a *Adam[T]) Step()                { a.t++ }
func (a *Adam[T]) Name() string         { return "Adam" }

// String renders the optimizer's current hyperparameters, matching
// original_source/HashDL/optimizer.hh's Adam::to_string format.
func (a *Adam[T]) String() string {
	return fmt.Sprintf("Adam<T>(eps=%v ,eta=%v ,beta1=%v ,beta2=%v)", a.Epsilon, a.LR, a.Beta1, a.Beta2)
}

type adamClient[T numeric.Float] struct {
	opt  *Adam[T]
	m, v T
}

// String renders the client's owning optimizer's hyperparameters, matching
// original_source/HashDL/optimizer.hh's AdamClient::to_string format.
func (c *adamClient[T]) String() string { return c.opt.String() }

func (c *adamClient[T]) Diff(grad T) T {
	beta1, beta2, eps := c.opt.Beta1, c.opt.Beta2, c.opt.Epsilon
	c.m = beta1*c.m + (1-beta1)*grad
	c.v = beta2*c.v + (1-beta2)*grad*grad

	t := float64(c.opt.t)
	if t == 0 {
		t = 1
	}
	mHat := c.m / T(1-math.Pow(float64(beta1), t))
	vHat := c.v / T(1-math.Pow(float64(beta2), t))

	return -c.opt.LR * mHat / (sqrtT(vHat) + eps)
}

func sqrtT[T numeric.Float](v T) T {
	return T(math.Sqrt(float64(v)))
}
