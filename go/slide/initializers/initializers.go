// Package initializers supplies the nullary value producers Weight uses to
// seed each Parameter, grounded on _examples/muchq-MoonBase/go/neuro/utils.XavierInit/RandomTensor
// (which fill a *utils.Tensor's backing slice in place) but narrowed to one
// scalar per call: a nullary producer of T.
package initializers

import (
	"math"

	"github.com/sparsecore/slide/go/slide/numeric"
	"github.com/sparsecore/slide/go/slide/randsource"
)

// Initializer produces one fresh scalar per call, used once per Parameter
// at Weight construction time.
type Initializer[T numeric.Float] interface {
	Next() T
}

// Constant always returns the same value; the network's documented default.
type Constant[T numeric.Float] struct {
	Value T
}

func (c Constant[T]) Next() T { return c.Value }

// Uniform draws from [Low, High) using the given Source.
type Uniform[T numeric.Float] struct {
	Low, High T
	Source    randsource.Source
}

func (u Uniform[T]) Next() T {
	span := float64(u.High - u.Low)
	return u.Low + T(span*uniformFloat64(u.Source))
}

// Xavier (Glorot) draws from a uniform range scaled by fan-in/fan-out,
// matching _examples/muchq-MoonBase/go/neuro/utils.XavierInit's bound of sqrt(6/(fanIn+fanOut)).
type Xavier[T numeric.Float] struct {
	FanIn, FanOut int
	Source        randsource.Source
}

func (x Xavier[T]) Next() T {
	bound := math.Sqrt(6.0 / float64(x.FanIn+x.FanOut))
	u := uniformFloat64(x.Source) // [0,1)
	return T(bound * (2*u - 1))   // [-bound, bound)
}

// Gaussian draws from a normal distribution via a Box-Muller transform over
// two uniform draws, matching original_source/HashDL/initializer.hh's
// GaussInitializer (mu, sigma), defaulting to the standard normal when left
// zero-valued.
type Gaussian[T numeric.Float] struct {
	Mean, Stddev T
	Source       randsource.Source
}

func (g Gaussian[T]) Next() T {
	stddev := g.Stddev
	if stddev == 0 {
		stddev = 1
	}
	u1 := uniformFloat64(g.Source)
	u2 := uniformFloat64(g.Source)
	if u1 == 0 {
		u1 = minPositiveFloat64
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return g.Mean + T(z)*stddev
}

// minPositiveFloat64 guards Box-Muller's log(u1) against log(0), which would
// otherwise fire whenever the underlying Source's resolution happens to
// land exactly on zero.
const minPositiveFloat64 = 1e-12

// uniformFloat64 turns a Source's IntN into a [0,1) float, since
// randsource.Source exposes permutations and bounded ints (what hash
// construction needs) rather than a float generator.
func uniformFloat64(s randsource.Source) float64 {
	const resolution = 1 << 24
	return float64(s.IntN(resolution)) / float64(resolution)
}
