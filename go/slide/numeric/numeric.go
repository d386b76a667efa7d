// Package numeric holds the scalar constraint shared by every layer of the
// engine and the atomic primitives gradient accumulation needs on top of it.
package numeric

import (
	"math"
	"sync/atomic"
)

// Float is the scalar type every public surface is parametric over. In
// practice training runs instantiate with float32; float64 is supported for
// callers that need the extra precision.
type Float interface {
	~float32 | ~float64
}

// AddFloat atomically adds delta to *addr and returns the pre-update value,
// the way Parameter.add_grad needs to (concurrent writers, no lost updates).
// sync/atomic has no float add, so this spins a compare-and-swap loop over
// the IEEE-754 bit pattern; correct because float addition here only needs
// to be commutative and associative up to rounding, never globally ordered.
func AddFloat[T Float](addr *T, delta T) T {
	switch p := any(addr).(type) {
	case *float32:
		d := float32(delta)
		bits := (*uint32)(asUint32Ptr(p))
		for {
			old := atomic.LoadUint32(bits)
			oldF := math.Float32frombits(old)
			newF := oldF + d
			if atomic.CompareAndSwapUint32(bits, old, math.Float32bits(newF)) {
				return T(oldF)
			}
		}
	case *float64:
		d := float64(delta)
		bits := (*uint64)(asUint64Ptr(p))
		for {
			old := atomic.LoadUint64(bits)
			oldF := math.Float64frombits(old)
			newF := oldF + d
			if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(newF)) {
				return T(oldF)
			}
		}
	default:
		panic("numeric: unsupported Float instantiation")
	}
}

// SwapFloat atomically stores 0 into *addr and returns the value it held,
// the "read-and-clear" half of Parameter.update().
func SwapFloat[T Float](addr *T) T {
	switch p := any(addr).(type) {
	case *float32:
		bits := (*uint32)(asUint32Ptr(p))
		old := atomic.SwapUint32(bits, 0)
		return T(math.Float32frombits(old))
	case *float64:
		bits := (*uint64)(asUint64Ptr(p))
		old := atomic.SwapUint64(bits, 0)
		return T(math.Float64frombits(old))
	default:
		panic("numeric: unsupported Float instantiation")
	}
}

// Sign returns -1, 0, or 1, matching the sign(value) term in the L1
// regularization deposit (spec: g + sign(value)*L1 + L2*value).
func Sign[T Float](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
