package numeric

import "unsafe"

// asUint32Ptr and asUint64Ptr reinterpret a *float32/*float64 as the
// unsigned integer of matching width so AddFloat/SwapFloat can drive
// sync/atomic's integer CAS over the IEEE-754 bits in place. The pointer
// never escapes the caller's own field (a Parameter's grad), so this is
// sound for as long as that field stays put, which update()'s contract
// already guarantees.
func asUint32Ptr(p *float32) unsafe.Pointer {
	return unsafe.Pointer(p)
}

func asUint64Ptr(p *float64) unsafe.Pointer {
	return unsafe.Pointer(p)
}
