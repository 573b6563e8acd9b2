//go:build !tinygo

// Package mmio provides the 32-bit memory-mapped register type used by the
// peripheral blocks. On TinyGo it is runtime/volatile.Register32; on a host
// it is an atomic stand-in with the same methods so register logic can be
// tested against plain memory.
package mmio

import "sync/atomic"

// Register32 is a 32-bit register. The read-modify-write helpers are not
// atomic as a whole, exactly like the hardware they model.
type Register32 struct {
	Reg uint32
}

func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

func (r *Register32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

func (r *Register32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

func (r *Register32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value > 0
}

// ReplaceBits replaces the bits selected by mask at pos with value.
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | value<<pos)
}
