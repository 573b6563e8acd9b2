//go:build tinygo

// Package mmio provides the 32-bit memory-mapped register type used by the
// peripheral blocks. On TinyGo it is runtime/volatile.Register32; on a host
// it is an atomic stand-in with the same methods so register logic can be
// tested against plain memory.
package mmio

import "runtime/volatile"

type Register32 = volatile.Register32
