//go:build tinygo && cortexm

package irq

import (
	"device/arm"
	"runtime/interrupt"
)

// PriorityBits is the number of NVIC priority bits implemented by the core.
// Cortex-M0+ parts implement two.
const PriorityBits = 2

// NVICPriority maps p to the NVIC priority byte, where lower is more urgent.
func NVICPriority(p Priority) uint8 {
	levels := Priority(1) << PriorityBits
	if p >= levels {
		p = levels - 1
	}
	return uint8(levels-1-p) << (8 - PriorityBits)
}

// NVICGuard raises a task to a ceiling by disabling the NVIC lines of the
// tasks that could preempt it. Cortex-M0+ has no BASEPRI, so the ceiling is
// built from per-line masks. An edge that arrives while masked stays pending
// and is taken after Lower.
type NVICGuard struct {
	masked uint32
}

func (g *NVICGuard) Raise(from Priority, users []Task) State {
	var lines uint32
	for _, u := range users {
		if u.Priority > from && u.IRQ >= 0 && u.IRQ < 32 {
			lines |= 1 << uint(u.IRQ)
		}
	}
	// don't claim lines an outer section already holds
	lines &^= g.masked
	if lines == 0 {
		return 0
	}
	for irq := uint32(0); irq < 32; irq++ {
		if lines&(1<<irq) != 0 {
			arm.DisableIRQ(irq)
		}
	}
	arm.Asm("dsb 0xF")
	arm.Asm("isb 0xF")
	g.masked |= lines
	return State(lines)
}

func (g *NVICGuard) Lower(st State) {
	lines := uint32(st)
	if lines == 0 {
		return
	}
	g.masked &^= lines
	for irq := uint32(0); irq < 32; irq++ {
		if lines&(1<<irq) != 0 {
			arm.EnableIRQ(irq)
		}
	}
}

// GlobalGuard masks all interrupts when any claimant could preempt the
// caller. It suits tasks that run in thread mode.
type GlobalGuard struct{}

func (GlobalGuard) Raise(from Priority, users []Task) State {
	for _, u := range users {
		if u.Priority > from {
			return State(interrupt.Disable())<<1 | 1
		}
	}
	return 0
}

func (GlobalGuard) Lower(st State) {
	if st&1 == 0 {
		return
	}
	interrupt.Restore(interrupt.State(st >> 1))
}
