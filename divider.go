package irtim

import "errors"

// MaxRegister is the largest value the 16-bit prescaler and reload
// registers hold.
const MaxRegister = 0xFFFF

var (
	errZeroFrequency = errors.New("frequency must be positive")
	errTooFast       = errors.New("target frequency exceeds input clock")
)

// Divider is the two-stage setting of a hardware counter: the input clock is
// divided by Prescaler+1 and then by Reload+1.
type Divider struct {
	Prescaler uint16
	Reload    uint16
}

// Divide returns the Divider that brings input closest to target without
// overflowing the 16-bit registers. A single 16-bit stage cannot span a
// multi-MHz clock down to a carrier in the tens of kHz, so the prescaler
// takes the coarse part and the reload the fine part.
func Divide(input, target Hertz) (Divider, error) {
	if input == 0 || target == 0 {
		return Divider{}, &ConfigError{Op: "divide", Err: errZeroFrequency}
	}
	ratio := uint64(input / target)
	if ratio == 0 {
		return Divider{}, &ConfigError{Op: "divide", Err: errTooFast}
	}

	// ceil(ratio / 65536) - 1
	psc := (ratio+MaxRegister)/(MaxRegister+1) - 1
	steps := ratio / (psc + 1)
	if steps == 0 || psc > MaxRegister {
		return Divider{}, &ConfigError{Op: "divide", Err: errTooFast}
	}
	return Divider{Prescaler: uint16(psc), Reload: uint16(steps - 1)}, nil
}

// Period is the number of input clock cycles per output cycle.
func (d Divider) Period() uint64 {
	return (uint64(d.Prescaler) + 1) * (uint64(d.Reload) + 1)
}

// Frequency is the effective output frequency for the given input clock.
func (d Divider) Frequency(input Hertz) Hertz {
	return Hertz(uint64(input) / d.Period())
}
