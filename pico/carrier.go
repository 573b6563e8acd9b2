//go:build tinygo

// Package pico drives the IR carrier from a PWM group on boards where TinyGo
// owns the timers, such as the RP2040.
package pico

import (
	"errors"
	"machine"

	"github.com/sparques/pwm"

	"github.com/sparques/irtim"
)

// Carrier is a PWM channel running at the carrier frequency. Disabling it
// drives the duty to zero; the group keeps counting.
type Carrier struct {
	group   pwm.Group
	ch      uint8
	duty    uint32
	enabled bool
}

// NewCarrier configures pin for PWM at freq. The channel starts disabled
// with a 50% duty staged.
func NewCarrier(pin machine.Pin, freq irtim.Hertz) (*Carrier, error) {
	if freq == 0 {
		return nil, &irtim.ConfigError{Op: "pwm carrier", Err: errors.New("frequency must be positive")}
	}
	pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	group := pwm.Get(pin)
	group.Configure(machine.PWMConfig{Period: uint64(1e9) / uint64(freq)})
	ch, err := group.Channel(pin)
	if err != nil {
		return nil, &irtim.ConfigError{Op: "pwm channel", Err: err}
	}
	group.Set(ch, 0)
	return &Carrier{group: group, ch: ch, duty: group.Top() / 2}, nil
}

func (c *Carrier) Enable() {
	c.enabled = true
	c.group.Set(c.ch, c.duty)
}

func (c *Carrier) Disable() {
	c.enabled = false
	c.group.Set(c.ch, 0)
}

func (c *Carrier) Duty() uint32 { return c.duty }

func (c *Carrier) SetDuty(duty uint32) {
	c.duty = duty
	if c.enabled {
		c.group.Set(c.ch, duty)
	}
}

func (c *Carrier) MaxDuty() uint32 { return c.group.Top() }
