package stm32g0

import (
	"errors"

	"github.com/sparques/irtim"
)

// ErrTaken is returned when a peripheral has already been claimed by a
// driver.
var ErrTaken = errors.New("stm32g0: peripheral already taken")

// Clocks is the frequency configuration left by clock tree setup.
type Clocks struct {
	// Timer is the kernel clock of TIM15/16/17 (APB timer clock).
	Timer irtim.Hertz
}

// HSI16 is the reset clock: 16 MHz HSI, no PLL, APB prescaler 1.
var HSI16 = Clocks{Timer: 16_000_000}

// Peripherals holds the register blocks not yet claimed by a driver.
// Drivers move the block they own out of it by setting the field to nil.
type Peripherals struct {
	RCC    *RCC
	SYSCFG *SYSCFG
	EXTI   *EXTI
	GPIOA  *GPIO
	GPIOB  *GPIO
	GPIOC  *GPIO
	TIM15  *TIM
	TIM16  *TIM
	TIM17  *TIM

	Clocks Clocks
}

// Simulate returns peripherals backed by ordinary memory, in reset state.
func Simulate(clocks Clocks) *Peripherals {
	p := &Peripherals{
		RCC:    new(RCC),
		SYSCFG: new(SYSCFG),
		EXTI:   new(EXTI),
		GPIOA:  new(GPIO),
		GPIOB:  new(GPIO),
		GPIOC:  new(GPIO),
		TIM15:  new(TIM),
		TIM16:  new(TIM),
		TIM17:  new(TIM),
		Clocks: clocks,
	}
	// most pins come out of reset in analog mode
	for _, g := range []*GPIO{p.GPIOA, p.GPIOB, p.GPIOC} {
		g.MODER.Set(0xFFFFFFFF)
	}
	return p
}

// GPIO returns the register block of port.
func (p *Peripherals) GPIO(port Port) *GPIO {
	switch port {
	case PortA:
		return p.GPIOA
	case PortB:
		return p.GPIOB
	case PortC:
		return p.GPIOC
	}
	return nil
}

func takeTIM(slot **TIM) (*TIM, error) {
	tim := *slot
	if tim == nil {
		return nil, ErrTaken
	}
	*slot = nil
	return tim, nil
}

// enableAPB2 ungates a peripheral clock and pulses its reset line, which
// leaves the peripheral in its power-on state whatever ran before.
func (r *RCC) enableAPB2(bit uint32) {
	r.APBENR2.SetBits(bit)
	r.APBRSTR2.SetBits(bit)
	r.APBRSTR2.ClearBits(bit)
}

// setMode sets the MODER field of pin.
func setMode(g *GPIO, pin uint8, mode uint32) {
	g.MODER.ReplaceBits(mode, 0b11, pin*2)
}
