package stm32g0

import (
	"fmt"

	"github.com/sparques/irtim"
)

// ExtiLine is a GPIO pin routed to an EXTI line that fires on falling
// edges.
type ExtiLine struct {
	exti *EXTI
	line uint8
}

// ListenFalling claims the EXTI block from p, configures port/pin as an
// input and unmasks its falling edge. The NVIC line (IRQ_EXTI4_15 for pins
// 4 to 15) is left to the caller.
func ListenFalling(p *Peripherals, port Port, pin uint8) (*ExtiLine, error) {
	if pin > 15 {
		return nil, &irtim.ConfigError{Op: "listen", Err: fmt.Errorf("pin %d out of range", pin)}
	}
	g := p.GPIO(port)
	if g == nil {
		return nil, &irtim.ConfigError{Op: "listen", Err: fmt.Errorf("port %s: %w", port, irtim.ErrUnsupported)}
	}
	exti := p.EXTI
	if exti == nil {
		return nil, &irtim.ConfigError{Op: "take EXTI", Err: ErrTaken}
	}
	p.EXTI = nil

	p.RCC.IOPENR.SetBits(1 << port)
	setMode(g, pin, ModeInput)

	exti.EXTICR[pin/4].ReplaceBits(uint32(port), 0xFF, (pin%4)*8)
	exti.RTSR1.ClearBits(1 << pin)
	exti.FTSR1.SetBits(1 << pin)
	exti.FPR1.Set(1 << pin)
	exti.IMR1.SetBits(1 << pin)

	return &ExtiLine{exti: exti, line: pin}, nil
}

// Ack clears the falling-edge pending bit. FPR1 is write-one-to-clear, so
// only this line is written.
func (e *ExtiLine) Ack() {
	e.exti.FPR1.Set(1 << e.line)
}

// Line is the EXTI line number, equal to the pin number.
func (e *ExtiLine) Line() uint8 { return e.line }
