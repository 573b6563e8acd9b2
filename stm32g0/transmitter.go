package stm32g0

import (
	"fmt"

	"github.com/sparques/irtim"
)

// OutPin routes the IR output to a physical pin.
type OutPin interface {
	Setup() error
}

// Modulator performs the one-time setup of the IR envelope source.
type Modulator interface {
	Setup() error
}

// IrTransmitter is a 50% duty carrier on TIM17 channel 1, ready to be gated
// by an encoder through its PWM surface. It owns TIM17, the output pin and
// the modulator for the rest of the program.
type IrTransmitter struct {
	CarrierTimer
	div  irtim.Divider
	freq irtim.Hertz
	pin  OutPin
	mod  Modulator
}

// NewIrTransmitter claims TIM17 from p and starts it at freq. No transmitter
// is returned on error, and TIM17 is stopped and gated off again.
func NewIrTransmitter(p *Peripherals, freq irtim.Hertz, mod Modulator, pin OutPin) (*IrTransmitter, error) {
	tim, err := takeTIM(&p.TIM17)
	if err != nil {
		return nil, &irtim.ConfigError{Op: "take TIM17", Err: err}
	}

	p.RCC.enableAPB2(RCC_APB2_TIM17)

	div, err := irtim.Divide(p.Clocks.Timer, freq)
	if err != nil {
		p.RCC.APBENR2.ClearBits(RCC_APB2_TIM17)
		return nil, err
	}
	tim.PSC.Set(uint32(div.Prescaler))
	tim.ARR.Set(uint32(div.Reload))
	tim.CCR1.Set(uint32(div.Reload) / 2)
	// latch the prescaler now instead of at the first overflow
	tim.EGR.Set(TIM_EGR_UG)
	tim.SR.Set(0)
	tim.BDTR.SetBits(TIM_BDTR_MOE)

	tim.CR1.SetBits(TIM_CR1_CEN)

	tx := &IrTransmitter{
		CarrierTimer: CarrierTimer{tim: tim},
		div:          div,
		freq:         div.Frequency(p.Clocks.Timer),
		pin:          pin,
		mod:          mod,
	}
	if err := pin.Setup(); err != nil {
		tx.stop(p.RCC)
		return nil, &irtim.ConfigError{Op: "ir out pin", Err: err}
	}
	if err := mod.Setup(); err != nil {
		tx.stop(p.RCC)
		return nil, &irtim.ConfigError{Op: "ir modulator", Err: err}
	}
	return tx, nil
}

func (tx *IrTransmitter) stop(rcc *RCC) {
	tx.tim.CR1.ClearBits(TIM_CR1_CEN)
	rcc.APBENR2.ClearBits(RCC_APB2_TIM17)
}

// Divider is the prescaler and reload pair programmed into TIM17.
func (tx *IrTransmitter) Divider() irtim.Divider { return tx.div }

// Frequency is the effective carrier frequency.
func (tx *IrTransmitter) Frequency() irtim.Hertz { return tx.freq }

// IrOutPB9 routes IR_OUT to PB9 (alternate function 0).
type IrOutPB9 struct {
	rcc  *RCC
	gpio *GPIO
}

const irOutPin = 9

func NewIrOutPB9(p *Peripherals) IrOutPB9 {
	return IrOutPB9{rcc: p.RCC, gpio: p.GPIOB}
}

func (o IrOutPB9) Setup() error {
	if o.gpio == nil {
		return ErrTaken
	}
	o.rcc.IOPENR.SetBits(1 << PortB)
	o.gpio.OTYPER.ClearBits(1 << irOutPin)
	o.gpio.OSPEEDR.ReplaceBits(0b11, 0b11, irOutPin*2)
	o.gpio.AFR[irOutPin/8].ReplaceBits(0, 0xF, (irOutPin%8)*4)
	setMode(o.gpio, irOutPin, ModeAlternate)
	return nil
}

// Unrouted is an output pin with no known IR_OUT binding. Its Setup always
// fails, so a transmitter is never built on a pin that can't emit.
type Unrouted struct {
	Name string
}

func (u Unrouted) Setup() error {
	return fmt.Errorf("%s: no IR_OUT alternate function: %w", u.Name, irtim.ErrUnsupported)
}

// TIM16Envelope makes TIM16 the IR envelope source and holds its output
// active, leaving all gating to the carrier duty.
type TIM16Envelope struct {
	tim    *TIM
	rcc    *RCC
	syscfg *SYSCFG
}

// NewTIM16Envelope claims TIM16 from p. If TIM16 is already taken, Setup
// reports it.
func NewTIM16Envelope(p *Peripherals) *TIM16Envelope {
	tim, _ := takeTIM(&p.TIM16)
	return &TIM16Envelope{tim: tim, rcc: p.RCC, syscfg: p.SYSCFG}
}

func (m *TIM16Envelope) Setup() error {
	if m.tim == nil {
		return ErrTaken
	}
	m.rcc.APBENR2.SetBits(RCC_APB2_SYSCFG)
	m.rcc.enableAPB2(RCC_APB2_TIM16)

	m.syscfg.CFGR1.ReplaceBits(IRModTIM16, SYSCFG_CFGR1_IR_MOD_Msk, SYSCFG_CFGR1_IR_MOD_Pos)
	m.syscfg.CFGR1.ClearBits(SYSCFG_CFGR1_IR_POL)

	m.tim.CCMR1.ReplaceBits(OCMForceActive, TIM_CCMR1_OC1M_Msk, TIM_CCMR1_OC1M_Pos)
	m.tim.CCER.SetBits(TIM_CCER_CC1E)
	m.tim.BDTR.SetBits(TIM_BDTR_MOE)
	return nil
}
