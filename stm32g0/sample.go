package stm32g0

import "github.com/sparques/irtim"

// SampleTimer is TIM15 running at a fixed rate with its update interrupt
// enabled. It is the periodic source of a SampleScheduler.
type SampleTimer struct {
	tim  *TIM
	div  irtim.Divider
	rate irtim.Hertz
}

// NewSampleTimer claims TIM15 from p and starts it at rate. The NVIC line
// IRQ_TIM15 is left to the caller.
func NewSampleTimer(p *Peripherals, rate irtim.Hertz) (*SampleTimer, error) {
	tim, err := takeTIM(&p.TIM15)
	if err != nil {
		return nil, &irtim.ConfigError{Op: "take TIM15", Err: err}
	}
	div, err := irtim.Divide(p.Clocks.Timer, rate)
	if err != nil {
		return nil, err
	}

	p.RCC.enableAPB2(RCC_APB2_TIM15)
	tim.PSC.Set(uint32(div.Prescaler))
	tim.ARR.Set(uint32(div.Reload))
	tim.CR1.SetBits(TIM_CR1_ARPE)
	tim.EGR.Set(TIM_EGR_UG)
	tim.SR.Set(0)
	tim.DIER.SetBits(TIM_DIER_UIE)
	tim.CR1.SetBits(TIM_CR1_CEN)

	return &SampleTimer{tim: tim, div: div, rate: div.Frequency(p.Clocks.Timer)}, nil
}

// Ack clears the update flag.
func (t *SampleTimer) Ack() {
	t.tim.SR.ClearBits(TIM_SR_UIF)
}

// Pending reports whether an update is waiting to be acknowledged.
func (t *SampleTimer) Pending() bool {
	return t.tim.SR.HasBits(TIM_SR_UIF)
}

// Rate is the effective tick rate.
func (t *SampleTimer) Rate() irtim.Hertz { return t.rate }

func (t *SampleTimer) Divider() irtim.Divider { return t.div }
