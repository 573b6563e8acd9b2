package stm32g0

// CarrierTimer is the PWM surface of timer channel 1. Every call is a
// single register access that takes effect on the next counter cycle.
type CarrierTimer struct {
	tim *TIM
}

// Enable routes the comparator to the output in PWM mode 1 with CCR1
// preload.
func (c *CarrierTimer) Enable() {
	c.tim.CCMR1.ReplaceBits(OCMPWM1, TIM_CCMR1_OC1M_Msk, TIM_CCMR1_OC1M_Pos)
	c.tim.CCMR1.SetBits(TIM_CCMR1_OC1PE)
	c.tim.CCER.SetBits(TIM_CCER_CC1E)
}

// Disable silences the output. The counter keeps running.
func (c *CarrierTimer) Disable() {
	c.tim.CCER.ClearBits(TIM_CCER_CC1E)
}

func (c *CarrierTimer) Duty() uint32 {
	return c.tim.CCR1.Get()
}

func (c *CarrierTimer) SetDuty(duty uint32) {
	c.tim.CCR1.Set(duty)
}

// MaxDuty is the reload value: a duty of MaxDuty keeps the output on for the
// whole cycle but one count.
func (c *CarrierTimer) MaxDuty() uint32 {
	return c.tim.ARR.Get()
}

// Enabled reports whether the output is routed.
func (c *CarrierTimer) Enabled() bool {
	return c.tim.CCER.HasBits(TIM_CCER_CC1E)
}
