// Package stm32g0 binds the IR transmitter to STM32G0 peripherals: TIM17 as
// carrier, TIM16 as envelope, TIM15 as the sample clock and EXTI for the
// trigger button.
//
// Register blocks are plain structs laid out like the hardware. On TinyGo
// Take maps them over the peripheral addresses; elsewhere Simulate backs
// them with ordinary memory.
package stm32g0

import "github.com/sparques/irtim/mmio"

// Peripheral base addresses.
const (
	SYSCFGBase = 0x40010000
	TIM15Base  = 0x40014000
	TIM16Base  = 0x40014400
	TIM17Base  = 0x40014800
	RCCBase    = 0x40021000
	EXTIBase   = 0x40021800
	GPIOABase  = 0x50000000
	GPIOBBase  = 0x50000400
	GPIOCBase  = 0x50000800
)

// Interrupt lines.
const (
	IRQ_EXTI4_15 = 7
	IRQ_TIM15    = 20
	IRQ_TIM16    = 21
	IRQ_TIM17    = 22
)

type RCC struct {
	CR       mmio.Register32
	ICSCR    mmio.Register32
	CFGR     mmio.Register32
	PLLCFGR  mmio.Register32
	_        [2]uint32
	CIER     mmio.Register32
	CIFR     mmio.Register32
	CICR     mmio.Register32
	IOPRSTR  mmio.Register32
	AHBRSTR  mmio.Register32
	APBRSTR1 mmio.Register32
	APBRSTR2 mmio.Register32
	IOPENR   mmio.Register32
	AHBENR   mmio.Register32
	APBENR1  mmio.Register32
	APBENR2  mmio.Register32
}

// APBENR2 / APBRSTR2 bits.
const (
	RCC_APB2_SYSCFG = 1 << 0
	RCC_APB2_TIM15  = 1 << 16
	RCC_APB2_TIM16  = 1 << 17
	RCC_APB2_TIM17  = 1 << 18
)

// TIM is the register block of the general purpose timers TIM15/16/17.
// Only channel 1 is mapped.
type TIM struct {
	CR1   mmio.Register32
	CR2   mmio.Register32
	_     uint32 // SMCR, TIM15 only
	DIER  mmio.Register32
	SR    mmio.Register32
	EGR   mmio.Register32
	CCMR1 mmio.Register32
	_     uint32
	CCER  mmio.Register32
	CNT   mmio.Register32
	PSC   mmio.Register32
	ARR   mmio.Register32
	RCR   mmio.Register32
	CCR1  mmio.Register32
	_     [3]uint32
	BDTR  mmio.Register32
}

const (
	TIM_CR1_CEN   = 1 << 0
	TIM_CR1_ARPE  = 1 << 7
	TIM_DIER_UIE  = 1 << 0
	TIM_SR_UIF    = 1 << 0
	TIM_EGR_UG    = 1 << 0
	TIM_CCER_CC1E = 1 << 0
	TIM_BDTR_MOE  = 1 << 15

	TIM_CCMR1_OC1PE    = 1 << 3
	TIM_CCMR1_OC1M_Pos = 4
	TIM_CCMR1_OC1M_Msk = 0x7

	// output compare modes
	OCMForceActive = 0b101
	OCMPWM1        = 0b110
)

type SYSCFG struct {
	CFGR1 mmio.Register32
}

const (
	SYSCFG_CFGR1_IR_POL     = 1 << 5
	SYSCFG_CFGR1_IR_MOD_Pos = 6
	SYSCFG_CFGR1_IR_MOD_Msk = 0x3

	// IR_MOD envelope sources
	IRModTIM16 = 0b00
)

type EXTI struct {
	RTSR1  mmio.Register32
	FTSR1  mmio.Register32
	SWIER1 mmio.Register32
	RPR1   mmio.Register32
	FPR1   mmio.Register32
	_      [19]uint32
	EXTICR [4]mmio.Register32
	_      [4]uint32
	IMR1   mmio.Register32
	EMR1   mmio.Register32
}

type GPIO struct {
	MODER   mmio.Register32
	OTYPER  mmio.Register32
	OSPEEDR mmio.Register32
	PUPDR   mmio.Register32
	IDR     mmio.Register32
	ODR     mmio.Register32
	BSRR    mmio.Register32
	LCKR    mmio.Register32
	AFR     [2]mmio.Register32
	BRR     mmio.Register32
}

// GPIO MODER values.
const (
	ModeInput     = 0b00
	ModeOutput    = 0b01
	ModeAlternate = 0b10
	ModeAnalog    = 0b11
)

// Port selects a GPIO port. The values match the EXTICR encoding.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
)

func (p Port) String() string {
	return "P" + string(rune('A'+p))
}
