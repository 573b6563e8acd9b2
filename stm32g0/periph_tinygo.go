//go:build tinygo

package stm32g0

import "unsafe"

var taken bool

// Take maps the register blocks over the hardware. It succeeds once.
func Take(clocks Clocks) (*Peripherals, error) {
	if taken {
		return nil, ErrTaken
	}
	taken = true
	return &Peripherals{
		RCC:    (*RCC)(unsafe.Pointer(uintptr(RCCBase))),
		SYSCFG: (*SYSCFG)(unsafe.Pointer(uintptr(SYSCFGBase))),
		EXTI:   (*EXTI)(unsafe.Pointer(uintptr(EXTIBase))),
		GPIOA:  (*GPIO)(unsafe.Pointer(uintptr(GPIOABase))),
		GPIOB:  (*GPIO)(unsafe.Pointer(uintptr(GPIOBBase))),
		GPIOC:  (*GPIO)(unsafe.Pointer(uintptr(GPIOCBase))),
		TIM15:  (*TIM)(unsafe.Pointer(uintptr(TIM15Base))),
		TIM16:  (*TIM)(unsafe.Pointer(uintptr(TIM16Base))),
		TIM17:  (*TIM)(unsafe.Pointer(uintptr(TIM17Base))),
		Clocks: clocks,
	}, nil
}
