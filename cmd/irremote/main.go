//go:build tinygo && cortexm

// Command irremote is the STM32G0 firmware: a falling edge on PC13 sends
// NEC {addr 0, cmd 15} on PB9 with a 38kHz carrier, gated by a 20kHz TIM15
// sample interrupt.
package main

import (
	"device/arm"
	"log/slog"
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/irq"
	"github.com/sparques/irtim/nec"
	"github.com/sparques/irtim/stm32g0"
)

const (
	sampleRate = 20_000
	buttonPin  = 13
)

var (
	tickTask   = irq.Task{Name: "TIM15", Priority: 2, IRQ: stm32g0.IRQ_TIM15}
	buttonTask = irq.Task{Name: "EXTI4_15", Priority: 1, IRQ: stm32g0.IRQ_EXTI4_15}

	strobe = nec.Command{Addr: 0, Cmd: 15}

	sampler *irtim.SampleScheduler
	trigger *irtim.CommandTrigger
)

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	p, err := stm32g0.Take(stm32g0.HSI16)
	if err != nil {
		printErrForever(logger, "take peripherals", slog.Any("reason", err))
	}
	timer, err := stm32g0.NewSampleTimer(p, sampleRate)
	if err != nil {
		printErrForever(logger, "configure TIM15", slog.Any("reason", err))
	}
	tx, err := stm32g0.NewIrTransmitter(p, irtim.Freq38Khz, stm32g0.NewTIM16Envelope(p), stm32g0.NewIrOutPB9(p))
	if err != nil {
		printErrForever(logger, "configure TIM17", slog.Any("reason", err))
	}
	button, err := stm32g0.ListenFalling(p, stm32g0.PortC, buttonPin)
	if err != nil {
		printErrForever(logger, "configure EXTI13", slog.Any("reason", err))
	}

	sender := irtim.NewSender(tx, timer.Rate())
	shared := irq.Share[irtim.Encoder]("transmitter", sender, &irq.NVICGuard{}, tickTask, buttonTask)
	sampler = irtim.NewSampleScheduler(tickTask, shared, timer)
	trigger = irtim.NewCommandTrigger(buttonTask, shared, button, &strobe)

	tick := interrupt.New(stm32g0.IRQ_TIM15, func(interrupt.Interrupt) {
		sampler.Fire()
	})
	tick.SetPriority(irq.NVICPriority(tickTask.Priority))
	press := interrupt.New(stm32g0.IRQ_EXTI4_15, func(interrupt.Interrupt) {
		// ErrBusy is counted by the trigger
		trigger.Fire()
	})
	press.SetPriority(irq.NVICPriority(buttonTask.Priority))
	tick.Enable()
	press.Enable()

	logger.Info("transmitter ready",
		slog.Any("carrier_hz", tx.Frequency()),
		slog.Any("prescaler", tx.Divider().Prescaler),
		slog.Any("reload", tx.Divider().Reload),
		slog.Any("sample_hz", timer.Rate()))

	var fired, rejected uint32
	for {
		arm.Asm("wfi")
		if n := trigger.Fired(); n != fired {
			fired = n
			logger.Info("button", slog.Any("presses", fired))
		}
		if n := trigger.Rejected(); n != rejected {
			rejected = n
			logger.Warn("button ignored, transmission in progress", slog.Any("rejected", rejected))
		}
	}
}

// printErrForever logs msg once a second and never returns.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
