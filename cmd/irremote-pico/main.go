//go:build tinygo && rp2040

// Command irremote-pico sends NEC {addr 0, cmd 15} from a PWM carrier on
// GP15 whenever GP14 is pulled low.
package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/irq"
	"github.com/sparques/irtim/nec"
	"github.com/sparques/irtim/pico"
)

const (
	irPin      = machine.GP15
	buttonPin  = machine.GP14
	sampleRate = 20_000
)

var (
	// the sample loop runs in thread mode; the pin callback preempts it
	tickTask   = irq.Task{Name: "sampler", Priority: 0, IRQ: irq.NoIRQ}
	buttonTask = irq.Task{Name: "button", Priority: 1, IRQ: irq.NoIRQ}

	strobe = nec.Command{Addr: 0, Cmd: 15}
)

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	carrier, err := pico.NewCarrier(irPin, irtim.Freq38Khz)
	if err != nil {
		printErrForever(logger, "configure carrier", slog.Any("reason", err))
	}

	sender := irtim.NewSender(carrier, sampleRate)
	shared := irq.Share[irtim.Encoder]("transmitter", sender, irq.GlobalGuard{}, tickTask, buttonTask)
	// the runtime clears the pin and timer flags itself
	noAck := irtim.AckFunc(func() {})
	sampler := irtim.NewSampleScheduler(tickTask, shared, noAck)
	trigger := irtim.NewCommandTrigger(buttonTask, shared, noAck, &strobe)

	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err = buttonPin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		trigger.Fire()
	})
	if err != nil {
		printErrForever(logger, "configure button", slog.Any("reason", err))
	}

	logger.Info("transmitter ready",
		slog.Any("max_duty", carrier.MaxDuty()),
		slog.Any("sample_hz", sender.Rate()))

	var rejected uint32
	ticker := time.NewTicker(time.Second / sampleRate)
	for range ticker.C {
		sampler.Fire()
		if n := trigger.Rejected(); n != rejected {
			rejected = n
			logger.Warn("button ignored, transmission in progress", slog.Any("rejected", rejected))
		}
	}
}

func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
