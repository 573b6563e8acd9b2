package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/internal/config"
	"github.com/sparques/irtim/irq"
	"github.com/sparques/irtim/stm32g0"
)

const buttonPin = 13

var (
	tickTask   = irq.Task{Name: "TIM15", Priority: 2, IRQ: stm32g0.IRQ_TIM15}
	buttonTask = irq.Task{Name: "EXTI4_15", Priority: 1, IRQ: stm32g0.IRQ_EXTI4_15}
)

// Result of a simulated run.
type Result struct {
	Carrier       irtim.Hertz
	CarrierDiv    irtim.Divider
	SampleRate    irtim.Hertz
	Ticks         uint32
	Fired         uint32
	Rejected      uint32
	Frame         []irtim.TimePair
	Transmissions []Transmission
}

// Run wires the transmitter as the firmware does, over simulated
// registers, and plays cfg's button presses against the sample clock.
func Run(cfg config.Config, log *slog.Logger) (Result, error) {
	p := stm32g0.Simulate(stm32g0.Clocks{Timer: irtim.Hertz(cfg.ClockHz)})
	tim15, exti := p.TIM15, p.EXTI

	timer, err := stm32g0.NewSampleTimer(p, irtim.Hertz(cfg.SampleRateHz))
	if err != nil {
		return Result{}, fmt.Errorf("sample timer: %w", err)
	}
	tx, err := stm32g0.NewIrTransmitter(p, irtim.Hertz(cfg.CarrierHz), stm32g0.NewTIM16Envelope(p), stm32g0.NewIrOutPB9(p))
	if err != nil {
		return Result{}, fmt.Errorf("ir transmitter: %w", err)
	}
	button, err := stm32g0.ListenFalling(p, stm32g0.PortC, buttonPin)
	if err != nil {
		return Result{}, fmt.Errorf("button: %w", err)
	}
	log.Info("transmitter ready",
		slog.Any("carrier_hz", tx.Frequency()),
		slog.Any("prescaler", tx.Divider().Prescaler),
		slog.Any("reload", tx.Divider().Reload),
		slog.Any("sample_hz", timer.Rate()))

	probe := NewProbe(tx)
	sender := irtim.NewSender(probe, timer.Rate())
	frame := cfg.Frame()
	shared := irq.Share[irtim.Encoder]("transmitter", sender, new(irq.MutexGuard), tickTask, buttonTask)
	sampler := irtim.NewSampleScheduler(tickTask, shared, timer)
	trigger := irtim.NewCommandTrigger(buttonTask, shared, button, frame)

	presses := append([]int(nil), cfg.Presses...)
	sort.Ints(presses)
	ticks := cfg.Ticks
	if ticks == 0 {
		last := 0
		if len(presses) > 0 {
			last = presses[len(presses)-1]
		}
		ticks = last + frameSamples(sender, frame) + 2
	}

	next := 0
	for i := 0; i < ticks; i++ {
		for next < len(presses) && presses[next] == i {
			next++
			exti.FPR1.SetBits(1 << buttonPin)
			err := trigger.Fire()
			switch {
			case errors.Is(err, irtim.ErrBusy):
				log.Warn("button ignored, transmission in progress", slog.Int("tick", i))
			case err != nil:
				return Result{}, fmt.Errorf("tick %d: load: %w", i, err)
			default:
				log.Debug("command loaded", slog.Int("tick", i))
			}
		}

		tim15.SR.SetBits(stm32g0.TIM_SR_UIF)
		sampler.Fire()
		if timer.Pending() {
			return Result{}, fmt.Errorf("tick %d: sample interrupt left pending", i)
		}
		probe.Advance()
	}

	res := Result{
		Carrier:       tx.Frequency(),
		CarrierDiv:    tx.Divider(),
		SampleRate:    timer.Rate(),
		Ticks:         sampler.Ticks(),
		Fired:         trigger.Fired(),
		Rejected:      trigger.Rejected(),
		Frame:         frame.MarshalFrame(),
		Transmissions: probe.Transmissions(),
	}
	for _, t := range res.Transmissions {
		log.Info("transmission",
			slog.Uint64("start", t.Start),
			slog.Uint64("end", t.End),
			slog.Int("spans", len(t.Spans)))
	}
	return res, nil
}

func frameSamples(s *irtim.Sender, f irtim.FrameMarshaller) int {
	n := 0
	for _, p := range f.MarshalFrame() {
		n += int(s.Samples(p[0]) + s.Samples(p[1]))
	}
	return n
}
