// Package sim runs the transmitter against simulated STM32G0 registers and
// measures the carrier waveform it produces.
package sim

import "github.com/sparques/irtim"

// Span is a stretch of ticks with the carrier either emitting or silent.
type Span struct {
	On    bool
	Ticks uint64
}

// Transmission is everything emitted between Enable and Disable.
type Transmission struct {
	Start, End uint64
	Spans      []Span
}

// Probe wraps a Carrier and records when it actually emits: enabled with a
// nonzero duty. Time is counted in ticks advanced by the caller.
type Probe struct {
	irtim.Carrier

	now     uint64
	edge    uint64
	enabled bool
	on      bool
	cur     *Transmission
	done    []Transmission
}

func NewProbe(c irtim.Carrier) *Probe {
	return &Probe{Carrier: c}
}

// Advance moves time forward by one tick.
func (p *Probe) Advance() { p.now++ }

// Now is the current tick.
func (p *Probe) Now() uint64 { return p.now }

func (p *Probe) Enable() {
	p.Carrier.Enable()
	if !p.enabled {
		p.enabled = true
		p.cur = &Transmission{Start: p.now}
		p.edge = p.now
	}
	p.update()
}

func (p *Probe) Disable() {
	p.Carrier.Disable()
	if !p.enabled {
		return
	}
	p.enabled = false
	p.update()
	if p.now > p.edge {
		p.cur.Spans = append(p.cur.Spans, Span{On: p.on, Ticks: p.now - p.edge})
	}
	p.cur.End = p.now
	p.done = append(p.done, *p.cur)
	p.cur = nil
}

func (p *Probe) SetDuty(duty uint32) {
	p.Carrier.SetDuty(duty)
	p.update()
}

func (p *Probe) update() {
	on := p.enabled && p.Carrier.Duty() > 0
	if on == p.on {
		return
	}
	if p.cur != nil && p.now > p.edge {
		p.cur.Spans = append(p.cur.Spans, Span{On: p.on, Ticks: p.now - p.edge})
	}
	p.on = on
	p.edge = p.now
}

// Emitting reports whether the carrier is on right now.
func (p *Probe) Emitting() bool { return p.on }

// Transmissions returns the completed transmissions.
func (p *Probe) Transmissions() []Transmission { return p.done }
