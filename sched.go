package irtim

import (
	"sync/atomic"

	"github.com/sparques/irtim/irq"
)

// Acknowledger clears the pending flag of an interrupt source. A handler
// that returns without acknowledging is entered again immediately.
type Acknowledger interface {
	Ack()
}

// AckFunc adapts a function to Acknowledger. On platforms where the runtime
// already acknowledges the source, use an empty AckFunc.
type AckFunc func()

func (f AckFunc) Ack() { f() }

// SampleScheduler advances a shared Encoder by one sample per periodic
// interrupt.
type SampleScheduler struct {
	task  irq.Task
	enc   *irq.Shared[Encoder]
	flag  Acknowledger
	ticks atomic.Uint32
}

// NewSampleScheduler binds task to enc; flag is the periodic source.
func NewSampleScheduler(task irq.Task, enc *irq.Shared[Encoder], flag Acknowledger) *SampleScheduler {
	return &SampleScheduler{task: task, enc: enc, flag: flag}
}

// Fire is the body of the periodic interrupt handler.
func (s *SampleScheduler) Fire() {
	defer s.flag.Ack()
	s.enc.Lock(s.task, tick)
	s.ticks.Add(1)
}

func tick(e Encoder) error {
	e.Tick()
	return nil
}

// Ticks is the number of times Fire ran.
func (s *SampleScheduler) Ticks() uint32 { return s.ticks.Load() }

// CommandTrigger loads a fixed command into a shared Encoder on each edge.
type CommandTrigger struct {
	task     irq.Task
	enc      *irq.Shared[Encoder]
	flag     Acknowledger
	cmd      FrameAppender
	load     func(Encoder) error
	fired    atomic.Uint32
	rejected atomic.Uint32
}

// NewCommandTrigger binds task to enc; flag is the edge source and cmd the
// frame loaded on every edge.
func NewCommandTrigger(task irq.Task, enc *irq.Shared[Encoder], flag Acknowledger, cmd FrameAppender) *CommandTrigger {
	t := &CommandTrigger{task: task, enc: enc, flag: flag, cmd: cmd}
	// bound once, so Fire does not allocate a method value
	t.load = t.loadCommand
	return t
}

// Fire is the body of the edge interrupt handler. A rejected load is
// counted and returned; it never disturbs the frame already being sent.
func (t *CommandTrigger) Fire() error {
	defer t.flag.Ack()
	t.fired.Add(1)
	err := t.enc.Lock(t.task, t.load)
	if err != nil {
		t.rejected.Add(1)
	}
	return err
}

func (t *CommandTrigger) loadCommand(e Encoder) error {
	return e.Load(t.cmd)
}

// Fired is the number of edges handled.
func (t *CommandTrigger) Fired() uint32 { return t.fired.Load() }

// Rejected is the number of edges whose load failed.
func (t *CommandTrigger) Rejected() uint32 { return t.rejected.Load() }
