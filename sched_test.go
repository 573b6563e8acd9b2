package irtim_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/irq"
	"github.com/sparques/irtim/nec"
)

var (
	tickTask   = irq.Task{Name: "TIM15", Priority: 2, IRQ: 20}
	buttonTask = irq.Task{Name: "EXTI4_15", Priority: 1, IRQ: 7}
	strobe     = nec.Command{Addr: 0, Cmd: 15}
)

type countingAck struct {
	n atomic.Int32
}

func (a *countingAck) Ack() { a.n.Add(1) }

func share(enc irtim.Encoder) *irq.Shared[irtim.Encoder] {
	return irq.Share[irtim.Encoder]("transmitter", enc, new(irq.MutexGuard), tickTask, buttonTask)
}

func TestSampleSchedulerAcksEveryTick(t *testing.T) {
	s := irtim.NewSender(&fakeCarrier{max: 420}, 20_000)
	ack := new(countingAck)
	sched := irtim.NewSampleScheduler(tickTask, share(s), ack)
	for i := 0; i < 50; i++ {
		sched.Fire()
	}
	if got := ack.n.Load(); got != 50 {
		t.Fatalf("acks=%d want 50", got)
	}
	if got := sched.Ticks(); got != 50 {
		t.Fatalf("Ticks()=%d want 50", got)
	}
}

func TestCommandTriggerReportsBusy(t *testing.T) {
	s := irtim.NewSender(&fakeCarrier{max: 420}, 20_000)
	enc := share(s)
	ack := new(countingAck)
	trig := irtim.NewCommandTrigger(buttonTask, enc, ack, &strobe)

	if err := trig.Fire(); err != nil {
		t.Fatalf("first Fire() error: %v", err)
	}
	if s.State() != irtim.Transmitting {
		t.Fatalf("state=%s want transmitting", s.State())
	}
	if err := trig.Fire(); !errors.Is(err, irtim.ErrBusy) {
		t.Fatalf("second Fire() error=%v want ErrBusy", err)
	}
	if got := ack.n.Load(); got != 2 {
		t.Fatalf("acks=%d want 2", got)
	}
	if trig.Fired() != 2 || trig.Rejected() != 1 {
		t.Fatalf("Fired()=%d Rejected()=%d want 2, 1", trig.Fired(), trig.Rejected())
	}
}

type panickyEncoder struct{}

func (panickyEncoder) Tick() { panic("tick") }
func (panickyEncoder) Load(irtim.FrameAppender) error { panic("load") }

func TestHandlersAckOnPanic(t *testing.T) {
	enc := share(panickyEncoder{})
	ack := new(countingAck)
	sched := irtim.NewSampleScheduler(tickTask, enc, ack)
	trig := irtim.NewCommandTrigger(buttonTask, enc, ack, &strobe)

	func() {
		defer func() { recover() }()
		sched.Fire()
	}()
	func() {
		defer func() { recover() }()
		trig.Fire()
	}()
	if got := ack.n.Load(); got != 2 {
		t.Fatalf("acks=%d want 2", got)
	}

	// the guard was released by the panicking handlers
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() { recover() }()
		sched.Fire()
	}()
	<-done
}

// tornCarrier stores the duty in two halves written separately, so an
// unsynchronized reader can catch it between the writes.
type tornCarrier struct {
	hi, lo  uint32
	enabled bool
}

func (c *tornCarrier) Enable()  { c.enabled = true }
func (c *tornCarrier) Disable() { c.enabled = false }
func (c *tornCarrier) Duty() uint32 {
	return c.hi<<16 | c.lo
}
func (c *tornCarrier) SetDuty(duty uint32) {
	c.hi = duty >> 16
	runtime.Gosched()
	c.lo = duty & 0xFFFF
}

// every duty the Sender writes (0 and MaxDuty/2) has equal halves
func (c *tornCarrier) MaxDuty() uint32 { return 0x00040004 }

type checkingEncoder struct {
	*irtim.Sender
	c    *tornCarrier
	torn *atomic.Int32
}

func (e checkingEncoder) check() {
	if d := e.c.Duty(); d>>16 != d&0xFFFF {
		e.torn.Add(1)
	}
}

func (e checkingEncoder) Tick() {
	e.check()
	e.Sender.Tick()
}

func (e checkingEncoder) Load(f irtim.FrameAppender) error {
	e.check()
	return e.Sender.Load(f)
}

func TestConcurrentHandlersNeverTearDuty(t *testing.T) {
	c := new(tornCarrier)
	torn := new(atomic.Int32)
	enc := share(checkingEncoder{Sender: irtim.NewSender(c, 20_000), c: c, torn: torn})
	sched := irtim.NewSampleScheduler(tickTask, enc, new(countingAck))
	trig := irtim.NewCommandTrigger(buttonTask, enc, new(countingAck), &strobe)

	const ticks, edges = 20000, 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < ticks; i++ {
			sched.Fire()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < edges; i++ {
			trig.Fire()
			runtime.Gosched()
		}
	}()
	wg.Wait()

	if n := torn.Load(); n != 0 {
		t.Fatalf("observed %d torn duty values", n)
	}
	if sched.Ticks() != ticks || trig.Fired() != edges {
		t.Fatalf("Ticks()=%d Fired()=%d want %d, %d", sched.Ticks(), trig.Fired(), ticks, edges)
	}
	if trig.Rejected() >= edges {
		t.Fatalf("every load rejected")
	}
}
