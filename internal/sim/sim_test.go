package sim

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/internal/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type carrier struct {
	enabled bool
	duty    uint32
}

func (c *carrier) Enable()             { c.enabled = true }
func (c *carrier) Disable()            { c.enabled = false }
func (c *carrier) Duty() uint32        { return c.duty }
func (c *carrier) SetDuty(duty uint32) { c.duty = duty }
func (c *carrier) MaxDuty() uint32     { return 100 }

func TestProbeSpans(t *testing.T) {
	p := NewProbe(new(carrier))
	p.Advance()
	p.SetDuty(0)
	p.Enable()
	for _, step := range []struct {
		duty  uint32
		ticks int
	}{
		{50, 3},
		{0, 2},
		{50, 1},
	} {
		p.SetDuty(step.duty)
		for i := 0; i < step.ticks; i++ {
			p.Advance()
		}
	}
	p.SetDuty(0)
	p.Disable()

	txs := p.Transmissions()
	if len(txs) != 1 {
		t.Fatalf("len(Transmissions())=%d want 1", len(txs))
	}
	tx := txs[0]
	want := []Span{{true, 3}, {false, 2}, {true, 1}}
	if tx.Start != 1 || tx.End != 7 || len(tx.Spans) != len(want) {
		t.Fatalf("transmission=%+v want start 1, end 7, spans %v", tx, want)
	}
	for i := range want {
		if tx.Spans[i] != want[i] {
			t.Fatalf("span %d=%+v want %+v", i, tx.Spans[i], want[i])
		}
	}
}

func TestTimingErrors(t *testing.T) {
	tx := Transmission{Spans: []Span{{true, 11}, {false, 34}}}
	frame := []irtim.TimePair{{562500 * time.Nanosecond, 1687500 * time.Nanosecond}}
	errs, err := TimingErrors(tx, frame, 20_000)
	if err != nil {
		t.Fatalf("TimingErrors() error: %v", err)
	}
	if errs[0] != -12.5 || errs[1] != 12.5 {
		t.Fatalf("errors=%v want [-12.5 12.5]", errs)
	}

	if _, err := TimingErrors(Transmission{Spans: []Span{{false, 11}, {true, 34}}}, frame, 20_000); err == nil {
		t.Fatalf("TimingErrors() accepted inverted spans")
	}
	if _, err := TimingErrors(Transmission{}, frame, 20_000); err == nil {
		t.Fatalf("TimingErrors() accepted missing spans")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{-2, 0, 2})
	if s.N != 3 || s.Mean != 0 || s.StdDev != 2 || s.MaxAbs != 2 {
		t.Fatalf("Summarize()=%+v", s)
	}
	if s := Summarize([]float64{5}); s.StdDev != 0 || s.Mean != 5 {
		t.Fatalf("Summarize(single)=%+v", s)
	}
}

func TestSweep(t *testing.T) {
	points, sum, err := Sweep(16_000_000, 36_000, 40_000, 1_000)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if len(points) != 5 || sum.N != 5 {
		t.Fatalf("len(points)=%d N=%d want 5", len(points), sum.N)
	}
	// truncating the ratio can only raise the frequency
	for _, pt := range points {
		if pt.ErrorPPM < 0 {
			t.Fatalf("%d Hz: error %f ppm below target", pt.Target, pt.ErrorPPM)
		}
	}
	if _, _, err := Sweep(16_000_000, 40_000, 36_000, 1_000); err == nil {
		t.Fatalf("Sweep() accepted an empty range")
	}
}

func TestRunDefault(t *testing.T) {
	res, err := Run(config.Default(), discard)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Carrier != 38_004 || res.SampleRate != 20_000 {
		t.Fatalf("carrier=%d sample=%d want 38004, 20000", res.Carrier, res.SampleRate)
	}
	if res.Fired != 1 || res.Rejected != 0 {
		t.Fatalf("fired=%d rejected=%d want 1, 0", res.Fired, res.Rejected)
	}
	if len(res.Transmissions) != 1 {
		t.Fatalf("transmissions=%d want 1", len(res.Transmissions))
	}
	errs, err := TimingErrors(res.Transmissions[0], res.Frame, res.SampleRate)
	if err != nil {
		t.Fatalf("TimingErrors() error: %v", err)
	}
	// rounding to the nearest sample is off by at most half a sample
	if s := Summarize(errs); s.MaxAbs > 25 || math.IsNaN(s.StdDev) {
		t.Fatalf("timing summary=%+v", s)
	}
}

func TestRunBusyPress(t *testing.T) {
	cfg := config.Default()
	cfg.Presses = []int{0, 100, 2000}
	res, err := Run(cfg, discard)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Fired != 3 || res.Rejected != 1 {
		t.Fatalf("fired=%d rejected=%d want 3, 1", res.Fired, res.Rejected)
	}
	if len(res.Transmissions) != 2 {
		t.Fatalf("transmissions=%d want 2", len(res.Transmissions))
	}
	if res.Transmissions[1].Start != 2000 {
		t.Fatalf("second transmission starts at %d want 2000", res.Transmissions[1].Start)
	}
}
