package sim

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/sparques/irtim"
)

// Summary describes a set of errors.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	MaxAbs float64
}

func Summarize(x []float64) Summary {
	s := Summary{N: len(x)}
	if len(x) == 0 {
		return s
	}
	s.Mean = stat.Mean(x, nil)
	if len(x) > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}
	for _, v := range x {
		s.MaxAbs = math.Max(s.MaxAbs, math.Abs(v))
	}
	return s
}

// TimingErrors returns, per nonzero half of frame, how many microseconds the
// emitted span is longer than nominal. The transmission must contain
// exactly the frame.
func TimingErrors(tx Transmission, frame []irtim.TimePair, rate irtim.Hertz) ([]float64, error) {
	var nominal []Span
	var durations []time.Duration
	for _, p := range frame {
		for i, d := range p {
			if d > 0 {
				nominal = append(nominal, Span{On: i == 0})
				durations = append(durations, d)
			}
		}
	}
	if len(nominal) != len(tx.Spans) {
		return nil, fmt.Errorf("emitted %d spans, frame has %d", len(tx.Spans), len(nominal))
	}

	errs := make([]float64, len(nominal))
	for i, s := range tx.Spans {
		if s.On != nominal[i].On {
			return nil, fmt.Errorf("span %d: carrier on=%v, frame wants on=%v", i, s.On, nominal[i].On)
		}
		emitted := time.Duration(s.Ticks) * time.Second / time.Duration(rate)
		errs[i] = float64(emitted-durations[i]) / float64(time.Microsecond)
	}
	return errs, nil
}

// DividerPoint is the outcome of dividing a clock down to one target.
type DividerPoint struct {
	Target    irtim.Hertz
	Divider   irtim.Divider
	Effective irtim.Hertz
	// ErrorPPM is the relative error of the effective frequency.
	ErrorPPM float64
}

func Divide(clock, target irtim.Hertz) (DividerPoint, error) {
	d, err := irtim.Divide(clock, target)
	if err != nil {
		return DividerPoint{}, err
	}
	// exact effective frequency, before the integer truncation Frequency does
	exact := float64(clock) / float64(d.Period())
	return DividerPoint{
		Target:    target,
		Divider:   d,
		Effective: d.Frequency(clock),
		ErrorPPM:  (exact - float64(target)) / float64(target) * 1e6,
	}, nil
}

// Sweep divides clock down to every target from lo to hi in steps of step
// and summarizes the relative errors.
func Sweep(clock, lo, hi, step irtim.Hertz) ([]DividerPoint, Summary, error) {
	if step == 0 || lo == 0 || hi < lo {
		return nil, Summary{}, fmt.Errorf("invalid sweep %d:%d:%d", lo, hi, step)
	}
	var points []DividerPoint
	var ppm []float64
	for f := uint64(lo); f <= uint64(hi); f += uint64(step) {
		pt, err := Divide(clock, irtim.Hertz(f))
		if err != nil {
			return nil, Summary{}, fmt.Errorf("%d Hz: %w", f, err)
		}
		points = append(points, pt)
		ppm = append(ppm, pt.ErrorPPM)
	}
	return points, Summarize(ppm), nil
}
