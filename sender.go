package irtim

import "time"

// MaxFramePairs is the longest frame, in TimePairs, a Sender stages.
const MaxFramePairs = 128

// State of a Sender.
type State uint8

const (
	Idle State = iota
	Transmitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transmitting:
		return "transmitting"
	}
	return "unknown"
}

// Encoder is advanced one sample at a time and loaded with frames to send.
type Encoder interface {
	Tick()
	Load(FrameAppender) error
}

// Sender is an Encoder that gates a Carrier at a fixed sample rate. Each
// Tick consumes one sample of the loaded frame: during marks the carrier
// duty is half of MaxDuty, during spaces it is zero.
//
// A Sender is not safe for concurrent use; share it through irq.Shared.
type Sender struct {
	carrier Carrier
	rate    Hertz
	mark    uint32
	state   State

	pairs   [MaxFramePairs]TimePair
	samples [2 * MaxFramePairs]uint32
	end     int // one past the last non-empty half
	cur     int
	left    uint32
}

// NewSender returns an idle Sender ticking at rate.
func NewSender(carrier Carrier, rate Hertz) *Sender {
	return &Sender{
		carrier: carrier,
		rate:    rate,
		mark:    carrier.MaxDuty() / 2,
	}
}

// State reports whether a frame is being sent.
func (s *Sender) State() State { return s.state }

// Rate is the sample rate Tick is expected to be called at.
func (s *Sender) Rate() Hertz { return s.rate }

// Samples converts d to a whole number of sample ticks, rounding to nearest.
func (s *Sender) Samples(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32((uint64(d)*uint64(s.rate) + uint64(time.Second)/2) / uint64(time.Second))
}

// Load stages f for transmission starting with the next Tick. It fails
// with ErrBusy, leaving the current transmission untouched, unless the
// Sender is idle. A frame with no samples is accepted and sends nothing.
func (s *Sender) Load(f FrameAppender) error {
	if s.state == Transmitting {
		return ErrBusy
	}
	pairs := f.AppendFrame(s.pairs[:0])
	if len(pairs) > MaxFramePairs {
		return ErrFrameTooLong
	}

	end := 0
	for i, p := range pairs {
		on, off := s.Samples(p[0]), s.Samples(p[1])
		s.samples[2*i] = on
		s.samples[2*i+1] = off
		if on > 0 {
			end = 2*i + 1
		}
		if off > 0 {
			end = 2*i + 2
		}
	}
	if end == 0 {
		return nil
	}

	s.end = end
	s.cur = -1
	s.left = 0
	s.carrier.SetDuty(0)
	s.carrier.Enable()
	s.state = Transmitting
	return nil
}

// Tick advances the frame by one sample. It does nothing when idle. The
// carrier state set by a tick holds until the next one, so the Sender
// returns to idle on the tick after the last sample of the frame.
func (s *Sender) Tick() {
	if s.state != Transmitting {
		return
	}
	if s.left == 0 {
		if s.cur == s.end-1 {
			s.carrier.SetDuty(0)
			s.carrier.Disable()
			s.state = Idle
			return
		}
		// samples[end-1] is never zero, so this stops in range
		s.cur++
		for s.samples[s.cur] == 0 {
			s.cur++
		}
		s.left = s.samples[s.cur]
		if s.cur%2 == 0 {
			s.carrier.SetDuty(s.mark)
		} else {
			s.carrier.SetDuty(0)
		}
	}
	s.left--
}
