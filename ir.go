// Package irtim drives an infrared remote carrier from a hardware timer and
// feeds it from a tick-driven protocol encoder.
package irtim

import "time"

const (
	// Freq38Khz is the most commonly used frequency for IR remotes
	Freq38Khz Hertz = 38000
)

// Hertz is a frequency in cycles per second.
type Hertz uint32

// TimePair encodes two durations used to encode an on-off amount of time.
// The first is carrier on (mark), the second carrier off (space).
type TimePair [2]time.Duration

// FrameMarshaller defines an interface for marshalling data to slice of TimePairs
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// FrameAppender appends the TimePairs of a frame to dst and returns the
// extended slice. Implementations must not retain dst. When dst has enough
// capacity no allocation happens, which makes it safe to call from an
// interrupt handler.
type FrameAppender interface {
	AppendFrame(dst []TimePair) []TimePair
}

// Frame is a command that can be staged by a Sender and inspected.
type Frame interface {
	FrameAppender
	FrameMarshaller
}

// Carrier is the PWM surface of a carrier generator. Duty values range from
// 0 to MaxDuty; nothing is validated beyond the register width.
type Carrier interface {
	Enable()
	Disable()
	Duty() uint32
	SetDuty(duty uint32)
	MaxDuty() uint32
}

// Duration is the total time taken by pairs.
func Duration(pairs []TimePair) time.Duration {
	var d time.Duration
	for _, p := range pairs {
		d += p[0] + p[1]
	}
	return d
}
