// nec implements NEC framing for the irtim Sender.
//
// A frame is a 9ms/4.5ms leader, 32 bits sent LSB first (address, inverted
// address, command, inverted command) and a trailing mark. Every bit starts
// with a 562.5us mark; the space that follows is 562.5us for a zero and
// 1687.5us for a one.
//
// ## Example
//
//	var strobe = nec.Command{Addr: 0, Cmd: 15}
//
//	// from the button interrupt
//	err := sender.Load(&strobe)
package nec

import (
	"time"

	"github.com/sparques/irtim"
)

const (
	unit = 562500 * time.Nanosecond

	// Period is the time from the start of a frame to the start of its
	// repeat code.
	Period = 108 * time.Millisecond
)

var (
	LeadPair   = irtim.TimePair{16 * unit, 8 * unit}
	ZeroPair   = irtim.TimePair{unit, unit}
	OnePair    = irtim.TimePair{unit, 3 * unit}
	RepeatPair = irtim.TimePair{16 * unit, 4 * unit}
	TrailPair  = irtim.TimePair{unit, 0}
)

// Command is a standard (8-bit address) NEC command.
type Command struct {
	Addr uint8
	Cmd  uint8
	// Repeat follows the frame with one repeat code, as a held button does.
	Repeat bool
}

// Raw is the 32-bit word sent on the air, LSB first.
func (c Command) Raw() uint32 {
	return uint32(c.Addr) | uint32(^c.Addr)<<8 | uint32(c.Cmd)<<16 | uint32(^c.Cmd)<<24
}

// AppendFrame implements irtim.FrameAppender. It appends 34 pairs, or 36
// with Repeat set.
func (c Command) AppendFrame(dst []irtim.TimePair) []irtim.TimePair {
	start := len(dst)
	dst = append(dst, LeadPair)
	raw := c.Raw()
	for bit := 0; bit < 32; bit++ {
		if (raw>>bit)&1 == 1 {
			dst = append(dst, OnePair)
		} else {
			dst = append(dst, ZeroPair)
		}
	}
	if !c.Repeat {
		return append(dst, TrailPair)
	}

	// the repeat code starts one Period after the leader
	elapsed := irtim.Duration(dst[start:]) + unit
	dst = append(dst, irtim.TimePair{unit, Period - elapsed})
	return append(dst, RepeatPair, TrailPair)
}

// MarshalFrame implements irtim.FrameMarshaller.
func (c Command) MarshalFrame() []irtim.TimePair {
	return c.AppendFrame(make([]irtim.TimePair, 0, 36))
}

// Duration is the time the frame takes on the air.
func (c Command) Duration() time.Duration {
	var buf [36]irtim.TimePair
	return irtim.Duration(c.AppendFrame(buf[:0]))
}
