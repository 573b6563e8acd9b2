// samsung implements Samsung32 framing for the irtim Sender.
package samsung

import (
	"time"

	"github.com/sparques/irtim"
)

var (
	StartPair = irtim.TimePair{4500 * time.Microsecond, 4500 * time.Microsecond}
	ZeroPair  = irtim.TimePair{560 * time.Microsecond, 560 * time.Microsecond}
	OnePair   = irtim.TimePair{560 * time.Microsecond, 1690 * time.Microsecond}
	StopPair  = irtim.TimePair{560 * time.Microsecond, 0}
)

type Frame struct {
	Addr uint8
	Cmd  uint8
}

// Raw is the 32-bit word sent on the air, LSB first: the address twice,
// then the command and its inverse.
func (f Frame) Raw() uint32 {
	return uint32(f.Addr) | uint32(f.Addr)<<8 | uint32(f.Cmd)<<16 | uint32(^f.Cmd)<<24
}

// AppendFrame implements irtim.FrameAppender.
func (f Frame) AppendFrame(dst []irtim.TimePair) []irtim.TimePair {
	// start of frame
	dst = append(dst, StartPair)

	buf := f.Raw()
	for bit := 0; bit < 32; bit++ {
		if (buf>>bit)&1 == 1 {
			dst = append(dst, OnePair)
		} else {
			dst = append(dst, ZeroPair)
		}
	}

	return append(dst, StopPair)
}

func (f Frame) MarshalFrame() []irtim.TimePair {
	return f.AppendFrame(make([]irtim.TimePair, 0, 34))
}
