package nec

import (
	"testing"
	"time"

	"github.com/sparques/irtim"
)

func TestCommandRaw(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want uint32
	}{
		{"strobe", Command{Addr: 0, Cmd: 15}, 0xF00FFF00},
		{"all ones", Command{Addr: 0xFF, Cmd: 0xFF}, 0x00FF00FF},
		{"mixed", Command{Addr: 0x5A, Cmd: 0xC3}, 0x3CC3A55A},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Raw(); got != tt.want {
				t.Fatalf("Raw()=%#08x want %#08x", got, tt.want)
			}
		})
	}
}

func TestAppendFrame(t *testing.T) {
	cmd := Command{Addr: 0, Cmd: 15}
	f := cmd.MarshalFrame()
	if len(f) != 34 {
		t.Fatalf("len=%d want 34", len(f))
	}
	if f[0] != LeadPair {
		t.Fatalf("leader=%v want %v", f[0], LeadPair)
	}
	raw := cmd.Raw()
	for bit := 0; bit < 32; bit++ {
		want := ZeroPair
		if (raw>>bit)&1 == 1 {
			want = OnePair
		}
		if f[bit+1] != want {
			t.Fatalf("bit %d=%v want %v", bit, f[bit+1], want)
		}
	}
	if f[33] != TrailPair {
		t.Fatalf("trailer=%v want %v", f[33], TrailPair)
	}

	// 16 ones, 16 zeros
	want := 13500*time.Microsecond + 16*4*unit + 16*2*unit + unit
	if got := cmd.Duration(); got != want {
		t.Fatalf("Duration()=%s want %s", got, want)
	}
}

func TestAppendFrameRepeat(t *testing.T) {
	cmd := Command{Addr: 0, Cmd: 15, Repeat: true}
	f := cmd.MarshalFrame()
	if len(f) != 36 {
		t.Fatalf("len=%d want 36", len(f))
	}
	if got := irtim.Duration(f[:34]); got != Period {
		t.Fatalf("repeat code starts at %s want %s", got, Period)
	}
	if f[34] != RepeatPair || f[35] != TrailPair {
		t.Fatalf("repeat code=%v want %v", f[34:], []irtim.TimePair{RepeatPair, TrailPair})
	}
}

func TestAppendFrameKeepsPrefix(t *testing.T) {
	buf := make([]irtim.TimePair, 1, 64)
	buf[0] = irtim.TimePair{time.Second, time.Second}
	out := Command{Cmd: 1, Repeat: true}.AppendFrame(buf)
	if &out[0] != &buf[0] {
		t.Fatalf("AppendFrame reallocated a buffer with spare capacity")
	}
	if len(out) != 37 || out[0] != buf[0] {
		t.Fatalf("prefix lost: len=%d first=%v", len(out), out[0])
	}
	if got := irtim.Duration(out[1:35]); got != Period {
		t.Fatalf("repeat code starts at %s want %s", got, Period)
	}
}
