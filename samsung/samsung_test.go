package samsung

import "testing"

func TestFrame(t *testing.T) {
	f := Frame{Addr: 0x07, Cmd: 0x02}
	if got := f.Raw(); got != 0xFD020707 {
		t.Fatalf("Raw()=%#08x want 0xfd020707", got)
	}
	pairs := f.MarshalFrame()
	if len(pairs) != 34 {
		t.Fatalf("len=%d want 34", len(pairs))
	}
	if pairs[0] != StartPair || pairs[33] != StopPair {
		t.Fatalf("framing=%v..%v", pairs[0], pairs[33])
	}
	// LSB of 0x07 is a one, bit 3 a zero
	if pairs[1] != OnePair || pairs[4] != ZeroPair {
		t.Fatalf("bits=%v %v", pairs[1], pairs[4])
	}
}
