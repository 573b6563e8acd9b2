package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparques/irtim/nec"
	"github.com/sparques/irtim/samsung"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "irsim.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "command:\n  cmd: 15\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ClockHz != 16_000_000 || cfg.CarrierHz != 38_000 || cfg.SampleRateHz != 20_000 {
		t.Fatalf("clocks=%d/%d/%d want 16000000/38000/20000", cfg.ClockHz, cfg.CarrierHz, cfg.SampleRateHz)
	}
	if cfg.Protocol != "nec" {
		t.Fatalf("protocol=%q want nec", cfg.Protocol)
	}
	if len(cfg.Presses) != 1 || cfg.Presses[0] != 0 {
		t.Fatalf("presses=%v want [0]", cfg.Presses)
	}
	if got := cfg.Frame(); got != (nec.Command{Cmd: 15}) {
		t.Fatalf("Frame()=%#v want nec {0 15}", got)
	}
}

func TestLoad_Samsung(t *testing.T) {
	path := writeTempConfig(t, "protocol: samsung\ncommand: {addr: 7, cmd: 2}\npresses: [10, 2000]\nticks: 5000\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.Frame(); got != (samsung.Frame{Addr: 7, Cmd: 2}) {
		t.Fatalf("Frame()=%#v want samsung {7 2}", got)
	}
	if cfg.Ticks != 5000 || len(cfg.Presses) != 2 {
		t.Fatalf("ticks=%d presses=%v", cfg.Ticks, cfg.Presses)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "carrier above clock",
			contents: "clock_hz: 1000\ncarrier_hz: 38000\n",
			want:     "carrier_hz 38000 exceeds clock_hz 1000",
		},
		{
			name:     "sample rate above clock",
			contents: "clock_hz: 100000\nsample_rate_hz: 200000\n",
			want:     "sample_rate_hz 200000 exceeds clock_hz 100000",
		},
		{
			name:     "unknown protocol",
			contents: "protocol: rc5\n",
			want:     `protocol "rc5" must be nec or samsung`,
		},
		{
			name:     "samsung repeat",
			contents: "protocol: samsung\ncommand: {repeat: true}\n",
			want:     "command.repeat is only supported with protocol nec",
		},
		{
			name:     "negative press",
			contents: "presses: [3, -1]\n",
			want:     "presses[1] must be >= 0",
		},
		{
			name:     "negative ticks",
			contents: "ticks: -5\n",
			want:     "ticks must be >= 0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeTempConfig(t, tc.contents))
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}
