package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/nec"
	"github.com/sparques/irtim/samsung"
)

type Config struct {
	ClockHz      uint32        `yaml:"clock_hz"`
	CarrierHz    uint32        `yaml:"carrier_hz"`
	SampleRateHz uint32        `yaml:"sample_rate_hz"`
	Protocol     string        `yaml:"protocol"`
	Command      CommandConfig `yaml:"command"`
	// Presses are the ticks at which the trigger button falls.
	Presses []int `yaml:"presses"`
	// Ticks is the length of the run; 0 runs until the last frame ends.
	Ticks int `yaml:"ticks"`
}

type CommandConfig struct {
	Addr   uint8 `yaml:"addr"`
	Cmd    uint8 `yaml:"cmd"`
	Repeat bool  `yaml:"repeat"`
}

// Default is the example application: NEC {0, 15} at 38kHz, 20kHz samples,
// 16MHz timer clock, one press.
func Default() Config {
	cfg := Config{Command: CommandConfig{Cmd: 15}}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ClockHz == 0 {
		c.ClockHz = 16_000_000
	}
	if c.CarrierHz == 0 {
		c.CarrierHz = uint32(irtim.Freq38Khz)
	}
	if c.SampleRateHz == 0 {
		c.SampleRateHz = 20_000
	}
	if c.Protocol == "" {
		c.Protocol = "nec"
	}
	if c.Presses == nil {
		c.Presses = []int{0}
	}
}

func (c Config) Validate() error {
	if c.CarrierHz > c.ClockHz {
		return fmt.Errorf("carrier_hz %d exceeds clock_hz %d", c.CarrierHz, c.ClockHz)
	}
	if c.SampleRateHz > c.ClockHz {
		return fmt.Errorf("sample_rate_hz %d exceeds clock_hz %d", c.SampleRateHz, c.ClockHz)
	}
	switch c.Protocol {
	case "nec", "samsung":
	default:
		return fmt.Errorf("protocol %q must be nec or samsung", c.Protocol)
	}
	if c.Protocol == "samsung" && c.Command.Repeat {
		return fmt.Errorf("command.repeat is only supported with protocol nec")
	}
	for i, p := range c.Presses {
		if p < 0 {
			return fmt.Errorf("presses[%d] must be >= 0", i)
		}
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be >= 0")
	}
	return nil
}

// Frame is the command the trigger loads.
func (c Config) Frame() irtim.Frame {
	if c.Protocol == "samsung" {
		return samsung.Frame{Addr: c.Command.Addr, Cmd: c.Command.Cmd}
	}
	return nec.Command{Addr: c.Command.Addr, Cmd: c.Command.Cmd, Repeat: c.Command.Repeat}
}
