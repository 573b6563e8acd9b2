package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sparques/irtim/internal/config"
	"github.com/sparques/irtim/internal/sim"
)

var (
	runOpts = struct {
		config   string
		protocol string
		addr     uint8
		cmd      uint8
		repeat   bool
		presses  []int
		ticks    int
		spans    bool
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the transmitter against simulated registers",
		Long: "Wire the sample timer, carrier timer, button line and sender as the firmware " +
			"does, press the button at the configured ticks and measure the emitted carrier " +
			"against the nominal frame.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if runOpts.config != "" {
				var err error
				if cfg, err = config.Load(runOpts.config); err != nil {
					return fmt.Errorf("load config: %w", err)
				}
			}
			flags := cmd.Flags()
			if flags.Changed("protocol") {
				cfg.Protocol = runOpts.protocol
			}
			if flags.Changed("addr") {
				cfg.Command.Addr = runOpts.addr
			}
			if flags.Changed("cmd") {
				cfg.Command.Cmd = runOpts.cmd
			}
			if flags.Changed("repeat") {
				cfg.Command.Repeat = runOpts.repeat
			}
			if flags.Changed("presses") {
				cfg.Presses = runOpts.presses
			}
			if flags.Changed("ticks") {
				cfg.Ticks = runOpts.ticks
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := sim.Run(cfg, log)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), res, runOpts.spans)
		},
	}
)

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runOpts.config, "config", "c", "", "YAML config file")
	f.StringVar(&runOpts.protocol, "protocol", "", "protocol of the command (nec, samsung)")
	f.Uint8Var(&runOpts.addr, "addr", 0, "command address")
	f.Uint8Var(&runOpts.cmd, "cmd", 0, "command code")
	f.BoolVar(&runOpts.repeat, "repeat", false, "append an NEC repeat code")
	f.IntSliceVar(&runOpts.presses, "presses", nil, "ticks at which the button is pressed")
	f.IntVar(&runOpts.ticks, "ticks", 0, "ticks to run, 0 runs until the last frame ends")
	f.BoolVar(&runOpts.spans, "spans", false, "print every carrier span")
}

func report(w io.Writer, res sim.Result, spans bool) error {
	fmt.Fprintf(w, "carrier %d Hz (prescaler %d, reload %d), sample rate %d Hz\n",
		res.Carrier, res.CarrierDiv.Prescaler, res.CarrierDiv.Reload, res.SampleRate)
	fmt.Fprintf(w, "%d ticks, %d presses, %d rejected\n", res.Ticks, res.Fired, res.Rejected)

	for i, tx := range res.Transmissions {
		fmt.Fprintf(w, "transmission %d: ticks %d..%d, %d spans\n", i, tx.Start, tx.End, len(tx.Spans))
		if spans {
			for _, s := range tx.Spans {
				state := "space"
				if s.On {
					state = "mark"
				}
				fmt.Fprintf(w, "  %-5s %d\n", state, s.Ticks)
			}
		}
		errs, err := sim.TimingErrors(tx, res.Frame, res.SampleRate)
		if err != nil {
			return fmt.Errorf("transmission %d: %w", i, err)
		}
		sum := sim.Summarize(errs)
		fmt.Fprintf(w, "  timing error: mean %.2f us, stddev %.2f us, max %.2f us\n",
			sum.Mean, sum.StdDev, sum.MaxAbs)
	}
	return nil
}
