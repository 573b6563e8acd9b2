package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sparques/irtim"
	"github.com/sparques/irtim/internal/sim"
)

var (
	dividerOpts = struct {
		clock uint
		freqs []uint
		sweep string
	}{}

	dividerCmd = &cobra.Command{
		Use:   "divider",
		Short: "Compute prescaler and reload for target frequencies",
		Long: "Compute the prescaler and reload that divide the timer clock down to each " +
			"target frequency, and report the effective frequency and its error. With " +
			"--sweep, summarize the error over a range of targets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := irtim.Hertz(dividerOpts.clock)
			out := cmd.OutOrStdout()

			if dividerOpts.sweep != "" {
				lo, hi, step, err := parseSweep(dividerOpts.sweep)
				if err != nil {
					return err
				}
				points, sum, err := sim.Sweep(clock, lo, hi, step)
				if err != nil {
					return err
				}
				printPoints(out, points)
				fmt.Fprintf(out, "%d targets: mean error %.1f ppm, stddev %.1f ppm, max %.1f ppm\n",
					sum.N, sum.Mean, sum.StdDev, sum.MaxAbs)
				return nil
			}

			if len(dividerOpts.freqs) == 0 {
				return fmt.Errorf("no frequency given, use --freq or --sweep")
			}
			points := make([]sim.DividerPoint, 0, len(dividerOpts.freqs))
			for _, f := range dividerOpts.freqs {
				pt, err := sim.Divide(clock, irtim.Hertz(f))
				if err != nil {
					return fmt.Errorf("%d Hz: %w", f, err)
				}
				points = append(points, pt)
			}
			printPoints(out, points)
			return nil
		},
	}
)

func init() {
	dividerCmd.Flags().UintVar(&dividerOpts.clock, "clock", 16_000_000, "timer input clock in Hz")
	dividerCmd.Flags().UintSliceVar(&dividerOpts.freqs, "freq", nil, "target frequencies in Hz")
	dividerCmd.Flags().StringVar(&dividerOpts.sweep, "sweep", "", "range of targets as lo:hi:step in Hz")
}

func printPoints(w io.Writer, points []sim.DividerPoint) {
	fmt.Fprintf(w, "%10s %9s %7s %10s %10s\n", "target", "prescaler", "reload", "effective", "error ppm")
	for _, pt := range points {
		fmt.Fprintf(w, "%10d %9d %7d %10d %10.1f\n",
			pt.Target, pt.Divider.Prescaler, pt.Divider.Reload, pt.Effective, pt.ErrorPPM)
	}
}

func parseSweep(s string) (lo, hi, step irtim.Hertz, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("sweep %q: want lo:hi:step", s)
	}
	var v [3]irtim.Hertz
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("sweep %q: %w", s, err)
		}
		v[i] = irtim.Hertz(n)
	}
	return v[0], v[1], v[2], nil
}
