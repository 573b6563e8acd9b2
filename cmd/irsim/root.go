package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	rootOpts = struct {
		logLevel string
	}{}

	rootCmd = &cobra.Command{
		Use:           "irsim",
		Short:         "Simulate the timer driven IR transmitter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(dividerCmd, runCmd)
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(rootOpts.logLevel)); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
