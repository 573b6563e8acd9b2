// Command irsim exercises the IR transmitter on the host: it computes timer
// dividers and runs the firmware wiring against simulated STM32G0 registers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "irsim:", err)
		os.Exit(1)
	}
}
