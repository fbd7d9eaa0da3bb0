package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ir-pipeline",
	Short: "Driver for the IR type checker, tail-call optimizer and async/await CPS transform",
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "ring", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-output", "", "trace output path for stream/both modes (\"-\" or empty for stderr)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer size when trace-mode includes ring")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
