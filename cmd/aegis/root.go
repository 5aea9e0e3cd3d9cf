package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aegis",
	Short: "Aegis - medical graviton field safety controller",
	Long: `Aegis is a real-time safety controller for medical graviton field
generators. It enforces a biological safety envelope over a live field and
executes a sub-50ms emergency shutdown when the envelope is violated.

It provides:
  - Per-profile field strength and energy density limits
  - Positive energy enforcement (no exotic matter)
  - Continuous safety monitoring at microsecond cadence
  - Verified emergency shutdown with compliance reporting
  - Persistent audit trail for regulatory review`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
