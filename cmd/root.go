// Package cmd wires the Cobra CLI entry point. This layer is
// intentionally thin: it loads a RunConfig, builds the demonstration
// topology, and drives the simulator. Anything resembling a real
// topology file loader belongs outside the core, per the non-goal on
// JSON contact-plan ingestion.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dtnsim",
	Short: "Deterministic discrete-event DTN simulator with contact graph routing",
}

// Execute runs the root command, exiting the process with status 1 on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
