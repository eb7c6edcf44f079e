// Package cmd wires the qnetsim command-line interface: run for single
// M/M/c-style models, network for YAML-described topologies and study for
// parameter sweeps.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	seed     uint64
)

var rootCmd = &cobra.Command{
	Use:   "qnetsim",
	Short: "Discrete-event simulator for open queueing networks",
	Long: `qnetsim runs stochastic discrete-event simulations of open queueing
networks: sources feeding multi-server processes with optional impatience,
capacity bounds, batching and priorities, routed by rate, condition or
client type, and drained by disposes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level %q: %v", logLevel, err)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "random seed")
}
