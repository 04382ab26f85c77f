package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagConfig  string
	flagNodes   string
	flagReport  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:     "nodestatus",
	Short:   "Health status checker for speed-test nodes",
	Long:    "nodestatus probes every node in a JSON node list (ICMP, TCP, HTTP, 8-way concurrent GET) and writes a markdown health report.",
	Version: Version,

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&flagNodes, "nodes", "", "node list file (json)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug tracing of each probe's internals")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
