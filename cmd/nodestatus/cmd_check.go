package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alice39s/aqua-speed-status/internal/config"
	"github.com/alice39s/aqua-speed-status/internal/logging"
	"github.com/alice39s/aqua-speed-status/internal/nodes"
	"github.com/alice39s/aqua-speed-status/internal/probe"
	"github.com/alice39s/aqua-speed-status/internal/report"
	"github.com/alice39s/aqua-speed-status/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check [nodeID...]",
	Short: "Probe all nodes (or the given IDs) and write the markdown report",
	RunE:  runCheckCmd,
}

func init() {
	checkCmd.Flags().StringVar(&flagReport, "report", "", "report output file (markdown)")
	rootCmd.AddCommand(checkCmd)
}

var (
	tagInfo    = color.New(color.FgBlue).Sprint("[INFO]")
	tagSuccess = color.New(color.FgGreen).Sprint("[SUCCESS]")
	tagWarning = color.New(color.FgYellow).Sprint("[WARNING]")
	tagError   = color.New(color.FgRed).Sprint("[ERROR]")
)

func logInfo(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", tagInfo, fmt.Sprintf(format, a...))
}

func logSuccess(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", tagSuccess, fmt.Sprintf(format, a...))
}

func logWarning(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", tagWarning, fmt.Sprintf(format, a...))
}

func logError(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", tagError, fmt.Sprintf(format, a...))
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagNodes != "" {
		cfg.NodesFile = flagNodes
	}
	if flagReport != "" {
		cfg.ReportFile = flagReport
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logInfo("Node Health Status Checker - Aqua Speed Tools")
	logInfo("Node list: %s", cfg.NodesFile)
	logInfo("Report file: %s", cfg.ReportFile)

	if err := probe.CheckDependencies(); err != nil {
		logError("%v", err)
		return err
	}

	list, err := nodes.Load(cfg.NodesFile)
	if err != nil {
		logError("%v", err)
		return err
	}
	if len(args) > 0 {
		if list, err = nodes.Filter(list, args); err != nil {
			logError("%v", err)
			return err
		}
	}
	logSuccess("Successfully loaded %d nodes", len(list))

	w, err := report.NewWriter(cfg.ReportFile, cfg.NodesFile, time.Now())
	if err != nil {
		return err
	}

	logInfo("Starting node health status checks...")
	r := runner.New(logger, cfg.NodeTimeout)
	sum, err := r.Run(cmd.Context(), list, w)
	if err != nil {
		return err
	}
	if err := w.Finish(sum); err != nil {
		return err
	}

	logSuccess("Node health check completed!")
	logInfo("Total nodes: %d", sum.Nodes)
	logInfo("Total tests: %d, Passed: %d, Failed: %d", sum.Total, sum.Passed, sum.Failed())
	logInfo("Success rate: %d%%", sum.Rate())

	switch sum.Tier() {
	case report.TierHealthy:
		logSuccess("Overall health status: HEALTHY 🟢")
	case report.TierWarning:
		logWarning("Overall health status: WARNING 🟡")
	default:
		logError("Overall health status: CRITICAL 🔴")
	}
	logInfo("Report saved to: %s", cfg.ReportFile)

	// Unhealthy nodes are a report concern, not an exit-code concern.
	return nil
}
