package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alice39s/aqua-speed-status/internal/nodes"
	"github.com/alice39s/aqua-speed-status/internal/probe"
	"github.com/alice39s/aqua-speed-status/internal/report"
)

// Runner drives a single pass over the node list: one node at a time, four
// ordered probes per node under a hard wall-clock deadline. A node failing
// every probe, or timing out entirely, never aborts the run.
type Runner struct {
	Logger      *zap.Logger
	Checkers    [probe.ProbeCount]probe.Checker
	NodeTimeout time.Duration
}

func New(logger *zap.Logger, nodeTimeout time.Duration) *Runner {
	if nodeTimeout <= 0 {
		nodeTimeout = 60 * time.Second
	}
	return &Runner{
		Logger: logger,
		Checkers: [probe.ProbeCount]probe.Checker{
			probe.ProbeICMP:  probe.NewICMPChecker(),
			probe.ProbeTCP:   probe.NewTCPChecker(),
			probe.ProbeHTTP:  probe.NewHTTPChecker(5 * time.Second),
			probe.ProbeMulti: probe.NewConcurrentChecker(),
		},
		NodeTimeout: nodeTimeout,
	}
}

// Run tests every node sequentially and streams rows into the report
// writer. Only report I/O can fail; probe outcomes cannot.
func (r *Runner) Run(ctx context.Context, list []nodes.Node, w *report.Writer) (report.Summary, error) {
	var sum report.Summary

	for i, n := range list {
		r.Logger.Info("node_check_start",
			zap.Int("index", i+1),
			zap.String("id", n.ID),
			zap.String("url", n.URL),
			zap.String("type", n.Type),
		)

		nr := r.CheckNode(ctx, n)

		passed := nr.Passed()
		r.Logger.Info("node_check_done",
			zap.String("id", n.ID),
			zap.Int("passed", passed),
			zap.Int("total", probe.ProbeCount),
			zap.String("notes", nr.Notes),
		)

		if err := w.Add(nr); err != nil {
			return sum, err
		}
		sum.Nodes++
		sum.Total += probe.ProbeCount
		sum.Passed += passed
	}

	return sum, nil
}

// CheckNode runs the four probes in fixed order under the node deadline.
// The deadline is a fresh context per node, so nothing carries over between
// nodes. On expiry every slot is recorded as Timeout, including probes that
// had already finished, and in-flight work is cancelled through the context.
func (r *Runner) CheckNode(ctx context.Context, n nodes.Node) report.NodeReport {
	ctx, cancel := context.WithTimeout(ctx, r.NodeTimeout)
	defer cancel()

	// Buffered so a late-finishing probe goroutine never leaks.
	done := make(chan [probe.ProbeCount]probe.Result, 1)
	go func() {
		var results [probe.ProbeCount]probe.Result
		for i, c := range r.Checkers {
			results[i] = c.Check(ctx, n.URL)
			r.Logger.Debug("probe_done",
				zap.String("id", n.ID),
				zap.String("probe", results[i].Name),
				zap.String("status", string(results[i].Status)),
				zap.Float64("latency_ms", results[i].LatencyMS),
			)
			if ctx.Err() != nil {
				break
			}
		}
		done <- results
	}()

	select {
	case results := <-done:
		if ctx.Err() == context.DeadlineExceeded {
			return r.timeoutReport(n)
		}
		return report.NodeReport{
			Node:    n,
			Results: results,
			Notes:   report.Notes(results),
		}
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			r.Logger.Warn("node_check_timeout",
				zap.String("id", n.ID),
				zap.Duration("timeout", r.NodeTimeout),
			)
			return r.timeoutReport(n)
		}
		// Run-level cancellation (signal); report it the same way.
		return r.timeoutReport(n)
	}
}

// timeoutReport synthesizes the uniform all-Timeout row: four Timeout slots
// and a single diagnostic, contributing zero passes.
func (r *Runner) timeoutReport(n nodes.Node) report.NodeReport {
	msg := fmt.Sprintf("Node test timeout after %ds", int(r.NodeTimeout.Seconds()))
	names := [probe.ProbeCount]string{
		probe.ProbeICMP:  "ICMP",
		probe.ProbeTCP:   "TCP",
		probe.ProbeHTTP:  "HTTP",
		probe.ProbeMulti: "Multi",
	}

	var results [probe.ProbeCount]probe.Result
	for i := range results {
		results[i] = probe.Result{
			Name:    names[i],
			Status:  probe.StatusTimeout,
			Reason:  probe.ReasonNodeTimeout,
			Message: msg,
		}
	}
	return report.NodeReport{Node: n, Results: results, Notes: msg}
}
