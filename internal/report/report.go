package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alice39s/aqua-speed-status/internal/nodes"
	"github.com/alice39s/aqua-speed-status/internal/probe"
)

// NodeReport is the one row a node contributes: the node, exactly four
// probe results in fixed order, and the joined notes. Written once.
type NodeReport struct {
	Node    nodes.Node
	Results [probe.ProbeCount]probe.Result
	Notes   string
}

// Passed counts the results that count toward the run total.
func (nr NodeReport) Passed() int {
	n := 0
	for _, r := range nr.Results {
		if r.Passed() {
			n++
		}
	}
	return n
}

// Summary aggregates a full run.
type Summary struct {
	Nodes  int
	Total  int
	Passed int
}

func (s Summary) Failed() int {
	return s.Total - s.Passed
}

// Rate is the integer success percentage, floor(100 * passed / total).
func (s Summary) Rate() int {
	if s.Total == 0 {
		return 0
	}
	return s.Passed * 100 / s.Total
}

// Tier is the three-level health classification.
type Tier string

const (
	TierHealthy  Tier = "HEALTHY"
	TierWarning  Tier = "WARNING"
	TierCritical Tier = "CRITICAL"
)

func (s Summary) Tier() Tier {
	switch rate := s.Rate(); {
	case rate >= 90:
		return TierHealthy
	case rate >= 70:
		return TierWarning
	default:
		return TierCritical
	}
}

func (t Tier) marker() string {
	switch t {
	case TierHealthy:
		return "🟢"
	case TierWarning:
		return "🟡"
	default:
		return "🔴"
	}
}

// Writer accumulates the markdown report. Rows are append-only and written
// from the single driver goroutine; workers never touch it.
type Writer struct {
	f         *os.File
	nodesFile string
}

// NewWriter truncates the report file and writes the header. now is
// injectable so tests can pin the timestamp.
func NewWriter(path, nodesFile string, now time.Time) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	w := &Writer{f: f, nodesFile: nodesFile}

	header := fmt.Sprintf(`# Node Health Status Report

Generated on: %s

## Configuration File Analysis

Configuration file: `+"`%s`"+`

## Test Results

| ID | Node Name | ISP | Type | ICMP Ping | TCP Ping | HTTP GET | 8-Thread GET | Notes |
|----|-----------|-----|------|-----------|----------|----------|--------------|-------|
`, now.Format("2006-01-02 15:04:05"), nodesFile)

	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}
	return w, nil
}

// Add appends one node's row.
func (w *Writer) Add(nr NodeReport) error {
	row := fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
		nr.Node.ID,
		nr.Node.Name.Display(),
		nr.Node.Isp.Display(),
		nr.Node.Type,
		Cell(nr.Results[probe.ProbeICMP]),
		Cell(nr.Results[probe.ProbeTCP]),
		Cell(nr.Results[probe.ProbeHTTP]),
		Cell(nr.Results[probe.ProbeMulti]),
		nr.Notes,
	)
	if _, err := w.f.WriteString(row); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

// Finish appends the statistics and health blocks and closes the file.
func (w *Writer) Finish(s Summary) error {
	tier := s.Tier()
	block := fmt.Sprintf(`
## Statistics

- Total Nodes: %d
- Total Tests: %d
- Passed: %d
- Failed: %d
- Success Rate: %d%%

## Health Status

%s **%s** - Success rate: %d%%
`, s.Nodes, s.Total, s.Passed, s.Failed(), s.Rate(), tier.marker(), tier, s.Rate())

	if _, err := w.f.WriteString(block); err != nil {
		w.f.Close()
		return fmt.Errorf("write report summary: %w", err)
	}
	return w.f.Close()
}

// Cell renders one probe result as a table cell.
func Cell(r probe.Result) string {
	var cell string
	switch r.Status {
	case probe.StatusPass:
		cell = "✅ PASS"
	case probe.StatusTimeout:
		cell = "❌ TIMEOUT"
	default:
		cell = "❌ FAIL"
	}
	if r.Detail != "" {
		cell += " (" + r.Detail + ")"
	}
	return cell
}

// Notes joins the failing probes' diagnostics for the Notes column.
func Notes(results [probe.ProbeCount]probe.Result) string {
	var parts []string
	for _, r := range results {
		if !r.Passed() && r.Message != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Message))
		}
	}
	if len(parts) == 0 {
		return "All tests passed"
	}
	return strings.Join(parts, "; ")
}
