package probe

import (
	"context"
	"net/url"
)

// Status is the outcome of a single probe.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusTimeout Status = "TIMEOUT"
)

// Failure reasons used in the report's Notes column. Advisory only:
// classification never drives control flow or retries.
const (
	ReasonDNSFailure       = "DNS resolution failed"
	ReasonUnreachable      = "Network unreachable"
	ReasonConnTimeout      = "Connection timeout"
	ReasonConnRefused      = "Connection refused"
	ReasonTLS              = "SSL/TLS connection error"
	ReasonAggregateTimeout = "Multi-thread test timeout"
	ReasonInsufficient     = "Insufficient success rate"
	ReasonNodeTimeout      = "Node test timeout"
	ReasonProbeFailed      = "Probe failed"
)

// Fixed probe order within a node. Every node yields exactly ProbeCount
// results, even when the node-level deadline fires first.
const (
	ProbeICMP = iota
	ProbeTCP
	ProbeHTTP
	ProbeMulti
	ProbeCount
)

// Result is the unified per-call outcome of a single probe. It replaces the
// shared last-error state of earlier tooling: each call carries its own
// classified reason and diagnostic.
type Result struct {
	Name      string // probe label: "ICMP", "TCP", "HTTP", "Multi"
	Status    Status
	Reason    string // one of the Reason* constants; empty on pass
	Message   string // human-readable diagnostic for the Notes column
	Detail    string // optional suffix for the report cell, e.g. "6/8"
	LatencyMS float64
}

// Passed reports whether the probe counts toward the run's pass total.
func (r Result) Passed() bool {
	return r.Status == StatusPass
}

// Checker performs a single check against a node's URL.
type Checker interface {
	Check(ctx context.Context, target string) Result
}

// extractHost returns the hostname part of a URL, or the input unchanged
// when it does not parse as one.
func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}

// hostPort returns the dial address for a URL. An explicit port wins,
// otherwise the scheme decides (https -> 443, everything else -> 80).
func hostPort(raw string) (addr string, port string) {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw, ""
	}
	port = u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}
	return u.Hostname() + ":" + port, port
}
