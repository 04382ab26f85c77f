package probe

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// TCPChecker attempts a single TCP connect to the node's host and port.
// The port comes from the URL: explicit port first, then 443 for https,
// 80 otherwise. No retry.
type TCPChecker struct {
	Dialer  Dialer
	Timeout time.Duration
}

func NewTCPChecker() *TCPChecker {
	return &TCPChecker{
		Dialer:  &net.Dialer{},
		Timeout: 3 * time.Second,
	}
}

func (c *TCPChecker) Check(ctx context.Context, target string) Result {
	addr, port := hostPort(target)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := c.Dialer.DialContext(ctx, "tcp", addr)
	latency := time.Since(start).Seconds() * 1000

	if err != nil {
		reason := classifyErr(err)
		msg := reason
		switch reason {
		case ReasonConnRefused:
			msg = fmt.Sprintf("Port %s closed or filtered", port)
		case ReasonConnTimeout:
			msg = fmt.Sprintf("Port %s connection timeout (%ds)", port, int(c.Timeout.Seconds()))
		case ReasonProbeFailed:
			msg = fmt.Sprintf("Port %s connection failed", port)
		}
		return Result{
			Name:      "TCP",
			Status:    StatusFail,
			Reason:    reason,
			Message:   msg,
			LatencyMS: latency,
		}
	}
	_ = conn.Close()

	return Result{Name: "TCP", Status: StatusPass, LatencyMS: latency}
}
