package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// CommandRunner abstracts external command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ICMPChecker tests network-layer reachability by shelling out to ping(8).
// No ICMP library ships with the stack and raw sockets need elevated
// privileges, so exit state plus output text is what we classify from.
type ICMPChecker struct {
	Runner  CommandRunner
	Count   int           // echo requests per check
	Wait    time.Duration // per-echo reply wait (-W)
	Overall time.Duration // hard cap on the whole command
}

func NewICMPChecker() *ICMPChecker {
	return &ICMPChecker{
		Runner:  execRunner{},
		Count:   3,
		Wait:    3 * time.Second,
		Overall: 10 * time.Second,
	}
}

func (c *ICMPChecker) Check(ctx context.Context, target string) Result {
	host := extractHost(target)

	ctx, cancel := context.WithTimeout(ctx, c.Overall)
	defer cancel()

	args := []string{
		"-c", strconv.Itoa(c.Count),
		"-W", strconv.Itoa(int(c.Wait.Seconds())),
		host,
	}

	start := time.Now()
	out, err := c.Runner.Run(ctx, "ping", args...)
	latency := time.Since(start).Seconds() * 1000

	if err == nil {
		return Result{Name: "ICMP", Status: StatusPass, LatencyMS: latency}
	}

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			Name:      "ICMP",
			Status:    StatusFail,
			Reason:    ReasonConnTimeout,
			Message:   fmt.Sprintf("ICMP ping timeout (%ds)", int(c.Overall.Seconds())),
			LatencyMS: latency,
		}
	}

	// ping reports failures through its exit code; the reason only lives in
	// its output text.
	reason := classifyText(string(out))
	if reason == ReasonProbeFailed {
		reason = ReasonUnreachable
	}
	return Result{
		Name:      "ICMP",
		Status:    StatusFail,
		Reason:    reason,
		Message:   reason,
		LatencyMS: latency,
	}
}
