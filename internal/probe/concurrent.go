package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ConcurrentChecker estimates whether a target can serve several clients at
// once: a fixed-size worker pool fires independent GETs and the outcomes are
// reduced against a success threshold under one aggregate deadline.
type ConcurrentChecker struct {
	Workers   int           // pool size; all attempts are submitted at once
	Attempt   time.Duration // per-attempt timeout
	Aggregate time.Duration // deadline covering all workers combined
	Client    *http.Client
}

func NewConcurrentChecker() *ConcurrentChecker {
	return &ConcurrentChecker{
		Workers:   8,
		Attempt:   2 * time.Second,
		Aggregate: 10 * time.Second,
		Client:    &http.Client{},
	}
}

// threshold is the minimum success count: ceil(0.75 * workers).
func (c *ConcurrentChecker) threshold() int {
	return (c.Workers*3 + 3) / 4
}

func (c *ConcurrentChecker) Check(ctx context.Context, target string) Result {
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	// Cancelling this context aborts in-flight attempts when the aggregate
	// deadline fires, rather than abandoning their sockets.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return Result{Name: "Multi", Status: StatusFail, Reason: ReasonProbeFailed, Message: err.Error()}
	}
	defer pool.Release()

	outcomes := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		if err := pool.Submit(func() {
			outcomes <- c.attempt(ctx, target)
		}); err != nil {
			outcomes <- false
		}
	}

	deadline := time.NewTimer(c.Aggregate)
	defer deadline.Stop()

	succeeded := 0
	for done := 0; done < workers; done++ {
		select {
		case ok := <-outcomes:
			if ok {
				succeeded++
			}
		case <-deadline.C:
			cancel()
			return Result{
				Name:    "Multi",
				Status:  StatusFail,
				Reason:  ReasonAggregateTimeout,
				Message: fmt.Sprintf("Multi-thread test timeout (%ds)", int(c.Aggregate.Seconds())),
				Detail:  "timeout",
			}
		case <-ctx.Done():
			// Enclosing node deadline fired; the caller discards this result.
			return Result{
				Name:    "Multi",
				Status:  StatusFail,
				Reason:  ReasonConnTimeout,
				Message: ctx.Err().Error(),
			}
		}
	}

	detail := fmt.Sprintf("%d/%d", succeeded, workers)
	if succeeded >= c.threshold() {
		return Result{Name: "Multi", Status: StatusPass, Detail: detail}
	}
	return Result{
		Name:    "Multi",
		Status:  StatusFail,
		Reason:  ReasonInsufficient,
		Message: fmt.Sprintf("Multi-thread test failed: only %d/%d workers succeeded", succeeded, workers),
		Detail:  detail,
	}
}

// attempt is one worker's GET. Its outcome collapses to success/failure;
// like the single probe, any response line counts.
func (c *ConcurrentChecker) attempt(ctx context.Context, target string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.Attempt)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.CopyN(io.Discard, resp.Body, bodyCap)
	return true
}
