package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UserAgent sent by every HTTP probe.
const UserAgent = "Aqua-Speed-StatusChecker/1.0"

// bodyCap bounds how much of a response body any probe reads. Receiving a
// response line at all is the point; the content is not validated.
const bodyCap = 1024

// HTTPChecker issues exactly one GET against the node URL. Any response is a
// pass, 4xx/5xx included: the probe tests transport reachability, not
// application correctness.
type HTTPChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) Result {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Name: "HTTP", Status: StatusFail, Reason: ReasonProbeFailed, Message: err.Error()}
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := h.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000
	if err != nil {
		reason := classifyErr(err)
		msg := reason
		if reason == ReasonConnTimeout {
			msg = fmt.Sprintf("HTTP request timeout (%ds)", int(h.Timeout.Seconds()))
		}
		return Result{
			Name:      "HTTP",
			Status:    StatusFail,
			Reason:    reason,
			Message:   msg,
			LatencyMS: latency,
		}
	}
	defer resp.Body.Close()

	_, _ = io.CopyN(io.Discard, resp.Body, bodyCap)

	return Result{
		Name:      "HTTP",
		Status:    StatusPass,
		Message:   resp.Status,
		LatencyMS: latency,
	}
}
