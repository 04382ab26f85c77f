package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestConcurrentChecker_Threshold(t *testing.T) {
	cases := []struct {
		workers int
		want    int
	}{
		{8, 6},
		{4, 3},
		{2, 2},
		{1, 1},
	}
	for _, tc := range cases {
		c := &ConcurrentChecker{Workers: tc.workers}
		if got := c.threshold(); got != tc.want {
			t.Fatalf("threshold(%d workers) = %d, want %d", tc.workers, got, tc.want)
		}
	}
}

func TestConcurrentChecker_AllSucceed(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	c := NewConcurrentChecker()
	out := c.Check(context.Background(), s.URL)
	if out.Status != StatusPass {
		t.Fatalf("want pass, got %+v", out)
	}
	if out.Detail != "8/8" {
		t.Fatalf("detail = %q, want 8/8", out.Detail)
	}
}

// The first n requests stall past the per-attempt timeout; the rest answer
// immediately. Gives a deterministic success count without relying on
// worker scheduling.
func stallFirstN(t *testing.T, n int32, stall time.Duration) *httptest.Server {
	t.Helper()
	var seen int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&seen, 1) <= n {
			time.Sleep(stall)
			return
		}
		w.Write([]byte("ok"))
	}))
}

func TestConcurrentChecker_PartialAboveThreshold(t *testing.T) {
	s := stallFirstN(t, 2, 500*time.Millisecond)
	defer s.Close()

	c := NewConcurrentChecker()
	c.Attempt = 100 * time.Millisecond
	c.Aggregate = 5 * time.Second

	out := c.Check(context.Background(), s.URL)
	if out.Status != StatusPass {
		t.Fatalf("want pass at 6/8, got %+v", out)
	}
	if out.Detail != "6/8" {
		t.Fatalf("detail = %q, want 6/8", out.Detail)
	}
}

func TestConcurrentChecker_BelowThreshold(t *testing.T) {
	s := stallFirstN(t, 3, 500*time.Millisecond)
	defer s.Close()

	c := NewConcurrentChecker()
	c.Attempt = 100 * time.Millisecond
	c.Aggregate = 5 * time.Second

	out := c.Check(context.Background(), s.URL)
	if out.Status != StatusFail {
		t.Fatalf("want fail at 5/8, got %+v", out)
	}
	if out.Reason != ReasonInsufficient {
		t.Fatalf("reason = %q, want %q", out.Reason, ReasonInsufficient)
	}
	if out.Detail != "5/8" {
		t.Fatalf("detail = %q, want 5/8", out.Detail)
	}
}

func TestConcurrentChecker_AllUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()

	c := NewConcurrentChecker()
	out := c.Check(context.Background(), url)
	if out.Status != StatusFail {
		t.Fatalf("want fail, got %+v", out)
	}
	if out.Detail != "0/8" {
		t.Fatalf("detail = %q, want 0/8", out.Detail)
	}
}

// The aggregate deadline covers all workers combined. When it elapses, the
// probe fails regardless of how many attempts had already succeeded, and
// outstanding attempts are cancelled.
func TestConcurrentChecker_AggregateTimeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer s.Close()

	c := NewConcurrentChecker()
	c.Attempt = 5 * time.Second
	c.Aggregate = 100 * time.Millisecond

	start := time.Now()
	out := c.Check(context.Background(), s.URL)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("aggregate deadline not honored, took %v", elapsed)
	}
	if out.Status != StatusFail {
		t.Fatalf("want fail, got %+v", out)
	}
	if out.Reason != ReasonAggregateTimeout {
		t.Fatalf("reason = %q, want %q", out.Reason, ReasonAggregateTimeout)
	}
	if out.Detail != "timeout" {
		t.Fatalf("detail = %q, want timeout", out.Detail)
	}
}
