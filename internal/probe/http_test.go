package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHTTPChecker_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("user agent = %q, want %q", got, UserAgent)
		}
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if out.Status != StatusPass {
		t.Fatalf("want pass, got %+v", out)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency should be >= 0, got %f", out.LatencyMS)
	}
}

// Any response line is a pass: the probe tests transport reachability, not
// application correctness.
func TestHTTPChecker_ServerErrorStillPasses(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if out.Status != StatusPass {
		t.Fatalf("want pass on 500, got %+v", out)
	}
	if !strings.HasPrefix(out.Message, "500") {
		t.Fatalf("want message to carry the status line, got %q", out.Message)
	}
}

func TestHTTPChecker_LargeBodyIsCapped(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64*1024))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if out.Status != StatusPass {
		t.Fatalf("want pass, got %+v", out)
	}
}

func TestHTTPChecker_Refused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), url)
	if out.Status != StatusFail {
		t.Fatalf("want fail, got %+v", out)
	}
	if out.Reason != ReasonConnRefused {
		t.Fatalf("reason = %q, want %q", out.Reason, ReasonConnRefused)
	}
}

func TestHTTPChecker_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50 * time.Millisecond)
	out := chk.Check(context.Background(), s.URL)
	if out.Status != StatusFail {
		t.Fatalf("want fail due to timeout, got %+v", out)
	}
	if out.Reason != ReasonConnTimeout {
		t.Fatalf("reason = %q, want %q", out.Reason, ReasonConnTimeout)
	}
	if !strings.HasPrefix(out.Message, "HTTP request timeout") {
		t.Fatalf("message = %q, want timeout diagnostic", out.Message)
	}
}
