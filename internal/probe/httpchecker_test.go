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
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if !out.Up {
		t.Fatalf("want up, got %+v", out)
	}
	if out.StatusCode != 200 {
		t.Fatalf("want status 200, got %d", out.StatusCode)
	}
	if out.ResponseTimeMs < 0 {
		t.Fatalf("response time should be >= 0, got %d", out.ResponseTimeMs)
	}
}

func TestHTTPChecker_Status500IsStillUp(t *testing.T) {
	// Only network-level reachability is measured; a 500 is an answer.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2 * time.Second)
	out := chk.Check(context.Background(), s.URL)
	if !out.Up {
		t.Fatalf("want up on 500, got %+v", out)
	}
	if out.StatusCode != 500 {
		t.Fatalf("want status 500, got %d", out.StatusCode)
	}
	if !strings.HasPrefix(out.Reason, "500") {
		t.Fatalf("want reason to start with 500, got %q", out.Reason)
	}
}

func TestHTTPChecker_TimeoutIsDown(t *testing.T) {
	// Server sleeps longer than client timeout.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50 * time.Millisecond)
	out := chk.Check(context.Background(), s.URL)
	if out.Up {
		t.Fatalf("want down on timeout, got %+v", out)
	}
	if out.StatusCode != 0 {
		t.Fatalf("want status 0 on transport error, got %d", out.StatusCode)
	}
	if out.Reason == "" {
		t.Fatalf("want non-empty reason")
	}
}

func TestHTTPChecker_ConnectionRefusedIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close() // nothing listens here anymore

	chk := NewHTTPChecker(time.Second)
	out := chk.Check(context.Background(), url)
	if out.Up {
		t.Fatalf("want down on refused connection, got %+v", out)
	}
}
