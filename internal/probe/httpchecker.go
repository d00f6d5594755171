package probe

import (
	"context"
	"net/http"
	"time"
)

type HTTPChecker struct {
	Client *http.Client
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPChecker) Check(ctx context.Context, url string) Outcome {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Up: false, ResponseTimeMs: elapsedMs(start), Reason: err.Error()}
	}

	resp, err := h.Client.Do(req)
	elapsed := elapsedMs(start)
	if err != nil {
		return Outcome{Up: false, ResponseTimeMs: elapsed, Reason: err.Error()}
	}
	defer resp.Body.Close()

	// Any response means the site is reachable; status-level health is not
	// what this probe measures.
	return Outcome{
		Up:             true,
		StatusCode:     resp.StatusCode,
		ResponseTimeMs: elapsed,
		Reason:         resp.Status,
	}
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
