package probe

import "context"

// Outcome is the result of a single probe. Up means the target answered at
// the network level; any HTTP status counts, only transport errors and
// timeouts are down. StatusCode is 0 for transport errors.
type Outcome struct {
	Up             bool
	StatusCode     int
	ResponseTimeMs int64
	Reason         string
}

// Checker performs a single check for a given target URL.
type Checker interface {
	Check(ctx context.Context, url string) Outcome
}
