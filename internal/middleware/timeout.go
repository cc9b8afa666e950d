package middleware

import (
	"net/http"
	"time"
)

// Timeout caps how long any /api/v1 handler may run. Auth and todo
// operations are single round-trips to the stores, so a request still
// running at the deadline is stuck, not slow; the client gets the
// standard error envelope with 503.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"the request did not complete in time"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
