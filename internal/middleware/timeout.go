package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds the proxied API calls. The body matches the backend's
// failure envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"success":false,"error":{"code":"GATEWAY_TIMEOUT","message":"upstream API did not answer in time"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, message)
	}
}
