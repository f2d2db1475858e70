// Package resilience holds the error taxonomy shared by the external API
// clients and the retry helper used around transient failures.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// Sentinel error kinds. Clients classify external API responses into these so
// callers can route on errors.Is without inspecting status codes or message
// text.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrAccessDenied   = errors.New("access denied")
	ErrNotFound       = errors.New("not found")
	ErrRateLimited    = errors.New("rate limited")
	ErrValidation     = errors.New("validation failed")
	// ErrNotConfigured marks an optional collaborator that was never set up.
	// It is a routing decision, not a failure.
	ErrNotConfigured = errors.New("not configured")
)

// StatusError carries the HTTP status of a failed external call together
// with its taxonomy kind.
type StatusError struct {
	Kind       error
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Kind.Error(), e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s (status %d)", e.Kind.Error(), e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// FromStatus maps an HTTP status code to a taxonomy error. Statuses outside
// the taxonomy produce a plain StatusError with a generic kind.
func FromStatus(statusCode int, detail string) error {
	var kind error
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = ErrAuthentication
	case statusCode == http.StatusForbidden:
		kind = ErrAccessDenied
	case statusCode == http.StatusNotFound:
		kind = ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case statusCode >= 500:
		kind = ErrRateLimited // transient server-side; retried like a 429
	default:
		kind = errors.New("request failed")
	}
	return &StatusError{Kind: kind, StatusCode: statusCode, Detail: detail}
}

// IsTransient reports whether the error is safe to retry: an explicit
// rate-limit/5xx classification, a network timeout, or a connection-level
// failure surfaced by the HTTP client.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"server closed idle connection",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
