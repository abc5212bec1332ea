package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// maxDiagnosticBody bounds how much of an error response body is kept for
// display.
const maxDiagnosticBody = 200

// StatusError reports a non-2xx response. Body holds a truncated snippet of
// the response text so failures are not opaque.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// ParseError reports a response body that was not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a request timeout (deadline exceeded or a
// timing-out network error).
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncateBody(s string) string {
	if len(s) <= maxDiagnosticBody {
		return s
	}
	return s[:maxDiagnosticBody]
}
