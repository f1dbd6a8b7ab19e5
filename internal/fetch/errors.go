package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUpstreamStatus   = errors.New("upstream returned an error status")
	ErrMalformedPayload = errors.New("malformed upstream payload")
)

// StatusError is a non-2xx upstream response
type StatusError struct {
	Adapter    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Adapter, e.StatusCode, body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Retryable reports whether the status may succeed on a later attempt.
// 408, 429 and 5xx are retryable; every other 4xx is permanent.
func (e *StatusError) Retryable() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return false
	default:
		return true
	}
}

// IsPermanent reports whether err is a status error that should not be retried
func IsPermanent(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && !se.Retryable()
}
