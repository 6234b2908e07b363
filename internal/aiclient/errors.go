package aiclient

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUpstreamUnavailable = errors.New("upstream ai service unavailable")
	ErrUpstreamTimeout     = errors.New("upstream ai service timed out")
	ErrMissingCredential   = errors.New("llm api credential not configured")
	ErrMalformedResponse   = errors.New("malformed upstream response")
)

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream http %d: %s", e.StatusCode, e.Body)
}

// classify maps a raw call error onto the package sentinels. Caller
// cancellation is returned untouched so it is never mistaken for an outage.
func classify(parent context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if parent.Err() != nil {
		return fmt.Errorf("%s: %w", op, parent.Err())
	}
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrUpstreamTimeout),
		errors.Is(err, ErrUpstreamUnavailable):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %v", op, ErrUpstreamTimeout, err)
	case errors.Is(err, ErrMalformedResponse):
		return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrUpstreamUnavailable, err)
	}
}

func retryable(err error) bool {
	if err == nil || errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrMalformedResponse) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == 429
	}
	return true
}
