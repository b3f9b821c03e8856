package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult is returned when a fetch succeeded but yielded no usable articles.
	ErrEmptyResult = errors.New("no usable articles in response")

	// ErrCancelled marks a fetch aborted by its context. It wraps context.Canceled.
	ErrCancelled = fmt.Errorf("fetch cancelled: %w", context.Canceled)
)

// FetchError is the single user-facing failure category for remote fetches:
// network errors, timeouts, non-200 responses and provider-reported errors.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Reason {
		return fmt.Sprintf("fetch failed: %s: %v", e.Reason, e.Err)
	}
	return "fetch failed: " + e.Reason
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError builds a FetchError with the given reason and cause.
func NewFetchError(reason string, err error) *FetchError {
	return &FetchError{Reason: reason, Err: err}
}

// Reason extracts a human readable reason from err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe.Reason != "" {
		return fe.Reason
	}
	return err.Error()
}
