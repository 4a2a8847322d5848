package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCategory classifies why a source produced no usable fields.
type ErrorCategory string

const (
	// ErrUnavailable: executable missing, connection refused, DNS failure.
	ErrUnavailable ErrorCategory = "unavailable"
	ErrTimeout     ErrorCategory = "timeout"
	// ErrCanceled: the caller gave up, e.g. the client disconnected.
	ErrCanceled ErrorCategory = "canceled"
	// ErrBadStatus: non-zero exit code or non-2xx HTTP status.
	ErrBadStatus ErrorCategory = "bad_status"
	ErrEmpty     ErrorCategory = "empty"
	// ErrNoMatch: the payload did not contain the labels or shape we understand.
	ErrNoMatch  ErrorCategory = "no_match"
	ErrAssembly ErrorCategory = "assembly"
)

// SourceError is a soft failure. The pipeline logs it and moves on to the
// next source.
type SourceError struct {
	Category   ErrorCategory
	Source     string
	Message    string
	Underlying error
}

func (e *SourceError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("source %s [%s]: %s: %v", e.Source, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("source %s [%s]: %s", e.Source, e.Category, e.Message)
}

func (e *SourceError) Unwrap() error { return e.Underlying }

func NewSourceError(category ErrorCategory, source, message string, underlying error) *SourceError {
	return &SourceError{
		Category:   category,
		Source:     source,
		Message:    message,
		Underlying: underlying,
	}
}

// ContextError classifies a finished context: DeadlineExceeded is a
// timeout, anything else a cancellation.
func ContextError(ctx context.Context, source, message string) *SourceError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewSourceError(ErrTimeout, source, message, ctx.Err())
	}
	return NewSourceError(ErrCanceled, source, "lookup canceled", ctx.Err())
}

// CategoryOf extracts the category from err, or ErrUnavailable when err is
// not a SourceError.
func CategoryOf(err error) ErrorCategory {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Category
	}
	return ErrUnavailable
}
