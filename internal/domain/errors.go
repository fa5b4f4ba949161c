package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatUnrecognized is returned when a message matches none of the
	// known layouts. The caller must surface it instead of guessing a format.
	ErrFormatUnrecognized = errors.New("unrecognized message format")

	// ErrUnknownPaymentMethod is returned for a payment method string that
	// is not part of the enumerated set.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// ErrMissingTotal is returned when a job has no total amount; without it
	// the commission calculation is meaningless.
	ErrMissingTotal = errors.New("total amount is required")

	ErrJobNotFound        = errors.New("job not found")
	ErrTechnicianNotFound = errors.New("technician not found")
)

// ParseError reports that a required field could not be located in a raw
// message. It carries the field name and the offending text so a human can
// correct the source message.
type ParseError struct {
	Field string
	Text  string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("could not locate %s in message", e.Field)
	}
	return fmt.Sprintf("could not locate %s in message: %q", e.Field, snippet(e.Text))
}

// ValidationError reports an input that violates a core invariant, such as
// parts exceeding the job total or a negative amount.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func snippet(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
