package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Row-scoped ingestion errors (skip-and-report, non-fatal to the batch)
	ErrMalformedDate = errors.New("date matches no accepted format")
	ErrMissingField  = errors.New("required field absent from row")

	// Pipeline errors (fatal to the step that raised them)
	ErrUndefinedBreakpoint = errors.New("breakpoint undefined: no records for target season")
	ErrInsufficientSample  = errors.New("insufficient sample for analysis")
)

// Error constructors with context
func NewMalformedDateError(raw string) error {
	return fmt.Errorf("%w: %q", ErrMalformedDate, raw)
}

func NewMissingFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

func NewUndefinedBreakpointError(targetYear int) error {
	return fmt.Errorf("%w: season %d", ErrUndefinedBreakpoint, targetYear)
}

func NewInsufficientSampleError(what string, n int) error {
	return fmt.Errorf("%w: %s has %d observations", ErrInsufficientSample, what, n)
}

// Error checking helpers
func IsRowError(err error) bool {
	return errors.Is(err, ErrMalformedDate) || errors.Is(err, ErrMissingField)
}

func IsPipelineError(err error) bool {
	return errors.Is(err, ErrUndefinedBreakpoint) || errors.Is(err, ErrInsufficientSample)
}
