package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrValidation             = errors.New("validation failed")
	ErrUnsupportedDestination = errors.New("unsupported destination")
	ErrUpstreamFetch          = errors.New("upstream data source unavailable")
	ErrUnknownCategory        = errors.New("unknown data category")
	ErrNoFetcher              = errors.New("no fetcher registered for data category")
	ErrArchiveDisabled        = errors.New("report archive is not configured")
	ErrCacheClosed            = errors.New("cache has been disposed")
)

// ValidationError describes a rejected request field. It matches ErrValidation
// with errors.Is, and also its cause when one is set.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// UnsupportedDestinationError rejects a destination outside SupportedDestinations.
func UnsupportedDestinationError(code Country) *ValidationError {
	return &ValidationError{
		Field: "destinations",
		Message: fmt.Sprintf("unsupported destination %q; supported: %s",
			string(code), strings.Join(SupportedDestinationList(), ", ")),
		cause: ErrUnsupportedDestination,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}
