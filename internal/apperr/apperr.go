// Package apperr defines the error kinds surfaced by timefocus operations.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindValidation marks bad input rejected at the boundary. State is
	// left unchanged when one is returned.
	KindValidation Kind = iota
	KindNotFound
	// KindCorrupt marks a persisted record that could not be decoded.
	KindCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindCorrupt:
		return "corrupt"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Field   string // offending field or record key, if any
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation creates a validation error for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Validationf creates a validation error with formatting.
func Validationf(field, format string, args ...any) *Error {
	return Validation(field, fmt.Sprintf(format, args...))
}

// NotFound creates an error for a missing entity.
func NotFound(what, id string) *Error {
	return &Error{Kind: KindNotFound, Field: what, Message: fmt.Sprintf("%q not found", id)}
}

// Corrupt wraps a decode failure of the record stored under key.
func Corrupt(key string, cause error) *Error {
	return &Error{Kind: KindCorrupt, Field: key, Message: "corrupt record", Cause: cause}
}

// Is reports whether err (or anything it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return Is(err, KindValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return Is(err, KindNotFound) }
