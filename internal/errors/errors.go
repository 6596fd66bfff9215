// Package errors classifies failures so the HTTP and CLI layers can pick a
// status and a message that is safe to show.
package errors

import (
	"errors"
	"fmt"
)

// Kind is the category of an AppError.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindDatabase
	KindTimeout
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	case KindTimeout:
		return "timeout"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError is a classified failure. For validation and not found errors
// Message is what the client sees.
type AppError struct {
	Kind    Kind
	Message string
	Op      string
	Cause   error
}

func (e *AppError) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError reports bad client input.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Cause: cause}
}

// NewNotFoundError reports a missing resource as "<resource> not found".
func NewNotFoundError(resource, identifier string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: resource + " not found",
		Op:      fmt.Sprintf("find %s %s", resource, identifier),
	}
}

// NewDatabaseError wraps a storage failure.
func NewDatabaseError(op string, cause error) *AppError {
	return &AppError{Kind: KindDatabase, Message: "database operation failed: " + op, Op: op, Cause: cause}
}

// NewTimeoutError wraps a deadline overrun.
func NewTimeoutError(op string, cause error) *AppError {
	return &AppError{Kind: KindTimeout, Message: "operation timed out: " + op, Op: op, Cause: cause}
}

// NewInternalError wraps a failure that fits no other kind.
func NewInternalError(op string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error: " + op, Op: op, Cause: cause}
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err. Unclassified errors count as internal.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// UserMessage returns the message to show for err. Storage and internal
// details never leak.
func UserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}
	switch appErr.Kind {
	case KindValidation, KindNotFound:
		return appErr.Message
	case KindDatabase:
		return "A database error occurred. Please try again."
	case KindTimeout:
		return "The operation timed out. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// ShouldLog reports whether err is a server-side failure worth logging.
// Client mistakes are not.
func ShouldLog(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindNotFound:
		return false
	default:
		return true
	}
}
