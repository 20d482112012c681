package errors

import (
	"errors"
	"fmt"

	"geoks/domain/core"
)

// Error codes used by the outer surfaces (API, CLI) when classifying
// failures from the numeric core.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeFilterFailed   = "FILTER_FAILED"
	CodeNoDistribution = "NO_EXACT_DISTRIBUTION"
	CodeStorageFailed  = "STORAGE_FAILED"
	CodeInternal       = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    Classify(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Classify maps domain sentinel errors onto API error codes.
func Classify(err error) string {
	switch {
	case core.IsInsufficientSampleSize(err), core.IsDuplicateValues(err):
		return CodeFilterFailed
	case core.IsMissingExactDistribution(err):
		return CodeNoDistribution
	case errors.Is(err, core.ErrEmptySample),
		errors.Is(err, core.ErrLengthMismatch),
		errors.Is(err, core.ErrNonPositiveUncertainty):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode extracts the error code, classifying plain errors on the fly
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return Classify(err)
}
