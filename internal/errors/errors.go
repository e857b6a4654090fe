// Package errors provides the structured error taxonomy shared by every
// avaliafor component. Data-layer code converts driver failures into these
// categories so callers never see an unclassified error.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors by how the caller is expected to react.
type ErrorCategory string

const (
	// ErrCategoryConfiguration halts startup.
	ErrCategoryConfiguration  ErrorCategory = "CONFIGURATION"
	// ErrCategoryConnectivity means the document store or file repository is unreachable.
	ErrCategoryConnectivity   ErrorCategory = "CONNECTIVITY"
	// ErrCategoryValidation means user input is incomplete or malformed.
	ErrCategoryValidation     ErrorCategory = "VALIDATION"
	// ErrCategoryNotFound means a lookup matched nothing.
	ErrCategoryNotFound       ErrorCategory = "NOT_FOUND"
	// ErrCategoryPartialFailure means a bulk operation finished with some failed items.
	ErrCategoryPartialFailure ErrorCategory = "PARTIAL_FAILURE"
	ErrCategoryInternal       ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Configuration codes
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeInvalidConfig      = "INVALID_CONFIG"

	// Connectivity codes
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeStoreOperation   = "STORE_OPERATION"
	CodeRepository       = "REPOSITORY_UNAVAILABLE"

	// Validation codes
	CodeUnanswered    = "UNANSWERED_QUESTIONS"
	CodeInvalidAnswer = "INVALID_ANSWER"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidToken  = "INVALID_CONFIRMATION"
	CodeInvalidBackup = "INVALID_BACKUP"

	// Not found codes
	CodeNoRecords = "NO_RECORDS"
	CodeNoFile    = "NO_FILE"

	// Partial failure codes
	CodeBulkPartial    = "BULK_PARTIAL"
	CodeRestorePartial = "RESTORE_PARTIAL"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// Error is the structured error type used throughout the system.
type Error struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new Error.
func New(category ErrorCategory, code, message string) *Error {
	return &Error{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *Error {
	return &Error{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
func IsRetryable(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not an *Error.
func GetCategory(err error) ErrorCategory {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
func GetCode(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// GetDetails extracts the details map from an error chain.
func GetDetails(err error) map[string]interface{} {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return nil
}

// Is* helpers for call sites that branch on category.

func IsConfiguration(err error) bool  { return GetCategory(err) == ErrCategoryConfiguration }
func IsConnectivity(err error) bool   { return GetCategory(err) == ErrCategoryConnectivity }
func IsValidation(err error) bool     { return GetCategory(err) == ErrCategoryValidation }
func IsNotFound(err error) bool       { return GetCategory(err) == ErrCategoryNotFound }
func IsPartialFailure(err error) bool { return GetCategory(err) == ErrCategoryPartialFailure }

func isRetryable(category ErrorCategory) bool {
	return category == ErrCategoryConnectivity
}

// Convenience constructors for common errors.

func NewConfigurationError(code, message string) *Error {
	return New(ErrCategoryConfiguration, code, message)
}

func NewConnectivityError(code, message string, cause error) *Error {
	return Wrap(ErrCategoryConnectivity, code, message, cause)
}

func NewValidationError(code, message string) *Error {
	return New(ErrCategoryValidation, code, message)
}

func NewNotFoundError(code, message string) *Error {
	return New(ErrCategoryNotFound, code, message)
}

func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}

// NewUnansweredError lists the questions left without an answer.
func NewUnansweredError(questions []string) *Error {
	msg := fmt.Sprintf("%d question(s) without answer: %s", len(questions), strings.Join(questions, "; "))
	return NewValidationError(CodeUnanswered, msg).WithDetails(map[string]interface{}{
		"unanswered": questions,
	})
}

// NewPartialFailure reports a bulk outcome as "N succeeded, M failed".
// failures maps item names to their error text.
func NewPartialFailure(code string, succeeded, failed int, failures map[string]string) *Error {
	msg := fmt.Sprintf("%d succeeded, %d failed", succeeded, failed)
	return New(ErrCategoryPartialFailure, code, msg).WithDetails(map[string]interface{}{
		"succeeded": succeeded,
		"failed":    failed,
		"failures":  failures,
	})
}
