package util

import (
	"errors"
	"fmt"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes carried by DomainError.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeStorageFailure    = "STORAGE_FAILURE"
)

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// NewValidationError reports a malformed field value. The offending field
// name and raw value travel in Details.
func NewValidationError(field string, value any, message string) error {
	return NewDomainError(CodeValidationFailed, message, map[string]any{
		"field": field,
		"value": value,
	})
}

// NewInvalidTransition reports a status change absent from the transition table.
func NewInvalidTransition(from, to string) error {
	return NewDomainError(CodeInvalidTransition,
		fmt.Sprintf("Cannot transition from %s to %s", from, to),
		map[string]any{"from": from, "to": to})
}

func NewNotFound(resource, id string) error {
	return NewDomainError(CodeNotFound,
		fmt.Sprintf("%s not found", resource),
		map[string]any{"id": id})
}

// NewStorageError wraps an underlying I/O failure. Callers may retry.
func NewStorageError(op string, err error) error {
	return &DomainError{
		Code:    CodeStorageFailure,
		Message: fmt.Sprintf("storage %s failed", op),
		Details: map[string]any{"op": op},
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// IsValidation reports whether err is a validation or transition failure.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidationFailed) || hasCode(err, CodeInvalidTransition)
}

func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

func IsStorage(err error) bool {
	return hasCode(err, CodeStorageFailure)
}
