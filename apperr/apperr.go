// Package apperr defines the application error taxonomy. Every business-rule
// and authorization failure maps to one Kind; handlers translate the Kind to
// an HTTP status with StatusOf. Unexpected store failures are wrapped as
// KindOperationFailed and logged at the call site.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindOperationFailed Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindDuplicateKey
	KindValidation
	KindAlreadyAssigned
	KindNotAssigned
	KindConflictingAssignment
	KindAlreadyProcessed
	KindHasProcessedItems
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindValidation:
		return "ValidationError"
	case KindAlreadyAssigned:
		return "AlreadyAssigned"
	case KindNotAssigned:
		return "NotAssignedToEmployee"
	case KindConflictingAssignment:
		return "ConflictingAssignment"
	case KindAlreadyProcessed:
		return "AlreadyProcessed"
	case KindHasProcessedItems:
		return "HasProcessedItems"
	default:
		return "OperationFailed"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind carried by err, or KindOperationFailed for
// unrecognized errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindOperationFailed
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// StatusOf maps an error to the HTTP status code handlers respond with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey, KindAlreadyAssigned, KindAlreadyProcessed,
		KindHasProcessedItems, KindConflictingAssignment:
		return http.StatusConflict
	case KindValidation, KindNotAssigned:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
