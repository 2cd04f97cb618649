// Package apperrors defines the error taxonomy surfaced by the submission
// core. Every error carries a stable machine-readable kind; callers map kinds
// to user-facing messages.
package apperrors

import (
	"errors"
)

type Kind string

const (
	KindNotFound            Kind = "NotFound"
	KindForbidden           Kind = "Forbidden"
	KindInvalidState        Kind = "InvalidState"
	KindDeadlinePassed      Kind = "DeadlinePassed"
	KindDuplicateSubmission Kind = "DuplicateSubmission"
	KindAlreadyPromoted     Kind = "AlreadyPromoted"
	KindValidation          Kind = "ValidationError"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

var (
	ErrAssignmentNotFound  = New(KindNotFound, "assignment not found")
	ErrSubmissionNotFound  = New(KindNotFound, "submission not found")
	ErrClassroomNotFound   = New(KindNotFound, "classroom not found")
	ErrProjectNotFound     = New(KindNotFound, "project not found")
	ErrForbidden           = New(KindForbidden, "operation not permitted for this user")
	ErrInvalidState        = New(KindInvalidState, "operation not valid for current submission status")
	ErrDeadlinePassed      = New(KindDeadlinePassed, "assignment deadline has passed")
	ErrDuplicateSubmission = New(KindDuplicateSubmission, "submission already exists for this assignment")
	ErrAlreadyPromoted     = New(KindAlreadyPromoted, "submission already promoted to repository")
)

// Validation builds a ValidationError with a specific reason.
func Validation(reason string) *Error {
	return New(KindValidation, reason)
}

// KindOf extracts the kind from any error produced (possibly wrapped) by this
// core. The second return is false for infrastructure errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
