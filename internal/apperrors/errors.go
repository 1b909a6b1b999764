package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found with ID: %s", e.Resource, e.ID)
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return "not found"
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ConflictError signals a uniqueness violation, typically a seat
// position that is already taken
type ConflictError struct {
	Msg string
	Err error
}

func (e ConflictError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "conflict"
}

func (e ConflictError) Unwrap() error { return e.Err }

// BadRequestError signals invalid input or a disallowed state transition
type BadRequestError struct {
	Msg string
	Err error
}

func (e BadRequestError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "bad request"
}

func (e BadRequestError) Unwrap() error { return e.Err }

// ForbiddenError signals an authenticated principal accessing another
// user's resource
type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

// InternalError signals a violated structural invariant or an
// infrastructure failure
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsBadRequest(err error) bool {
	var target BadRequestError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
