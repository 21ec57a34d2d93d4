package post

import "errors"

// ErrForbidden is returned when a write is attempted by a non-author.
var ErrForbidden = errors.New("requester is not the author")

// ValidationError carries a user-facing Vietnamese message for a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}
