package validation

import (
	"errors"
	"fmt"
)

// Error is returned by services when caller-supplied input is unusable.
// Handlers map it to 400 invalid_request.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func New(field, message string) error {
	return &Error{Field: field, Message: message}
}

func Required(field string) error {
	return &Error{Field: field, Message: "is required"}
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
