package domain

import (
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidID = errors.New("invalid resource id")
var ErrStorageUnavailable = errors.New("database unavailable")

// FieldError describes a single violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every constraint violation found in a payload, in
// field order. Validation never short-circuits on the first failure, so a
// caller always sees the complete list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "invalid input data: " + strings.Join(msgs, "; ")
}
