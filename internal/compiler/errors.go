package compiler

import (
	"errors"
	"fmt"
)

// Conversion error codes (E200-E299).
const (
	ErrCodeInvalidInput         = "E201" // markup input is not text
	ErrCodeInvalidComponentName = "E202" // component name is not a JS identifier
)

// ErrInvalidInputKind is returned when markup input is not text: it is not
// valid UTF-8 or contains NUL bytes. Match it with errors.Is.
var ErrInvalidInputKind = errors.New("markup input must be text")

// ConvertError is an input validation failure at the compiler boundary.
// Parser errors are never wrapped in a ConvertError; they pass through as-is.
type ConvertError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err is an invalid-input failure.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInputKind)
}
