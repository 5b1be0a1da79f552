package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every builder argument error.
// Check with errors.Is.
var ErrInvalidArgument = errors.New("pageturn: invalid argument")

// Error codes carried by Error.
const (
	CodeInvalidParameterType = "INVALID_PARAMETER_TYPE"
)

// Error is a builder failure with a machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%s) %s", strings.ToUpper(e.Code), e.Message)
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold.
func (e *Error) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidParameterType, Message: message}
}
