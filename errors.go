package automaton

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code Machine-readable error category.
type Code string

const (
	// CodeInputUnavailable The input document is missing or unreadable.
	CodeInputUnavailable Code = "INPUT_UNAVAILABLE"
	// CodeMalformedInput A required field is missing or a record cannot be resolved.
	CodeMalformedInput Code = "MALFORMED_INPUT"
	// CodeNoStartState No state is designated as the start state.
	CodeNoStartState Code = "NO_START_STATE"
	// CodeInvalidPartition A partition does not describe indistinguishable blocks of the automaton.
	CodeInvalidPartition Code = "INVALID_PARTITION"
	// CodeInvalidArgument A caller supplied argument is out of range.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is a categorized error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an Error wrapping cause.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether any *Error in err's chain carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
