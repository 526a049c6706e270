package usage

import "fmt"

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("missing required argument '%s'", arg),
	}
}

// UnexpectedArgument is returned when more positionals are given than declared.
func UnexpectedArgument(arg string) *Error {
	return &Error{
		Kind:    ErrUnexpectedArgument,
		Message: fmt.Sprintf("unexpected argument '%s'", arg),
	}
}
