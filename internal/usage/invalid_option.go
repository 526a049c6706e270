package usage

import "fmt"

// UnknownOption is returned when an option is not declared by the command.
func UnknownOption(option string) *Error {
	return &Error{
		Kind:    ErrUnknownOption,
		Message: fmt.Sprintf("unknown option '%s'", option),
	}
}

// MissingValue is returned when a value option is given without a value.
func MissingValue(option string) *Error {
	return &Error{
		Kind:    ErrMissingValue,
		Message: fmt.Sprintf("option '%s' requires a value", option),
	}
}

// UnexpectedValue is returned when a flag option is given "=value".
func UnexpectedValue(option string) *Error {
	return &Error{
		Kind:    ErrUnexpectedValue,
		Message: fmt.Sprintf("option '%s' does not accept a value", option),
	}
}
