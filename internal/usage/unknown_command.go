package usage

import "fmt"

// UnknownCommand is returned when no registered command matches the input.
func UnknownCommand(command string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrUnknownCommand,
		Message:     fmt.Sprintf("unknown command '%s'", command),
		Suggestions: suggestions,
	}
}

// MissingCommand is returned when a namespace prefix is given without a command.
func MissingCommand(namespace string) *Error {
	return &Error{
		Kind:    ErrMissingCommand,
		Message: fmt.Sprintf("missing command for group '%s'", namespace),
	}
}

// NoAction is returned when a matched command was registered without an action.
func NoAction(command string) *Error {
	return &Error{
		Kind:    ErrNoAction,
		Message: fmt.Sprintf("command '%s' has no action defined", command),
		Command: command,
	}
}
