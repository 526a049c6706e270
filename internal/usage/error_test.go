package usage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		kind    ErrorKind
		message string
	}{
		{"unknown command", UnknownCommand("deploy"), ErrUnknownCommand, "unknown command 'deploy'"},
		{"missing command", MissingCommand("db"), ErrMissingCommand, "missing command for group 'db'"},
		{"no action", NoAction("db migrate"), ErrNoAction, "command 'db migrate' has no action defined"},
		{"unknown option", UnknownOption("--nope"), ErrUnknownOption, "unknown option '--nope'"},
		{"missing value", MissingValue("--output"), ErrMissingValue, "option '--output' requires a value"},
		{"unexpected value", UnexpectedValue("--force"), ErrUnexpectedValue, "option '--force' does not accept a value"},
		{"missing argument", MissingArgument("target"), ErrMissingArgument, "missing required argument 'target'"},
		{"unexpected argument", UnexpectedArgument("extra"), ErrUnexpectedArgument, "unexpected argument 'extra'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.err.Kind)
			require.Equal(t, tt.message, tt.err.Error())
			require.Equal(t, 1, tt.err.GetExitCode())
		})
	}
}

func TestUnknownCommand_Suggestions(t *testing.T) {
	err := UnknownCommand("biuld", "build", "bundle")
	require.Equal(t, []string{"build", "bundle"}, err.Suggestions)
}

func TestError_ExplicitExitCode(t *testing.T) {
	err := &Error{Kind: ErrUnknownOption, ExitCode: 64}
	require.Equal(t, 64, err.GetExitCode())

	err = &Error{Kind: ErrorKind(99)}
	require.Equal(t, 1, err.GetExitCode())
}

func TestError_WithCommand(t *testing.T) {
	base := MissingArgument("target")
	withCmd := base.WithCommand("build", "Usage: build <target>")

	require.Empty(t, base.Command, "original is not mutated")
	require.Equal(t, "build", withCmd.Command)
	require.Equal(t, "Usage: build <target>", withCmd.Usage)
	require.Equal(t, base.Message, withCmd.Message)
}

func TestError_As(t *testing.T) {
	var err error = UnknownOption("--x")

	var ue *Error
	require.True(t, errors.As(err, &ue))
	require.Equal(t, ErrUnknownOption, ue.Kind)
}

func TestErrorKind_String(t *testing.T) {
	require.Equal(t, "unknown option", ErrUnknownOption.String())
	require.Equal(t, "unknown", ErrorKind(42).String())
}
