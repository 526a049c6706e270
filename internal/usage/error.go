package usage

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnknownCommand
	ErrMissingCommand
	ErrUnknownOption
	ErrMissingValue
	ErrUnexpectedValue
	ErrUnexpectedArgument
	ErrMissingArgument
	ErrNoAction
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownCommand:
		return "unknown command"
	case ErrMissingCommand:
		return "missing command"
	case ErrUnknownOption:
		return "unknown option"
	case ErrMissingValue:
		return "missing value"
	case ErrUnexpectedValue:
		return "unexpected value"
	case ErrUnexpectedArgument:
		return "unexpected argument"
	case ErrMissingArgument:
		return "missing argument"
	case ErrNoAction:
		return "no action"
	default:
		return "unknown"
	}
}

// Every usage error is a generic failure. The table exists so a kind can
// be given a dedicated code without touching call sites.
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrUnknownCommand:     1,
	ErrMissingCommand:     1,
	ErrUnknownOption:      1,
	ErrMissingValue:       1,
	ErrUnexpectedValue:    1,
	ErrUnexpectedArgument: 1,
	ErrMissingArgument:    1,
	ErrNoAction:           1,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string

	// Command is the qualified name of the command whose usage line should
	// be echoed with the message. Empty when no command was resolved.
	Command string
	// Usage is the command's usage line, if known.
	Usage string

	// Suggestions holds close matches for unknown commands.
	Suggestions []string

	ExitCode int // overrides the kind's code when non-zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// WithCommand returns a copy of e that echoes the given command's usage.
func (e *Error) WithCommand(command, usageLine string) *Error {
	c := *e
	c.Command = command
	c.Usage = usageLine
	return &c
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
