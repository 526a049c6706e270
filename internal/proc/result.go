package proc

import (
	"fmt"
	"strings"
)

// Result is the outcome of a finished subprocess.
type Result struct {
	Args     []string
	ExitCode int
	// Signaled is set when the process was killed by a signal; ExitCode is 1.
	Signaled bool

	// Captured output, only populated in capture mode.
	Stdout   string
	Stderr   string
	Combined string
}

// Success reports whether the process exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Err returns an *ExitError when the process failed, nil otherwise.
func (r *Result) Err() error {
	if r.Success() {
		return nil
	}
	return &ExitError{Args: r.Args, Code: r.ExitCode, Signaled: r.Signaled, Stderr: r.Stderr}
}

// ExitError reports a subprocess that exited non-zero.
type ExitError struct {
	Args     []string
	Code     int
	Signaled bool
	Stderr   string
}

func (e *ExitError) Error() string {
	name := "command"
	if len(e.Args) > 0 {
		name = e.Args[0]
	}
	if e.Signaled {
		return fmt.Sprintf("%s was terminated by a signal", name)
	}
	msg := fmt.Sprintf("%s exited with code %d", name, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

var _ error = (*ExitError)(nil)
