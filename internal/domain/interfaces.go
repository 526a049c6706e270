package domain

import (
	"io"
	"time"
)

// ConfigProvider defines operations for reading and writing user preferences.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)
}

// Styler defines semantic text styling.
type Styler interface {
	Enabled() bool
	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string
}

// Invocation is one dispatched command run.
type Invocation struct {
	ID        string
	Command   string
	Argv      []string
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
}

// InvocationRecorder persists invocations.
type InvocationRecorder interface {
	Record(inv Invocation) error
}

// InvocationStore is an InvocationRecorder that can also be queried.
type InvocationStore interface {
	InvocationRecorder

	// Recent returns up to limit invocations, newest first.
	Recent(limit int) ([]Invocation, error)

	// Clear deletes every recorded invocation and returns how many were removed.
	Clear() (int64, error)

	Close() error
}

// Application bundles the process-wide collaborators.
type Application struct {
	Config  ConfigProvider
	Logger  Logger
	Output  OutputWriter
	Styler  Styler
	History InvocationStore
}
