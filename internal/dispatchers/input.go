package dispatchers

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strconv"

	"github.com/footprint-tools/clikit/internal/proc"
	"github.com/footprint-tools/clikit/internal/usage"
)

// Environment variables set for every subprocess a command spawns.
const (
	EnvProjectRoot  = "CLIKIT_ROOT"
	EnvInvocationID = "CLIKIT_INVOCATION_ID"
)

// Input is the matched input of the running command. Callbacks receive it
// and subprocess actions expand their parts against it.
type Input struct {
	cmd   *Command
	bound *Bound

	root         string
	invocationID string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewInput wraps a match result for cmd.
func NewInput(cmd *Command, bound *Bound, root, invocationID string) *Input {
	if bound == nil {
		bound = &Bound{Args: map[string]string{}, Options: map[string]OptionValue{}, Rest: []string{}}
	}
	return &Input{cmd: cmd, bound: bound, root: root, invocationID: invocationID}
}

// WithStreams overrides the standard streams inherited by Command.
// Nil streams fall back to the parent's.
func (in *Input) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *Input {
	in.stdin, in.stdout, in.stderr = stdin, stdout, stderr
	return in
}

// Cmd returns the command being run.
func (in *Input) Cmd() *Command {
	return in.cmd
}

// Argument returns a positional argument's value. The boolean is false
// when an optional argument was not supplied.
func (in *Input) Argument(name string) (string, bool) {
	return in.bound.Argument(name)
}

// Arguments returns a copy of all bound arguments.
func (in *Input) Arguments() map[string]string {
	return maps.Clone(in.bound.Args)
}

// Flag reports whether the option was given on the command line.
// name may be written with or without dashes, in any case.
func (in *Input) Flag(name string) bool {
	_, ok := in.bound.Options[optionKey(name)]
	return ok
}

// Has reports whether name was supplied, either as an argument or as an
// option.
func (in *Input) Has(name string) bool {
	if _, ok := in.bound.Args[name]; ok {
		return true
	}
	return in.Flag(name)
}

// Option returns the value of a value-accepting option.
func (in *Input) Option(name string) (string, bool) {
	v, ok := in.bound.Options[optionKey(name)]
	if !ok || !v.HasValue {
		return "", false
	}
	return v.Value, true
}

// OptionOr returns the option's value, or def when it was not given.
func (in *Input) OptionOr(name, def string) string {
	if v, ok := in.Option(name); ok {
		return v
	}
	return def
}

// IntOption parses the option's value as an integer, returning def when
// the option was not given.
func (in *Input) IntOption(name string, def int) (int, error) {
	v, ok := in.Option(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option '%s' expects a number, got %q", optionKey(name), v)
	}
	return n, nil
}

// Options returns a copy of all bound options keyed by "--long".
func (in *Input) Options() map[string]OptionValue {
	return maps.Clone(in.bound.Options)
}

// OptionArgs renders an option back into argv form.
func (in *Input) OptionArgs(name string) []string {
	return in.bound.OptionArgs(name)
}

// Rest returns the tokens collected by "...".
func (in *Input) Rest() []string {
	return append([]string(nil), in.bound.Rest...)
}

// UsageError stamps err with the running command's usage line so the
// dispatcher reports it the way it reports match errors.
func (in *Input) UsageError(err *usage.Error) error {
	return err.WithCommand(in.cmd.QualifiedName(), UsageLine(in.cmd))
}

// ProjectRoot is the directory holding the manifest. Subprocesses run here.
func (in *Input) ProjectRoot() string {
	return in.root
}

// InvocationID identifies this run in logs and history.
func (in *Input) InvocationID() string {
	return in.invocationID
}

// Env returns the variables added to every subprocess environment.
func (in *Input) Env() []string {
	var env []string
	if in.root != "" {
		env = append(env, EnvProjectRoot+"="+in.root)
	}
	if in.invocationID != "" {
		env = append(env, EnvInvocationID+"="+in.invocationID)
	}
	return env
}

// Command expands parts against the input and runs the result with the
// parent's terminal attached.
func (in *Input) Command(ctx context.Context, parts ...proc.Part) (*proc.Result, error) {
	spec, err := in.spec(parts, false)
	if err != nil {
		return nil, err
	}
	return proc.Run(ctx, spec)
}

// SilentCommand is like Command but captures the output into the result.
func (in *Input) SilentCommand(ctx context.Context, parts ...proc.Part) (*proc.Result, error) {
	spec, err := in.spec(parts, true)
	if err != nil {
		return nil, err
	}
	return proc.Run(ctx, spec)
}

// Parallel runs several captured commands at once. Results keep the order
// of cmds.
func (in *Input) Parallel(ctx context.Context, cmds ...proc.Group) ([]*proc.Result, error) {
	specs := make([]proc.Spec, 0, len(cmds))
	for _, c := range cmds {
		spec, err := in.spec(c, true)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return proc.Parallel(ctx, specs...)
}

func (in *Input) spec(parts []proc.Part, capture bool) (proc.Spec, error) {
	args := proc.Expand(parts, in)
	if len(args) == 0 {
		return proc.Spec{}, fmt.Errorf("command %q: %w", in.cmd.QualifiedName(), proc.ErrEmptyCommand)
	}
	return proc.Spec{
		Args:    args,
		Dir:     in.root,
		Env:     in.Env(),
		Capture: capture,
		Stdin:   in.stdin,
		Stdout:  in.stdout,
		Stderr:  in.stderr,
	}, nil
}

// Verify Input can drive part expansion.
var _ proc.Bindings = (*Input)(nil)

// ExitCodeError ends the process with Code without printing anything.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an error that makes the dispatcher exit with code.
func Exit(code int) error {
	return &ExitCodeError{Code: code}
}
