package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/log"
	"github.com/footprint-tools/clikit/internal/proc"
	"github.com/footprint-tools/clikit/internal/ui/style"
	"github.com/footprint-tools/clikit/internal/usage"
	"github.com/google/uuid"
)

const defaultSuggestionsCount = 3

// ResolutionKind says what Run should do with the resolved tokens.
type ResolutionKind int

const (
	ShowGlobalHelp ResolutionKind = iota
	ShowCommandHelp
	Execute
)

// Resolution is the outcome of resolving argv against a registry.
// Command and Bound are set for Execute; Command alone for ShowCommandHelp.
type Resolution struct {
	Kind    ResolutionKind
	Command *Command
	Bound   *Bound
}

// Dispatcher routes argv to a command, renders help and runs actions.
type Dispatcher struct {
	Registry *Registry

	// Out receives help output; Err receives error reports.
	Out    domain.OutputWriter
	Err    io.Writer
	Styler domain.Styler
	Logger domain.Logger

	// Recorder, when set, records every executed command.
	Recorder domain.InvocationRecorder

	// ProjectRoot is the working directory for subprocess actions.
	ProjectRoot string

	// InvocationID identifies the run in logs, history and the subprocess
	// environment. A random UUID is used when empty.
	InvocationID string

	// Streams handed to subprocess actions. Nil inherits the parent's.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	now   func() time.Time
	newID func() string
}

// NewDispatcher returns a dispatcher with unstyled output on the process's
// standard streams. Callers override fields as needed.
func NewDispatcher(r *Registry, out domain.OutputWriter) *Dispatcher {
	return &Dispatcher{
		Registry: r,
		Out:      out,
		Err:      os.Stderr,
		Styler:   style.NopStyler{},
		Logger:   log.Default(),
	}
}

// Resolve maps tokens to global help, command help, or a matched command.
// Only "<prefix> --help" or "<prefix> -h" shows help for a namespace, and
// that help is the global listing.
func (d *Dispatcher) Resolve(tokens []string) (Resolution, error) {
	if len(tokens) == 0 || isHelpFlag(tokens[0]) {
		return Resolution{Kind: ShowGlobalHelp}, nil
	}

	first := tokens[0]
	var cmd *Command
	var rest []string

	if ns, ok := d.Registry.Namespace(first); ok {
		if len(tokens) < 2 {
			return Resolution{}, usage.MissingCommand(first)
		}
		if isHelpFlag(tokens[1]) {
			return Resolution{Kind: ShowGlobalHelp}, nil
		}
		c, ok := ns.Lookup(tokens[1])
		if !ok {
			suggestions := FindSimilarCommands(tokens[1], ns.Names(), defaultSuggestionsCount)
			for i, s := range suggestions {
				suggestions[i] = first + " " + s
			}
			return Resolution{}, usage.UnknownCommand(first+" "+tokens[1], suggestions...)
		}
		cmd, rest = c, tokens[2:]
	} else {
		c, ok := d.Registry.Lookup(first)
		if !ok {
			suggestions := FindSimilarCommands(first, d.Registry.Names(), defaultSuggestionsCount)
			return Resolution{}, usage.UnknownCommand(first, suggestions...)
		}
		cmd, rest = c, tokens[1:]
	}

	bound, err := cmd.Match(rest)
	if errors.Is(err, ErrHelpRequested) {
		return Resolution{Kind: ShowCommandHelp, Command: cmd}, nil
	}
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{Kind: Execute, Command: cmd, Bound: bound}, nil
}

// Run resolves tokens and acts on them. It freezes the registry and returns
// the process exit code.
func (d *Dispatcher) Run(ctx context.Context, tokens []string) int {
	d.Registry.Freeze()

	res, err := d.Resolve(tokens)
	if err != nil {
		d.logger().Debug("dispatch: %v", err)
		d.reportError(err)
		return exitCodeOf(err)
	}

	switch res.Kind {
	case ShowGlobalHelp:
		d.Out.Pager(RenderGlobalHelp(d.Registry))
		return 0
	case ShowCommandHelp:
		d.Out.Pager(RenderCommandHelp(res.Command))
		return 0
	}

	id := d.generateID()
	start := d.clock()
	d.logger().Info("dispatch: running %q (%s)", res.Command.QualifiedName(), id)

	code := d.execute(ctx, res.Command, res.Bound, id)

	d.logger().Info("dispatch: %q exited with code %d", res.Command.QualifiedName(), code)
	d.record(domain.Invocation{
		ID:        id,
		Command:   res.Command.QualifiedName(),
		Argv:      append([]string(nil), tokens...),
		ExitCode:  code,
		StartedAt: start,
		Duration:  d.clock().Sub(start),
	})

	return code
}

func (d *Dispatcher) execute(ctx context.Context, cmd *Command, bound *Bound, id string) int {
	in := NewInput(cmd, bound, d.ProjectRoot, id).WithStreams(d.Stdin, d.Stdout, d.Stderr)

	switch cmd.Action.Kind {
	case ActionSubprocess:
		result, err := in.Command(ctx, cmd.Action.Parts...)
		if err != nil {
			d.reportError(err)
			return 1
		}
		if result.Signaled {
			d.logger().Warn("dispatch: %q was terminated by a signal", cmd.QualifiedName())
		}
		return result.ExitCode

	case ActionCallback:
		err := callSafely(ctx, cmd.Action.Callback, in)
		if err == nil {
			return 0
		}
		var exit *ExitCodeError
		if errors.As(err, &exit) {
			return exit.Code
		}
		d.reportError(err)
		return exitCodeOf(err)

	default:
		err := usage.NoAction(cmd.QualifiedName()).WithCommand(cmd.QualifiedName(), UsageLine(cmd))
		d.reportError(err)
		return err.GetExitCode()
	}
}

// callSafely turns a panicking callback into an error.
func callSafely(ctx context.Context, fn Callback, in *Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("dispatch: callback panicked: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, in)
}

func (d *Dispatcher) reportError(err error) {
	s := d.styler()
	w := d.Err
	if w == nil {
		w = os.Stderr
	}

	fmt.Fprintln(w, s.Error(d.Registry.Program+": "+err.Error()))

	var uerr *usage.Error
	if !errors.As(err, &uerr) {
		return
	}

	if len(uerr.Suggestions) > 0 {
		if len(uerr.Suggestions) == 1 {
			fmt.Fprintln(w, "\nDid you mean this?")
		} else {
			fmt.Fprintln(w, "\nDid you mean one of these?")
		}
		for _, sug := range uerr.Suggestions {
			fmt.Fprintf(w, "    %s\n", s.Info(sug))
		}
	}

	if uerr.Usage != "" {
		fmt.Fprintf(w, "\nUsage: %s\n", s.Info(uerr.Usage))
		fmt.Fprintf(w, "%s\n", s.Muted(fmt.Sprintf("Run '%s %s --help' for more information.", d.Registry.Program, uerr.Command)))
	} else if uerr.Kind == usage.ErrUnknownCommand || uerr.Kind == usage.ErrMissingCommand {
		fmt.Fprintf(w, "%s\n", s.Muted(fmt.Sprintf("Run '%s --help' for a list of commands.", d.Registry.Program)))
	}
}

func (d *Dispatcher) record(inv domain.Invocation) {
	if d.Recorder == nil {
		return
	}
	if err := d.Recorder.Record(inv); err != nil {
		d.logger().Warn("dispatch: could not record invocation %s: %v", inv.ID, err)
	}
}

func exitCodeOf(err error) int {
	var uerr *usage.Error
	if errors.As(err, &uerr) {
		return uerr.GetExitCode()
	}
	var perr *proc.ExitError
	if errors.As(err, &perr) && perr.Code > 0 {
		return perr.Code
	}
	return 1
}

func (d *Dispatcher) logger() domain.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

func (d *Dispatcher) styler() domain.Styler {
	if d.Styler != nil {
		return d.Styler
	}
	return style.NopStyler{}
}

func (d *Dispatcher) clock() time.Time {
	if d.now != nil {
		return d.now()
	}
	return time.Now()
}

func (d *Dispatcher) generateID() string {
	if d.InvocationID != "" {
		return d.InvocationID
	}
	if d.newID != nil {
		return d.newID()
	}
	return uuid.NewString()
}
