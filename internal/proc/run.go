package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/footprint-tools/clikit/internal/log"
)

// ErrEmptyCommand is returned when an action expands to no argv at all.
var ErrEmptyCommand = errors.New("proc: empty command")

// InterruptGrace is how long a child may keep running after ctx is done
// and it was sent an interrupt, before it is killed.
var InterruptGrace = 5 * time.Second

// Spec describes one subprocess invocation.
type Spec struct {
	Args []string
	Dir  string
	// Env is appended to the parent environment.
	Env []string

	// Capture buffers stdout and stderr instead of inheriting them.
	Capture bool

	// Optional stream overrides for inherit mode. Nil means the parent's.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command described by spec and waits for it. A non-zero
// exit is not an error: it is reported in the Result. Errors are returned
// only when the process could not be started or waited on.
func Run(ctx context.Context, spec Spec) (*Result, error) {
	if len(spec.Args) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, spec.Args[0], spec.Args[1:]...)
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	cmd.WaitDelay = InterruptGrace
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	res := &Result{Args: spec.Args}

	var stdout, stderr, combined bytes.Buffer
	if spec.Capture {
		shared := &lockedWriter{w: &combined}
		cmd.Stdout = io.MultiWriter(&stdout, shared)
		cmd.Stderr = io.MultiWriter(&stderr, shared)
		cmd.Stdin = spec.Stdin
	} else {
		cmd.Stdin = orReader(spec.Stdin, os.Stdin)
		cmd.Stdout = orWriter(spec.Stdout, os.Stdout)
		cmd.Stderr = orWriter(spec.Stderr, os.Stderr)
	}

	log.Debug("proc: starting %v (dir=%q capture=%t)", spec.Args, spec.Dir, spec.Capture)

	err := cmd.Run()

	if spec.Capture {
		res.Stdout = stdout.String()
		res.Stderr = stderr.String()
		res.Combined = combined.String()
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
		case cmd.ProcessState != nil:
			// Exited on its own after ctx was done; its status wins.
			res.ExitCode = cmd.ProcessState.ExitCode()
		default:
			return nil, fmt.Errorf("run %s: %w", spec.Args[0], err)
		}
		if res.ExitCode < 0 {
			// Terminated by a signal.
			res.ExitCode = 1
			res.Signaled = true
		}
	}

	log.Debug("proc: %s exited with %d (signaled=%t)", spec.Args[0], res.ExitCode, res.Signaled)
	return res, nil
}

// interrupt asks p to stop and falls back to killing it where interrupts
// cannot be delivered (Windows).
func interrupt(p *os.Process) error {
	if err := p.Signal(os.Interrupt); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return err
		}
		return p.Kill()
	}
	return nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
