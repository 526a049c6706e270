// Package ui provides terminal output with pager support.
//
// SECURITY NOTE: the pager runs whatever command the user configured in
// ~/.clikitrc or $PAGER. This matches git, less and man and requires local
// access to exploit.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/footprint-tools/clikit/internal/domain"
	"golang.org/x/term"
)

// EnvNoPager disables paging when set to any non-empty value.
const EnvNoPager = "CLIKIT_NO_PAGER"

var defaultPager = []string{"less", "-FRSX"}

// Writer implements domain.OutputWriter.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
	isTerminal    func(fd int) bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithConfigGetter sets where the "pager" preference is read from.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a new Writer that writes to the specified writer.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		envGetter:  os.Getenv,
		isTerminal: term.IsTerminal,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// Pager displays content through a pager if appropriate.
//
// Precedence:
//  1. pager disabled or CLIKIT_NO_PAGER set: direct output
//  2. output is not a terminal: direct output
//  3. "pager" preference, where "cat" bypasses
//  4. $PAGER, where "cat" bypasses
//  5. less -FRSX
func (w *Writer) Pager(content string) {
	args := w.pagerCommand()
	if len(args) == 0 {
		fmt.Fprint(w.out, content)
		return
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Fprint(w.out, content)
	}
}

// pagerCommand returns the pager argv, or nil to print directly.
func (w *Writer) pagerCommand() []string {
	if w.pagerDisabled || w.env(EnvNoPager) != "" {
		return nil
	}

	f, ok := w.out.(*os.File)
	if !ok || !w.isTerminal(int(f.Fd())) {
		return nil
	}

	if w.configGetter != nil {
		if configured, ok := w.configGetter("pager"); ok && strings.TrimSpace(configured) != "" {
			return pagerArgs(configured)
		}
	}

	if envPager := w.env("PAGER"); envPager != "" {
		return pagerArgs(envPager)
	}

	return defaultPager
}

func (w *Writer) env(key string) string {
	if w.envGetter == nil {
		return ""
	}
	return w.envGetter(key)
}

// pagerArgs splits a pager command line; "cat" means no pager.
func pagerArgs(cmd string) []string {
	parts := strings.Fields(cmd)
	if len(parts) == 0 || parts[0] == "cat" {
		return nil
	}
	return parts
}

// Verify Writer implements domain.OutputWriter
var _ domain.OutputWriter = (*Writer)(nil)
