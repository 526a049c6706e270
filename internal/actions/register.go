package actions

import (
	"context"
	"fmt"

	"github.com/footprint-tools/clikit/internal/dispatchers"
)

type builtin struct {
	signature   string
	description string
	run         dispatchers.Callback
}

// Register adds the built-in commands to the reserved namespace of r.
func Register(r *dispatchers.Registry, deps Deps) error {
	ns, err := r.ReservedNamespace()
	if err != nil {
		return err
	}

	for _, b := range builtins(r, deps) {
		cmd, err := ns.Register(b.signature)
		if err != nil {
			return fmt.Errorf("built-in %q: %w", b.signature, err)
		}
		cmd.SetDescription(b.description).SetCallbackAction(b.run)
	}
	return nil
}

func builtins(r *dispatchers.Registry, deps Deps) []builtin {
	return []builtin{
		{
			signature: "history {--Limit= : Number of entries to show (0 shows all)}" +
				" {--clear : Delete every recorded invocation} {--json : Print entries as JSON}",
			description: "Show recent command runs",
			run: func(_ context.Context, in *dispatchers.Input) error {
				return showHistory(in, deps)
			},
		},
		{
			signature: "config {key? : Preference to read or change} {value? : New value for the key}" +
				" {--unset : Remove the key from the preferences file}",
			description: "Read or change user preferences",
			run: func(_ context.Context, in *dispatchers.Input) error {
				return configure(in, deps)
			},
		},
		{
			signature: "logs {--Limit= : Number of lines to show}" +
				" {--clear : Empty the log file} {--json : Print entries as JSON}",
			description: "Show the log file",
			run: func(_ context.Context, in *dispatchers.Input) error {
				return showLogs(in, deps)
			},
		},
		{
			signature:   "theme {name? : Theme to switch to}",
			description: "List color themes or switch to one",
			run: func(_ context.Context, in *dispatchers.Input) error {
				return theme(in, deps)
			},
		},
		{
			signature:   "browse",
			description: "Browse every command interactively",
			run: func(ctx context.Context, _ *dispatchers.Input) error {
				return deps.Browse(ctx, r)
			},
		},
		{
			signature:   "version",
			description: "Show the version",
			run: func(_ context.Context, _ *dispatchers.Input) error {
				_, err := deps.Output.Printf("%s version %s\n", r.Program, deps.Version)
				return err
			},
		},
	}
}
