package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/footprint-tools/clikit/internal/actions"
	"github.com/footprint-tools/clikit/internal/app"
	"github.com/footprint-tools/clikit/internal/cli"
	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/manifest"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stderr io.Writer) int {
	cwd, err := os.Getwd()
	if err != nil {
		return fail(stderr, manifest.DefaultProgram, err)
	}

	project, err := cli.FindProject(getenv(dispatchers.EnvProjectRoot), cwd)
	if err != nil {
		return fail(stderr, manifest.DefaultProgram, err)
	}

	id := uuid.NewString()
	application, err := app.New(app.DefaultOptions(id))
	if err != nil {
		return fail(stderr, project.Program(), err)
	}
	defer func() { _ = app.Close(application) }()

	registry, err := cli.BuildRegistry(project, actions.DefaultDeps(application, app.Version))
	if err != nil {
		return fail(stderr, project.Program(), err)
	}

	application.Logger.Debug("main: %s %s, project root %s", project.Program(), app.Version, project.Root)

	d := dispatchers.NewDispatcher(registry, application.Output)
	d.Err = stderr
	d.Styler = application.Styler
	d.Logger = application.Logger
	d.Recorder = app.Recorder(application)
	d.ProjectRoot = project.Root
	d.InvocationID = id
	return d.Run(ctx, args)
}

func fail(w io.Writer, program string, err error) int {
	fmt.Fprintf(w, "%s: %v\n", program, err)
	return 1
}
