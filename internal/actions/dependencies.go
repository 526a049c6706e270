// Package actions implements the built-in commands of the reserved "cli"
// namespace.
package actions

import (
	"context"

	"github.com/footprint-tools/clikit/internal/browser"
	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/paths"
)

// Deps are the collaborators of the built-in commands.
type Deps struct {
	Output  domain.OutputWriter
	Styler  domain.Styler
	Config  domain.ConfigProvider
	History domain.InvocationStore // nil when the database could not be opened

	LogPath string
	Browse  func(ctx context.Context, r *dispatchers.Registry) error
	Version string
}

// DefaultDeps takes the collaborators from app.
func DefaultDeps(app *domain.Application, version string) Deps {
	return Deps{
		Output:  app.Output,
		Styler:  app.Styler,
		Config:  app.Config,
		History: app.History,
		LogPath: paths.LogFilePath(),
		Browse:  browser.Run,
		Version: version,
	}
}
