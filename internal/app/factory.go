// Package app wires the process-wide collaborators from user preferences.
package app

import (
	"os"

	"golang.org/x/term"

	"github.com/footprint-tools/clikit/internal/config"
	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/history"
	"github.com/footprint-tools/clikit/internal/log"
	"github.com/footprint-tools/clikit/internal/paths"
	"github.com/footprint-tools/clikit/internal/ui"
	"github.com/footprint-tools/clikit/internal/ui/style"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

// Options configures the application factory.
type Options struct {
	// InvocationID tags log lines written during this run.
	InvocationID string

	// IsTerminal reports whether stdout is a terminal; it decides "auto" color.
	IsTerminal bool

	LogPath     string
	HistoryPath string
}

// DefaultOptions returns options for the real process.
func DefaultOptions(invocationID string) Options {
	return Options{
		InvocationID: invocationID,
		IsTerminal:   term.IsTerminal(int(os.Stdout.Fd())),
		LogPath:      paths.LogFilePath(),
		HistoryPath:  paths.HistoryDBPath(),
	}
}

// New creates an Application with all dependencies wired up. Failing to
// open the log file or the history database is not fatal.
func New(opts Options) (*domain.Application, error) {
	cfg := config.NewProvider()
	values, err := cfg.GetAll()
	if err != nil {
		return nil, err
	}

	logger := newLogger(opts, values)
	log.SetDefault(logger)

	style.Init(style.ShouldEnable(values["color"], opts.IsTerminal), values)

	var store domain.InvocationStore
	if opts.HistoryPath != "" {
		s, err := history.Open(opts.HistoryPath)
		if err != nil {
			logger.Warn("history: %v", err)
		} else {
			store = s
		}
	}

	return &domain.Application{
		Config:  cfg,
		Logger:  logger,
		Output:  ui.NewWriter(ui.WithConfigGetter(cfg.Get)),
		Styler:  style.NewStyler(),
		History: store,
	}, nil
}

func newLogger(opts Options, values map[string]string) domain.Logger {
	if values["enable_log"] != "true" || opts.LogPath == "" {
		return log.NopLogger{}
	}
	l, err := log.New(opts.LogPath, log.ParseLevel(values["log_level"]), log.WithInvocation(opts.InvocationID))
	if err != nil {
		return log.NopLogger{}
	}
	return l
}

// Recorder returns the store invocations are recorded to, or nil when the
// history preference is off or the database is unavailable.
func Recorder(app *domain.Application) domain.InvocationRecorder {
	if app.History == nil {
		return nil
	}
	if v, _ := app.Config.Get("history"); v != "true" {
		return nil
	}
	return app.History
}

// NewForTesting creates an Application with no styling, no pager, no log
// file and no history.
func NewForTesting() *domain.Application {
	return &domain.Application{
		Config: config.NewProvider(),
		Logger: log.NopLogger{},
		Output: ui.NewWriter(ui.WithPagerDisabled()),
		Styler: style.NopStyler{},
	}
}

// Close cleans up application resources.
func Close(app *domain.Application) error {
	if app.History != nil {
		_ = app.History.Close()
	}
	if app.Logger != nil {
		_ = app.Logger.Close()
	}
	return nil
}
