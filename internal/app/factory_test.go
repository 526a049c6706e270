package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/log"
	"github.com/footprint-tools/clikit/internal/ui/style"
)

func setupHome(t *testing.T, rc string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLIKIT_NO_COLOR", "")
	if rc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(home, ".clikitrc"), []byte(rc), 0o600))
	}
	t.Cleanup(func() { log.SetDefault(nil) })
	return home
}

func testOptions(dir string) Options {
	return Options{
		InvocationID: "0123456789abcdef",
		LogPath:      filepath.Join(dir, "clikit.log"),
		HistoryPath:  filepath.Join(dir, "history.db"),
	}
}

func TestNewForTesting(t *testing.T) {
	app := NewForTesting()

	require.NotNil(t, app.Config)
	require.NotNil(t, app.Logger)
	require.NotNil(t, app.Output)
	require.NotNil(t, app.Styler)
	require.Nil(t, app.History)
	require.NoError(t, Close(app))
}

func TestClose_NilComponents(t *testing.T) {
	require.NoError(t, Close(&domain.Application{}))
}

func TestNew(t *testing.T) {
	setupHome(t, "")
	dir := t.TempDir()

	app, err := New(testOptions(dir))
	require.NoError(t, err)
	defer func() { _ = Close(app) }()

	require.NotNil(t, app.History)
	require.NotNil(t, Recorder(app))
	require.FileExists(t, filepath.Join(dir, "history.db"))

	// enable_log defaults to true.
	app.Logger.Warn("hello")
	data, err := os.ReadFile(filepath.Join(dir, "clikit.log"))
	require.NoError(t, err)
	require.Contains(t, string(data), "WARN [01234567]: hello")
}

func TestNew_LogDisabled(t *testing.T) {
	setupHome(t, "enable_log=false\n")
	dir := t.TempDir()

	app, err := New(testOptions(dir))
	require.NoError(t, err)
	defer func() { _ = Close(app) }()

	require.IsType(t, log.NopLogger{}, app.Logger)
	require.NoFileExists(t, filepath.Join(dir, "clikit.log"))
}

func TestNew_LogLevel(t *testing.T) {
	setupHome(t, "log_level=error\n")
	dir := t.TempDir()

	app, err := New(testOptions(dir))
	require.NoError(t, err)
	defer func() { _ = Close(app) }()

	app.Logger.Warn("dropped")
	app.Logger.Error("kept")
	data, err := os.ReadFile(filepath.Join(dir, "clikit.log"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "dropped")
	require.Contains(t, string(data), "kept")
}

func TestNew_Color(t *testing.T) {
	tests := []struct {
		name     string
		rc       string
		terminal bool
		want     bool
	}{
		{"auto on terminal", "", true, true},
		{"auto redirected", "", false, false},
		{"always", "color=always\n", false, true},
		{"never", "color=never\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t, tt.rc)
			opts := testOptions(t.TempDir())
			opts.IsTerminal = tt.terminal

			app, err := New(opts)
			require.NoError(t, err)
			defer func() { _ = Close(app) }()

			require.Equal(t, tt.want, style.Enabled())
			require.Equal(t, tt.want, app.Styler.Enabled())
		})
	}
}

func TestNew_HistoryUnavailable(t *testing.T) {
	setupHome(t, "")
	opts := testOptions(t.TempDir())
	opts.HistoryPath = filepath.Join(t.TempDir(), "missing", "dir", "history.db")

	app, err := New(opts)
	require.NoError(t, err)
	defer func() { _ = Close(app) }()

	require.Nil(t, app.History)
	require.Nil(t, Recorder(app))
}

func TestRecorder_HistoryOff(t *testing.T) {
	setupHome(t, "history=false\n")

	app, err := New(testOptions(t.TempDir()))
	require.NoError(t, err)
	defer func() { _ = Close(app) }()

	require.NotNil(t, app.History, "the store stays open so history can still be viewed")
	require.Nil(t, Recorder(app))
}
