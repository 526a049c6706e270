// Package paths locates the per-user files: the preferences file in the
// home directory, the log in the user config directory and the history
// database in the local data directory.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appDirName     = "clikit"
	configFileName = ".clikitrc"
	logFileName    = "clikit.log"
	historyDBName  = "history.db"
)

// AppDataDir returns <os.UserConfigDir>/clikit, creating it with 0700.
// It falls back to "." when no config directory can be determined.
func AppDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return ensure(filepath.Join(base, appDirName))
}

// AppLocalDataDir returns the machine-local data directory:
//   - macOS: ~/Library/Application Support/clikit
//   - Linux: $XDG_DATA_HOME/clikit or ~/.local/share/clikit
//   - Windows: %LOCALAPPDATA%\clikit
func AppLocalDataDir() string {
	base := localDataBase()
	if base == "" {
		return "."
	}
	return filepath.Join(base, appDirName)
}

func localDataBase() string {
	var env string
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "LOCALAPPDATA", []string{"AppData", "Local"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// ConfigFilePath returns ~/.clikitrc.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

func LogFilePath() string {
	return filepath.Join(AppDataDir(), logFileName)
}

// HistoryDBPath returns the invocation history database, creating its
// directory if needed.
func HistoryDBPath() string {
	return filepath.Join(ensure(AppLocalDataDir()), historyDBName)
}

func ensure(dir string) string {
	_ = os.MkdirAll(dir, 0700)
	return dir
}
