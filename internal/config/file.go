package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/clikit/internal/domain"
	"github.com/footprint-tools/clikit/internal/log"
	"github.com/footprint-tools/clikit/internal/paths"
)

const (
	lockSuffix   = ".lock"
	lockWait     = 5 * time.Second
	lockStaleAge = 30 * time.Second
	lockPoll     = 50 * time.Millisecond
)

// ErrLockTimeout is returned when another process holds the preferences
// lock for longer than the wait period.
var ErrLockTimeout = errors.New("config: lock timeout")

// ReadLines returns the raw lines of ~/.clikitrc. A missing or empty file
// is seeded with the commented defaults.
func ReadLines() ([]string, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if len(data) == 0 {
		lines := defaultLines()
		if err := WriteLines(lines); err != nil {
			log.Warn("config: could not write default preferences: %v", err)
		}
		return lines, nil
	}

	if err := os.Chmod(path, 0600); err != nil {
		log.Warn("config: could not restrict permissions on %s: %v", path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// defaultLines renders every visible key with its default, grouped by
// section. Optional overrides are left commented out.
func defaultLines() []string {
	lines := []string{
		"# clikit configuration",
		"# Edit values below or use: clikit cli config <key> <value>",
	}

	section := ""
	for _, key := range domain.ConfigKeys {
		if key.Hidden {
			continue
		}
		if key.Section != section {
			section = key.Section
			lines = append(lines, "", "# "+section)
		}
		if key.HideIfEmpty {
			lines = append(lines, "# "+key.Name+"=")
		} else {
			lines = append(lines, key.Name+"="+formatValue(key.Default))
		}
	}
	return lines
}

// WriteLines replaces ~/.clikitrc with lines. The content goes to a
// temporary file in the same directory that is then renamed over it.
func WriteLines(lines []string) error {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return writeAtomic(path, []byte(b.String()))
}

func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0600); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// WithLock runs fn while holding ~/.clikitrc.lock, so concurrent runs of
// the program do not lose each other's edits.
func WithLock(fn func() error) error {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}

	lock, err := acquire(path + lockSuffix)
	if err != nil {
		return err
	}
	defer lock.release()

	return fn()
}

type fileLock struct {
	path string
	file *os.File
}

// acquire creates path exclusively, polling until lockWait has passed. A
// lock file older than lockStaleAge is assumed abandoned and removed.
func acquire(path string) (*fileLock, error) {
	deadline := time.Now().Add(lockWait)

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			return &fileLock{path: path, file: f}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("config: create lock: %w", err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > lockStaleAge {
			log.Warn("config: removing stale lock %s", path)
			_ = os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		time.Sleep(lockPoll)
	}
}

func (l *fileLock) release() {
	_ = l.file.Close()
	_ = os.Remove(l.path)
}
