package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setupTempHome points HOME at a temporary directory for the test.
func setupTempHome(t *testing.T) string {
	t.Helper()
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	return tempHome
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name         string
		setupContent string
		wantLines    []string
	}{
		{
			name:         "single line",
			setupContent: "key=value\n",
			wantLines:    []string{"key=value"},
		},
		{
			name:         "multiple lines",
			setupContent: "key1=value1\nkey2=value2\nkey3=value3\n",
			wantLines:    []string{"key1=value1", "key2=value2", "key3=value3"},
		},
		{
			name:         "lines with comments",
			setupContent: "# Comment\nkey=value\n",
			wantLines:    []string{"# Comment", "key=value"},
		},
		{
			name:         "Windows CRLF line endings",
			setupContent: "key1=value1\r\nkey2=value2\r\n",
			wantLines:    []string{"key1=value1", "key2=value2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempHome := setupTempHome(t)
			configPath := filepath.Join(tempHome, ".clikitrc")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.setupContent), 0644))

			got, err := ReadLines()
			require.NoError(t, err)
			require.Equal(t, tt.wantLines, got)

			info, err := os.Stat(configPath)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())
		})
	}
}

func TestReadLines_InitializesDefaults(t *testing.T) {
	tempHome := setupTempHome(t)
	configPath := filepath.Join(tempHome, ".clikitrc")

	_, err := os.Stat(configPath)
	require.True(t, os.IsNotExist(err))

	lines, err := ReadLines()
	require.NoError(t, err)
	require.Equal(t, "# clikit configuration", lines[0])
	require.Contains(t, lines, "# Display")
	require.Contains(t, lines, "color=auto")
	require.Contains(t, lines, `pager="less -FRSX"`)
	require.Contains(t, lines, "# color_info=")

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, strings.Join(lines, "\n")+"\n", string(content))

	cfg, err := Parse(lines)
	require.NoError(t, err)
	require.Equal(t, "less -FRSX", cfg["pager"])
	require.NotContains(t, cfg, "color_info")
}

func TestWriteLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{
			name:  "empty lines",
			lines: []string{},
		},
		{
			name:  "single line",
			lines: []string{"key=value"},
		},
		{
			name:  "lines with comments",
			lines: []string{"# Comment", "key=value", "# Another comment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempHome := setupTempHome(t)

			require.NoError(t, WriteLines(tt.lines))

			configPath := filepath.Join(tempHome, ".clikitrc")
			content, err := os.ReadFile(configPath)
			require.NoError(t, err)

			expected := ""
			for _, line := range tt.lines {
				expected += line + "\n"
			}
			require.Equal(t, expected, string(content))

			info, err := os.Stat(configPath)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())

			leftovers, err := filepath.Glob(filepath.Join(tempHome, ".clikitrc.tmp.*"))
			require.NoError(t, err)
			require.Empty(t, leftovers)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name         string
		initialLines []string
		key          string
		value        string
		wantLines    []string
		wantUpdated  bool
	}{
		{
			name:         "add to empty",
			initialLines: []string{},
			key:          "color",
			value:        "never",
			wantLines:    []string{"color=never"},
		},
		{
			name:         "update existing key",
			initialLines: []string{"color=auto", "theme=default"},
			key:          "color",
			value:        "always",
			wantLines:    []string{"color=always", "theme=default"},
			wantUpdated:  true,
		},
		{
			name:         "preserves comments and blank lines",
			initialLines: []string{"# Comment", "", "color=auto"},
			key:          "theme",
			value:        "mono",
			wantLines:    []string{"# Comment", "", "color=auto", "theme=mono"},
		},
		{
			name:         "keeps inline comment",
			initialLines: []string{"color=auto # terminal default"},
			key:          "color",
			value:        "never",
			wantLines:    []string{"color=never # terminal default"},
			wantUpdated:  true,
		},
		{
			name:         "keeps comment after quoted value",
			initialLines: []string{`pager="less -R" # mine`},
			key:          "pager",
			value:        "cat",
			wantLines:    []string{"pager=cat # mine"},
			wantUpdated:  true,
		},
		{
			name:         "quotes values with spaces",
			initialLines: []string{"pager=cat"},
			key:          "pager",
			value:        "less -FRSX",
			wantLines:    []string{`pager="less -FRSX"`},
			wantUpdated:  true,
		},
		{
			name:         "commented key is not updated",
			initialLines: []string{"# color_info="},
			key:          "color_info",
			value:        "39",
			wantLines:    []string{"# color_info=", "color_info=39"},
		},
		{
			name:         "handles whitespace in existing line",
			initialLines: []string{"  color  =  auto  "},
			key:          "color",
			value:        "never",
			wantLines:    []string{"color=never"},
			wantUpdated:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, updated := Set(tt.initialLines, tt.key, tt.value)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantUpdated, updated)
		})
	}
}

func TestUnset(t *testing.T) {
	tests := []struct {
		name         string
		initialLines []string
		key          string
		wantLines    []string
		wantRemoved  bool
	}{
		{
			name:         "remove from empty",
			initialLines: []string{},
			key:          "color",
			wantLines:    []string{},
		},
		{
			name:         "remove existing key",
			initialLines: []string{"color=auto", "theme=mono"},
			key:          "color",
			wantLines:    []string{"theme=mono"},
			wantRemoved:  true,
		},
		{
			name:         "remove non-existent key",
			initialLines: []string{"color=auto"},
			key:          "theme",
			wantLines:    []string{"color=auto"},
		},
		{
			name:         "removes duplicates",
			initialLines: []string{"# Comment", "color=auto", "", "color=never"},
			key:          "color",
			wantLines:    []string{"# Comment", ""},
			wantRemoved:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := Unset(tt.initialLines, tt.key)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestProvider_SetUnset(t *testing.T) {
	tempHome := setupTempHome(t)
	require.NoError(t, WriteLines([]string{"# mine", "color=auto"}))

	p := NewProvider()

	require.NoError(t, p.Set("color", "never"))
	require.NoError(t, p.Set("pager", "less -R"))

	value, ok := p.Get("color")
	require.True(t, ok)
	require.Equal(t, "never", value)

	value, ok = p.Get("pager")
	require.True(t, ok)
	require.Equal(t, "less -R", value)

	require.NoError(t, p.Unset("pager"))
	value, ok = p.Get("pager")
	require.True(t, ok)
	require.Equal(t, "less -FRSX", value, "falls back to default")

	content, err := os.ReadFile(filepath.Join(tempHome, ".clikitrc"))
	require.NoError(t, err)
	require.Equal(t, "# mine\ncolor=never\n", string(content))

	_, err = os.Stat(filepath.Join(tempHome, ".clikitrc.lock"))
	require.True(t, os.IsNotExist(err), "lock is released")
}

func TestProvider_ConcurrentSet(t *testing.T) {
	setupTempHome(t)
	require.NoError(t, WriteLines([]string{"# concurrent"}))

	p := NewProvider()
	keys := []string{"color_success", "color_warning", "color_error", "color_info"}

	errs := make([]error, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = p.Set(key, string(rune('1'+i)))
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	all, err := p.GetAll()
	require.NoError(t, err)
	for i, key := range keys {
		require.Equal(t, string(rune('1'+i)), all[key])
	}
}

func TestWithLock_RemovesStaleLock(t *testing.T) {
	tempHome := setupTempHome(t)
	lockPath := filepath.Join(tempHome, ".clikitrc.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("12345"), 0600))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(lockPath, old, old))

	ran := false
	require.NoError(t, WithLock(func() error {
		ran = true
		return nil
	}))
	require.True(t, ran)
	require.NoFileExists(t, lockPath)
}
