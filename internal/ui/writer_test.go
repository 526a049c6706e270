package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_PrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	_, err := w.Printf("%s=%d\n", "a", 1)
	require.NoError(t, err)
	_, err = w.Println("b", 2)
	require.NoError(t, err)
	_, err = w.Write([]byte("c"))
	require.NoError(t, err)

	require.Equal(t, "a=1\nb 2\nc", buf.String())
}

func TestWriter_PagerWritesDirectlyToBuffers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, WithConfigGetter(func(string) (string, bool) { return "less", true }))

	w.Pager("help text\n")
	require.Equal(t, "help text\n", buf.String())
}

func TestWriter_PagerCommand(t *testing.T) {
	tests := []struct {
		name     string
		opts     []WriterOption
		env      map[string]string
		terminal bool
		want     []string
	}{
		{
			name:     "not a terminal",
			terminal: false,
			want:     nil,
		},
		{
			name:     "disabled by option",
			opts:     []WriterOption{WithPagerDisabled()},
			terminal: true,
			want:     nil,
		},
		{
			name:     "disabled by environment",
			env:      map[string]string{EnvNoPager: "1"},
			terminal: true,
			want:     nil,
		},
		{
			name:     "default pager",
			terminal: true,
			want:     []string{"less", "-FRSX"},
		},
		{
			name:     "PAGER environment",
			env:      map[string]string{"PAGER": "more -s"},
			terminal: true,
			want:     []string{"more", "-s"},
		},
		{
			name:     "config beats PAGER",
			opts:     []WriterOption{WithConfigGetter(func(string) (string, bool) { return "less -R", true })},
			env:      map[string]string{"PAGER": "more"},
			terminal: true,
			want:     []string{"less", "-R"},
		},
		{
			name:     "cat bypasses",
			opts:     []WriterOption{WithConfigGetter(func(string) (string, bool) { return "cat", true })},
			terminal: true,
			want:     nil,
		},
		{
			name:     "empty config falls through",
			opts:     []WriterOption{WithConfigGetter(func(string) (string, bool) { return " ", true })},
			env:      map[string]string{"PAGER": "cat"},
			terminal: true,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]WriterOption{
				WithEnvGetter(func(k string) string { return tt.env[k] }),
			}, tt.opts...)
			w := NewWriterTo(os.Stdout, opts...)
			w.isTerminal = func(int) bool { return tt.terminal }

			require.Equal(t, tt.want, w.pagerCommand())
		})
	}
}
