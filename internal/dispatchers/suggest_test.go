package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{
			name: "identical strings",
			a:    "build",
			b:    "build",
			want: 0,
		},
		{
			name: "one character difference",
			a:    "build",
			b:    "builds",
			want: 1,
		},
		{
			name: "typo - transposition",
			a:    "build",
			b:    "biuld",
			want: 2,
		},
		{
			name: "typo - substitution",
			a:    "deploy",
			b:    "delpoy",
			want: 2,
		},
		{
			name: "completely different",
			a:    "build",
			b:    "xyz123",
			want: 6,
		},
		{
			name: "empty string a",
			a:    "",
			b:    "build",
			want: 5,
		},
		{
			name: "empty string b",
			a:    "build",
			b:    "",
			want: 5,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "case insensitive",
			a:    "BUILD",
			b:    "build",
			want: 0,
		},
		{
			name: "missing letter",
			a:    "migrate",
			b:    "migrte",
			want: 1,
		},
		{
			name: "extra letter",
			a:    "migrate",
			b:    "miggrate",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levenshtein(tt.a, tt.b)
			require.Equal(t, tt.want, got)
		})
	}
}

var suggestNames = []string{"build", "deploy", "test", "lint", "serve", "db", "cli"}

func TestFindSimilarCommands(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxResults int
		want       []string
	}{
		{
			name:       "missing letter",
			input:      "buld",
			maxResults: 3,
			want:       []string{"build", "cli"},
		},
		{
			name:       "substitution",
			input:      "deploi",
			maxResults: 3,
			want:       []string{"deploy"},
		},
		{
			name:       "transposition",
			input:      "tset",
			maxResults: 3,
			want:       []string{"test", "lint"},
		},
		{
			name:       "ties sorted alphabetically and limited",
			input:      "lnt",
			maxResults: 3,
			want:       []string{"lint", "cli", "db"},
		},
		{
			name:       "completely different returns nothing",
			input:      "xyz123",
			maxResults: 3,
			want:       []string{},
		},
		{
			name:       "exact match is not suggested",
			input:      "build",
			maxResults: 3,
			want:       []string{},
		},
		{
			name:       "limit of one",
			input:      "srve",
			maxResults: 1,
			want:       []string{"serve"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, suggestNames, tt.maxResults)

			if len(tt.want) == 0 {
				require.Empty(t, got)
			} else {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFindSimilarCommands_NoNames(t *testing.T) {
	require.Empty(t, FindSimilarCommands("build", nil, 3))
}

func TestFindSimilarCommands_NamespaceCommands(t *testing.T) {
	r := NewRegistry("app")
	ns, err := r.CreateNamespace("db", "Database")
	require.NoError(t, err)
	for _, src := range []string{"migrate", "seed", "reset"} {
		_, err := ns.Register(src)
		require.NoError(t, err)
	}

	got := FindSimilarCommands("migrat", ns.Names(), 3)
	require.Equal(t, []string{"migrate"}, got)
}
