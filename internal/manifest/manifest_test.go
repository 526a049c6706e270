package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/proc"
)

const tomlManifest = `
name = "proj"

[[namespace]]
prefix = "db"
description = "Database tasks"

[[command]]
signature = "migrate {steps?} {--dry-run}"
namespace = "db"
description = "Run migrations"
run = "go run ./cmd/migrate {steps} {--dry-run} ..."

[[command]]
signature = "greet {name}"
run = ["echo", "hello world", "{name}"]

[[command]]
signature = "todo"
`

const yamlManifest = `
name: proj
namespace:
  - prefix: db
    description: Database tasks
command:
  - signature: migrate {steps?} {--dry-run}
    namespace: db
    description: Run migrations
    run: go run ./cmd/migrate {steps} {--dry-run} ...
  - signature: greet {name}
    run: [echo, "hello world", "{name}"]
  - signature: todo
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode_FormatsAgree(t *testing.T) {
	fromTOML, err := Decode(strings.NewReader(tomlManifest), TOML)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(yamlManifest), YAML)
	require.NoError(t, err)

	require.Equal(t, fromTOML, fromYAML)
	require.Equal(t, "proj", fromTOML.Program())
	require.Equal(t, []NamespaceEntry{{Prefix: "db", Description: "Database tasks"}}, fromTOML.Namespaces)
	require.Len(t, fromTOML.Commands, 3)
	require.Equal(t, Run{"go", "run", "./cmd/migrate", "{steps}", "{--dry-run}", "..."}, fromTOML.Commands[0].Run)
	require.Equal(t, Run{"echo", "hello world", "{name}"}, fromTOML.Commands[1].Run)
	require.Nil(t, fromTOML.Commands[2].Run)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantErr string
	}{
		{"toml unknown key", TOML, "nmae = \"x\"", "nmae"},
		{"yaml unknown key", YAML, "nmae: x", "nmae"},
		{"toml run number", TOML, "[[command]]\nsignature = \"a\"\nrun = 3", "run"},
		{"yaml run list of maps", YAML, "command:\n  - signature: a\n    run: [{a: b}]", "run[0]"},
		{"toml syntax", TOML, "name = ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	m, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	require.Equal(t, DefaultProgram, m.Program())
}

func TestRun_Parts(t *testing.T) {
	run := Run{"go", "test", "{pkg}", "{--verbose}", "..."}
	require.Equal(t, []proc.Part{
		proc.Literal("go"), proc.Literal("test"), proc.Arg("pkg"), proc.Opt("verbose"), proc.Rest,
	}, run.Parts())
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a/clikit.toml": TOML, "clikit.YAML": YAML, "x.yml": YAML} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		require.Equal(t, want, got, path)
	}
	_, err := FormatOf("clikit.json")
	require.Error(t, err)
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "clikit.yaml", yamlManifest)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Find(nested)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFind_PrefersTOML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "clikit.yml", yamlManifest)
	want := writeFile(t, root, "clikit.toml", tomlManifest)

	got, err := Find(root)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLocate(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "clikit.toml", tomlManifest)
	elsewhere := t.TempDir()

	t.Run("root overrides cwd", func(t *testing.T) {
		loc, err := Locate(project, elsewhere)
		require.NoError(t, err)
		require.Equal(t, project, loc.Dir)
		require.Equal(t, "proj", loc.Manifest.Program())
	})

	t.Run("root without manifest", func(t *testing.T) {
		_, err := Locate(elsewhere, project)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("walks up from cwd", func(t *testing.T) {
		sub := filepath.Join(project, "sub")
		require.NoError(t, os.Mkdir(sub, 0o755))
		loc, err := Locate("", sub)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(project, "clikit.toml"), loc.Path)
	})

	t.Run("parse error names the file", func(t *testing.T) {
		broken := t.TempDir()
		path := writeFile(t, broken, "clikit.toml", "name = ")
		_, err := Locate(broken, "")
		require.ErrorContains(t, err, path)
	})
}

func TestRegister(t *testing.T) {
	m, err := Decode(strings.NewReader(tomlManifest), TOML)
	require.NoError(t, err)

	r := dispatchers.NewRegistry(m.Program())
	require.NoError(t, m.Register(r))

	ns, ok := r.Namespace("db")
	require.True(t, ok)
	require.Equal(t, "Database tasks", ns.Description)

	migrate, ok := ns.Lookup("migrate")
	require.True(t, ok)
	require.Equal(t, "Run migrations", migrate.Description)
	require.Equal(t, dispatchers.ActionSubprocess, migrate.Action.Kind)
	require.Len(t, migrate.Action.Parts, 6)

	todo, ok := r.Lookup("todo")
	require.True(t, ok)
	require.Equal(t, dispatchers.ActionUnset, todo.Action.Kind)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
		wantIs   error
		wantMsg  string
	}{
		{
			name:     "unknown namespace",
			manifest: Manifest{Commands: []CommandEntry{{Signature: "a", Namespace: "nope"}}},
			wantMsg:  `command 0 ("a"): unknown namespace "nope"`,
		},
		{
			name:     "reserved namespace",
			manifest: Manifest{Commands: []CommandEntry{{Signature: "a", Namespace: "cli"}}},
			wantIs:   dispatchers.ErrReservedName,
		},
		{
			name:     "reserved prefix",
			manifest: Manifest{Namespaces: []NamespaceEntry{{Prefix: "cli"}}},
			wantIs:   dispatchers.ErrReservedName,
			wantMsg:  `namespace 0 ("cli")`,
		},
		{
			name: "duplicate command",
			manifest: Manifest{Commands: []CommandEntry{
				{Signature: "build"},
				{Signature: "build {target}"},
			}},
			wantIs:  dispatchers.ErrDuplicateCommand,
			wantMsg: `command 1 ("build {target}")`,
		},
		{
			name:     "bad signature",
			manifest: Manifest{Commands: []CommandEntry{{Signature: "build {target"}}},
			wantMsg:  `command 0 ("build {target")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dispatchers.NewRegistry("app")
			_, err := r.ReservedNamespace()
			require.NoError(t, err)

			err = tt.manifest.Register(r)
			require.Error(t, err)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
			require.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
