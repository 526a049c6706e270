// Package manifest locates and decodes the project manifest that declares
// a project's namespaces and commands.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/proc"
)

// DefaultProgram names the program when the manifest does not.
const DefaultProgram = "clikit"

// FileNames are searched in order in every directory.
var FileNames = []string{"clikit.toml", "clikit.yaml", "clikit.yml"}

// ErrNotFound is returned when no manifest exists on the searched path.
var ErrNotFound = errors.New("no clikit manifest found")

// Format is the encoding of a manifest file.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("manifest %s: unsupported extension", path)
	}
}

// Manifest is the decoded project file.
type Manifest struct {
	Name       string           `toml:"name" yaml:"name"`
	Namespaces []NamespaceEntry `toml:"namespace" yaml:"namespace"`
	Commands   []CommandEntry   `toml:"command" yaml:"command"`
}

type NamespaceEntry struct {
	Prefix      string `toml:"prefix" yaml:"prefix"`
	Description string `toml:"description" yaml:"description"`
}

type CommandEntry struct {
	Signature   string `toml:"signature" yaml:"signature"`
	Namespace   string `toml:"namespace" yaml:"namespace"`
	Description string `toml:"description" yaml:"description"`
	Run         Run    `toml:"run" yaml:"run"`
}

// Program returns the declared name or DefaultProgram.
func (m *Manifest) Program() string {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return DefaultProgram
	}
	return strings.TrimSpace(m.Name)
}

// Run is a subprocess action. A string is split on whitespace; a list
// keeps each element as one word. Words of the form "...", "{name}" and
// "{--name}" become placeholders.
type Run []string

// Parts converts the words into action parts.
func (r Run) Parts() []proc.Part {
	parts := make([]proc.Part, 0, len(r))
	for _, w := range r {
		parts = append(parts, proc.Placeholder(w))
	}
	return parts
}

func (r *Run) set(v any) error {
	switch v := v.(type) {
	case nil:
		*r = nil
	case string:
		*r = strings.Fields(v)
	case []any:
		words := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("run[%d]: expected a string, got %T", i, item)
			}
			words = append(words, s)
		}
		*r = words
	default:
		return fmt.Errorf("run: expected a string or a list of strings, got %T", v)
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (r *Run) UnmarshalTOML(v any) error {
	return r.set(v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Run) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return r.set(v)
}

// Decode reads a manifest. Unknown keys are errors.
func Decode(rd io.Reader, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case TOML:
		md, err := toml.NewDecoder(rd).Decode(&m)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(rd)
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %d", format)
	}

	return &m, nil
}

// Load decodes the manifest at path, choosing the format by extension.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	m, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Find walks up from startDir and returns the first manifest file found.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		if path, err := findIn(dir); !errors.Is(err, ErrNotFound) {
			return path, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

func findIn(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", ErrNotFound
}

// Location is a loaded manifest and the project root it was found in.
type Location struct {
	Path     string
	Dir      string
	Manifest *Manifest
}

// Locate finds and loads the manifest. When root is non-empty only that
// directory is searched; otherwise the search walks up from cwd.
func Locate(root, cwd string) (*Location, error) {
	var (
		path string
		err  error
	)
	if root != "" {
		path, err = findIn(root)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, root)
		}
	} else {
		path, err = Find(cwd)
	}
	if err != nil {
		return nil, err
	}

	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Location{Path: path, Dir: filepath.Dir(path), Manifest: m}, nil
}

// Register adds the manifest's namespaces and commands to r. Errors name
// the offending entry by index.
func (m *Manifest) Register(r *dispatchers.Registry) error {
	for i, entry := range m.Namespaces {
		if _, err := r.CreateNamespace(entry.Prefix, entry.Description); err != nil {
			return fmt.Errorf("namespace %d (%q): %w", i, entry.Prefix, err)
		}
	}

	for i, entry := range m.Commands {
		if err := entry.register(r); err != nil {
			return fmt.Errorf("command %d (%q): %w", i, entry.Signature, err)
		}
	}
	return nil
}

func (c CommandEntry) register(r *dispatchers.Registry) error {
	ns := r.Default()
	if c.Namespace != "" {
		var ok bool
		ns, ok = r.Namespace(c.Namespace)
		if !ok {
			return fmt.Errorf("unknown namespace %q", c.Namespace)
		}
		if ns.Reserved() {
			return fmt.Errorf("%w: '%s'", dispatchers.ErrReservedName, c.Namespace)
		}
	}

	b, err := ns.Register(c.Signature)
	if err != nil {
		return err
	}
	b.SetDescription(c.Description)
	if len(c.Run) > 0 {
		b.SetSubprocessAction(c.Run.Parts()...)
	}
	return nil
}
