// Package cli assembles the command registry for one process: the
// built-in commands plus whatever the project manifest declares.
package cli

import (
	"errors"
	"fmt"

	"github.com/footprint-tools/clikit/internal/actions"
	"github.com/footprint-tools/clikit/internal/dispatchers"
	"github.com/footprint-tools/clikit/internal/manifest"
)

// Project is the manifest found for this run, if any.
type Project struct {
	// Root is the manifest's directory, or the working directory when
	// there is no manifest. Subprocess actions run here.
	Root     string
	Path     string
	Manifest *manifest.Manifest
}

// Program is the name shown in help and error messages.
func (p *Project) Program() string {
	return p.Manifest.Program()
}

// FindProject loads the manifest. With root set (from CLIKIT_ROOT) the
// manifest must be in that directory; otherwise a missing manifest is
// not an error and only the built-ins are available.
func FindProject(root, cwd string) (*Project, error) {
	loc, err := manifest.Locate(root, cwd)
	if errors.Is(err, manifest.ErrNotFound) && root == "" {
		return &Project{Root: cwd}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Project{Root: loc.Dir, Path: loc.Path, Manifest: loc.Manifest}, nil
}

// BuildRegistry registers the built-ins and then the manifest entries.
func BuildRegistry(p *Project, deps actions.Deps) (*dispatchers.Registry, error) {
	r := dispatchers.NewRegistry(p.Program())

	if err := actions.Register(r, deps); err != nil {
		return nil, err
	}
	if p.Manifest != nil {
		if err := p.Manifest.Register(r); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path, err)
		}
	}
	return r, nil
}
