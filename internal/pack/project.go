package pack

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFileName is the project configuration file looked up in the
// project root.
const ProjectFileName = "packsmith.toml"

// Errors returned by project loading.
var (
	// ErrNoProjectFile indicates the project directory has no
	// configuration file.
	ErrNoProjectFile = errors.New("project file not found")

	// ErrUnknownPackType indicates the project file maps an
	// unrecognized pack category.
	ErrUnknownPackType = errors.New("unknown pack type")
)

// Project describes an open asset project: where it lives and where
// each pack category is rooted inside it.
//
// All pack roots and resolved prefixes use forward slashes relative to
// the project root, matching how definition scope and matcher templates
// are written.
type Project struct {
	// Name is the human-readable project name.
	Name string `toml:"name"`

	// Packs maps each pack category to its root directory,
	// relative to the project root.
	Packs map[Type]string `toml:"packs"`
}

// LoadProject reads the project file from dir.
// Returns ErrNoProjectFile if the file does not exist.
func LoadProject(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoProjectFile, dir)
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return ParseProject(data)
}

// ParseProject parses project configuration from TOML data.
func ParseProject(data []byte) (*Project, error) {
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	for t := range p.Packs {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPackType, t)
		}
	}
	return &p, nil
}

// PackRoot returns the root directory of the given category, relative
// to the project root, and whether the project declares that category.
func (p *Project) PackRoot(t Type) (string, bool) {
	root, ok := p.Packs[t]
	return root, ok
}

// ResolvePrefix expands a (category, template) pair into a concrete
// project-relative path prefix.
//
// With TypeNone the template itself is the prefix. With a declared
// category the template is joined onto that category's pack root. An
// undeclared or unknown category yields "", meaning the template cannot
// currently be resolved.
func (p *Project) ResolvePrefix(t Type, template string) string {
	template = strings.TrimPrefix(template, "/")
	if t == TypeNone {
		return path.Clean(template)
	}
	root, ok := p.Packs[t]
	if !ok {
		return ""
	}
	return path.Join(root, template)
}
