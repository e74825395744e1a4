package filetype

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/dshills/packsmith/internal/pack"
)

// UnknownID is the sentinel returned by ID for an unmatched path.
const UnknownID = "unknown"

// jsonExt is the literal extension used by the JSON heuristics.
const jsonExt = ".json"

// PathResolver expands a (category, template) pair into a concrete
// project-relative path prefix. It must be deterministic for a given
// category, template and project state. An empty result means the
// template cannot currently be resolved.
//
// Implemented by pack.Project.
type PathResolver interface {
	ResolvePrefix(t pack.Type, template string) string
}

// Query selects what to resolve. At least one field should be set for
// a meaningful result.
type Query struct {
	// Path is the project-relative path to classify.
	Path string

	// ID, when set, returns the definition with that id, bypassing
	// its detection rules. The id is checked per definition inside
	// the priority scan, so an earlier definition matching Path by
	// its rules still wins over a later id match.
	ID string
}

// Resolver is the file type matching engine.
//
// The registry is an explicit dependency: resolution scans a snapshot
// of it, so concurrent registry mutation never corrupts a scan, but
// two scans around a mutation may observe different definition sets.
type Resolver struct {
	reg   *Registry
	paths PathResolver
}

// NewResolver creates a resolver over reg. paths may be nil, in which
// case no scope or matcher template can be expanded and resolution
// only succeeds through explicit id queries.
func NewResolver(reg *Registry, paths PathResolver) *Resolver {
	return &Resolver{reg: reg, paths: paths}
}

// Get scans definitions in priority order and returns the first match,
// or nil when nothing matches. A nil result is a normal outcome, not
// an error.
//
// Get fails only on a malformed definition: one declaring neither
// scope nor matcher aborts the scan with ErrInvalidDefinition the
// moment it is reached.
func (r *Resolver) Get(q Query) (*Definition, error) {
	ext := path.Ext(q.Path)

	for _, def := range r.reg.scan() {
		if q.ID != "" && def.ID == q.ID {
			return &def, nil
		}
		if q.Path == "" {
			continue
		}

		var rules DetectRules
		if def.Detect != nil {
			rules = *def.Detect
		}

		if len(rules.FileExtensions) > 0 && !slices.Contains(rules.FileExtensions, ext) {
			continue
		}

		switch {
		case len(rules.Scope) > 0:
			for _, prefix := range r.expand(rules.PackTypes, rules.Scope) {
				if strings.HasPrefix(q.Path, prefix) {
					return &def, nil
				}
			}
		case len(rules.Matcher) > 0:
			ok, err := matchAny(q.Path, r.expand(rules.PackTypes, rules.Matcher))
			if err != nil {
				return nil, fmt.Errorf("file type %q: %w", def.ID, err)
			}
			if ok {
				return &def, nil
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidDefinition, def.ID)
		}
	}

	return nil, nil
}

// expand resolves templates against the pack categories. With no
// categories each template yields one category-less expansion; with
// categories the full cross product is produced, categories outermost.
// Unresolvable templates are dropped, so with no project context the
// result is empty and nothing can match.
func (r *Resolver) expand(types []pack.Type, templates []string) []string {
	if r.paths == nil {
		return nil
	}

	var out []string
	appendResolved := func(t pack.Type, template string) {
		if resolved := r.paths.ResolvePrefix(t, template); resolved != "" {
			out = append(out, resolved)
		}
	}

	if len(types) == 0 {
		for _, template := range templates {
			appendResolved(pack.TypeNone, template)
		}
		return out
	}
	for _, t := range types {
		for _, template := range templates {
			appendResolved(t, template)
		}
	}
	return out
}

// matchAny reports whether p satisfies any of the glob patterns.
func matchAny(p string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
		if g.Match(p) {
			return true, nil
		}
	}
	return false, nil
}

// ID returns the id of the definition matching path, or UnknownID when
// nothing matches. An unmatched path is never an error.
func (r *Resolver) ID(path string) (string, error) {
	def, err := r.Get(Query{Path: path})
	if err != nil {
		return "", err
	}
	if def == nil {
		return UnknownID, nil
	}
	return def.ID, nil
}

// IsJSONFile classifies path as JSON or not. A matched definition with
// an explicit language wins; otherwise the literal extension decides,
// so the classification is defined even for unmatched paths.
func (r *Resolver) IsJSONFile(path string) (bool, error) {
	def, err := r.Get(Query{Path: path})
	if err != nil {
		return false, err
	}
	if def != nil && def.Meta.Language != "" {
		return def.Meta.Language == "json", nil
	}
	return strings.HasSuffix(path, jsonExt), nil
}
