// Package loader reads file type definitions from JSON documents.
//
// Each definition lives in its own document. Loading a directory
// yields the built-in definition sequence: documents are ordered by
// descending priority, ties broken by file name, so the sequence is
// deterministic across runs and the order doubles as the resolution
// priority order.
package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/packsmith/internal/filetype"
	"github.com/dshills/packsmith/internal/pack"
)

// FileSystem abstracts file access for testing with in-memory trees.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// ParseError describes a malformed definition document.
type ParseError struct {
	// Path is the document that failed to parse.
	Path string
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// Loader reads definition documents from one or more directories.
type Loader struct {
	fs   FileSystem
	dirs []string
}

// New creates a loader over the OS file system.
func New(dirs ...string) *Loader {
	return NewWithFS(OSFS{}, dirs...)
}

// NewWithFS creates a loader over a custom file system.
func NewWithFS(fsys FileSystem, dirs ...string) *Loader {
	return &Loader{fs: fsys, dirs: dirs}
}

// Dirs returns the directories the loader reads from.
func (l *Loader) Dirs() []string {
	dirs := make([]string, len(l.dirs))
	copy(dirs, l.dirs)
	return dirs
}

// Load reads every .json document under the configured directories and
// returns the definitions in built-in sequence order. A directory that
// does not exist is skipped; a document that fails to parse aborts the
// load with a ParseError.
func (l *Loader) Load() ([]filetype.Definition, error) {
	type entry struct {
		name     string
		priority int
		def      filetype.Definition
	}
	var entries []entry

	for _, dir := range l.dirs {
		infos, err := fs.ReadDir(l.fs, dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading definition directory %s: %w", dir, err)
		}
		for _, info := range infos {
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
				continue
			}
			path := filepath.ToSlash(filepath.Join(dir, info.Name()))
			data, err := l.fs.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading definition %s: %w", path, err)
			}
			def, priority, err := parseDocument(path, data)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{name: info.Name(), priority: priority, def: def})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	defs := make([]filetype.Definition, len(entries))
	for i, e := range entries {
		defs[i] = e.def
	}
	return defs, nil
}

// stringList accepts both a bare JSON string and an array of strings,
// the two spellings definition authors use interchangeably.
type stringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// document is the on-disk shape of one definition.
type document struct {
	ID             string          `json:"id"`
	Type           string          `json:"type,omitempty"`
	Priority       int             `json:"priority,omitempty"`
	Detect         *detectDocument `json:"detect,omitempty"`
	Schema         string          `json:"schema,omitempty"`
	PackSpider     string          `json:"packSpider,omitempty"`
	LightningCache string          `json:"lightningCache,omitempty"`
	Icon           string          `json:"icon,omitempty"`
	Queryable      *bool           `json:"queryable,omitempty"`
	Meta           *metaDocument   `json:"meta,omitempty"`
	Highlighter    json.RawMessage `json:"highlighterConfiguration,omitempty"`
	Documentation  json.RawMessage `json:"documentation,omitempty"`
}

type detectDocument struct {
	PackType       stringList `json:"packType,omitempty"`
	Scope          stringList `json:"scope,omitempty"`
	Matcher        stringList `json:"matcher,omitempty"`
	FileExtensions []string   `json:"fileExtensions,omitempty"`
	FileContent    stringList `json:"fileContent,omitempty"`
}

type metaDocument struct {
	Language string `json:"language,omitempty"`
}

// parseDocument turns one document into a definition plus its load
// priority.
func parseDocument(path string, data []byte) (filetype.Definition, int, error) {
	if !gjson.ValidBytes(data) {
		return filetype.Definition{}, 0, &ParseError{Path: path, Message: "not valid JSON"}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return filetype.Definition{}, 0, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if doc.ID == "" {
		return filetype.Definition{}, 0, &ParseError{Path: path, Message: "missing id"}
	}
	kind, ok := filetype.ParseKind(doc.Type)
	if !ok {
		return filetype.Definition{}, 0, &ParseError{Path: path, Message: fmt.Sprintf("unknown type %q", doc.Type)}
	}

	cfg := filetype.Config{
		ID:             doc.ID,
		Kind:           kind,
		Schema:         doc.Schema,
		PackSpider:     doc.PackSpider,
		LightningCache: doc.LightningCache,
		Icon:           doc.Icon,
		Queryable:      doc.Queryable,
		Highlighter:    doc.Highlighter,
		Documentation:  doc.Documentation,
	}
	if doc.Meta != nil {
		cfg.Language = doc.Meta.Language
	}
	if doc.Detect != nil {
		rules := &filetype.DetectRules{
			Scope:          []string(doc.Detect.Scope),
			Matcher:        []string(doc.Detect.Matcher),
			FileExtensions: doc.Detect.FileExtensions,
			FileContent:    []string(doc.Detect.FileContent),
		}
		for _, tag := range doc.Detect.PackType {
			t := pack.Type(tag)
			if !t.Valid() {
				return filetype.Definition{}, 0, &ParseError{Path: path, Message: fmt.Sprintf("unknown pack type %q", tag)}
			}
			rules.PackTypes = append(rules.PackTypes, t)
		}
		cfg.Detect = rules
	}

	return filetype.NewDefinition(cfg), doc.Priority, nil
}
