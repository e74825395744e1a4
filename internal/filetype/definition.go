package filetype

import (
	"encoding/json"

	"github.com/dshills/packsmith/internal/pack"
)

// Kind is the broad content category of a file type.
type Kind int

const (
	// KindUnspecified means the definition declares no content
	// category. Unspecified definitions participate in JSON-leaning
	// heuristics such as content-based placement guessing.
	KindUnspecified Kind = iota

	// KindJSON marks JSON documents.
	KindJSON

	// KindText marks plain-text formats.
	KindText

	// KindNBT marks binary NBT data.
	KindNBT
)

// String returns the kind tag as written in definition files.
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindNBT:
		return "nbt"
	default:
		return ""
	}
}

// ParseKind maps a definition file tag to a Kind.
// The empty string maps to KindUnspecified; anything else is unknown.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "":
		return KindUnspecified, true
	case "json":
		return KindJSON, true
	case "text":
		return KindText, true
	case "nbt":
		return KindNBT, true
	}
	return KindUnspecified, false
}

// DetectRules describes how files matching a definition are recognized.
type DetectRules struct {
	// PackTypes restricts scope and matcher templates to the listed
	// pack categories. Empty means the templates are resolved without
	// category context.
	PackTypes []pack.Type

	// Scope lists path-prefix templates. A path matches if it starts
	// with any expanded prefix. Checked before Matcher.
	Scope []string

	// Matcher lists glob-pattern templates. Only consulted when Scope
	// is empty.
	Matcher []string

	// FileExtensions lists literal dot-prefixed extensions. When
	// non-empty, paths with other extensions never match.
	FileExtensions []string

	// FileContent lists hint paths inside a parsed JSON document,
	// consulted during content-based placement guessing.
	FileContent []string
}

// Meta carries editing metadata that does not affect detection.
type Meta struct {
	// Language overrides the language mode derived from the file
	// extension (e.g. "json", "plaintext").
	Language string
}

// Definition is one recognizable file type.
//
// Definitions are value types; the registry and resolver never mutate
// them after registration.
type Definition struct {
	// ID uniquely identifies the file type. Uniqueness is not
	// enforced: a duplicate id later in the sequence is simply
	// unreachable once an earlier one matches.
	ID string

	// Kind is the content category; KindUnspecified when the
	// definition declares none.
	Kind Kind

	// Detect holds the recognition rules. A nil Detect, or one with
	// neither Scope nor Matcher, is a configuration-authoring error
	// surfaced during resolution.
	Detect *DetectRules

	// Opaque references handed through to consumers.
	Schema         string
	PackSpider     string
	LightningCache string
	Icon           string

	// Queryable reports whether structured queries may target files
	// of this type. Filled by NewDefinition; defaults to true.
	Queryable bool

	// Meta carries non-detection editing metadata.
	Meta Meta

	// Highlighter and Documentation are passed through unchanged.
	Highlighter   json.RawMessage
	Documentation json.RawMessage
}

// Config is the raw, partially specified form of a definition as it
// arrives from a definition file or a plugin. Optional flags are
// pointers so that "absent" and "false" stay distinguishable until
// NewDefinition fills defaults.
type Config struct {
	ID             string
	Kind           Kind
	Detect         *DetectRules
	Schema         string
	PackSpider     string
	LightningCache string
	Icon           string
	Queryable      *bool
	Language       string
	Highlighter    json.RawMessage
	Documentation  json.RawMessage
}

// NewDefinition builds a Definition from cfg, filling defaults for
// absent optional fields.
func NewDefinition(cfg Config) Definition {
	def := Definition{
		ID:             cfg.ID,
		Kind:           cfg.Kind,
		Detect:         cfg.Detect,
		Schema:         cfg.Schema,
		PackSpider:     cfg.PackSpider,
		LightningCache: cfg.LightningCache,
		Icon:           cfg.Icon,
		Queryable:      true,
		Meta:           Meta{Language: cfg.Language},
		Highlighter:    cfg.Highlighter,
		Documentation:  cfg.Documentation,
	}
	if cfg.Queryable != nil {
		def.Queryable = *cfg.Queryable
	}
	return def
}
