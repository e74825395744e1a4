package filetype

import (
	"context"
	"path"
	"strings"

	"github.com/tidwall/gjson"
)

// Handle is the file surface consumed by placement guessing: a name
// plus lazily fetched text content. The content is only read when the
// extension heuristic fails for a JSON file.
//
// Implemented by vfs.Handle.
type Handle interface {
	// Name returns the file name, including its extension.
	Name() string

	// Text reads and decodes the file content.
	Text(ctx context.Context) (string, error)
}

// GuessFolder proposes a destination folder for a file that is not yet
// placed in the project, from its name and content. The result is a
// directory path ending in "/", or "" when no guess can be made.
//
// Two phases run against the built-in definitions in priority order:
// first by file extension, then, for JSON files only, by parsed
// content shape. Read and parse failures yield "no guess" rather than
// an error.
func (r *Resolver) GuessFolder(ctx context.Context, h Handle) string {
	name := h.Name()
	ext := path.Ext(name)
	defs := r.reg.builtinScan()

	for _, def := range defs {
		if def.Detect == nil || len(def.Detect.Scope) == 0 {
			continue
		}
		for _, e := range def.Detect.FileExtensions {
			if e == ext {
				return asFolder(def.Detect.Scope[0])
			}
		}
	}

	if !strings.HasSuffix(name, jsonExt) {
		return ""
	}
	text, err := h.Text(ctx)
	if err != nil {
		return ""
	}
	if !gjson.Valid(text) {
		return ""
	}
	doc := gjson.Parse(text)

	for _, def := range defs {
		if def.Kind != KindUnspecified && def.Kind != KindJSON {
			continue
		}
		if def.Detect == nil || len(def.Detect.Scope) == 0 || len(def.Detect.FileContent) == 0 {
			continue
		}
		if matchesContentHints(doc, def.Detect.FileContent) {
			return asFolder(def.Detect.Scope[0])
		}
	}
	return ""
}

// matchesContentHints reports whether the parsed document satisfies a
// definition's content hints. The hint paths are not consulted yet:
// any well-formed document is accepted.
//
// TODO: match hint paths against the document via gjson.GetMany.
func matchesContentHints(_ gjson.Result, _ []string) bool {
	return true
}

// asFolder normalizes a scope template into a directory path ending
// with a separator.
func asFolder(scope string) string {
	if strings.HasSuffix(scope, "/") {
		return scope
	}
	return scope + "/"
}
