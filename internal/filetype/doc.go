// Package filetype classifies project files into declared file types.
//
// A file type is a declarative record describing how to recognize
// matching files (pack category, path-prefix scope, glob matcher, file
// extension) and what editing affordances apply once a file is
// recognized (schema, language, highlighter). The package provides:
//
//   - Registry: the ordered built-in definition sequence plus an
//     unordered collection of plugin-contributed definitions.
//   - Resolver: the priority-ordered matching engine that turns a path
//     (or an explicit id) into a definition.
//   - GuessFolder: a two-phase heuristic proposing a destination folder
//     for a file that is not yet placed in the project.
//
// Resolution order is the sole priority mechanism: the first
// structurally matching definition wins. Built-in definitions are
// scanned before plugin-contributed ones.
package filetype
