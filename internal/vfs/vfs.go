// Package vfs provides the read-side file system abstraction used for
// classifying and sniffing project files.
//
// The FS interface allows swapping the underlying storage, enabling
// tests with in-memory trees. Handle wraps one file for components
// that want a name up front and content only on demand.
package vfs

import (
	"errors"
	"io/fs"
)

// ErrNotExist reports a missing file. It aliases fs.ErrNotExist so
// callers can test with errors.Is either way.
var ErrNotExist = fs.ErrNotExist

// FS is a read-only file system.
type FS interface {
	// Open opens a file for reading.
	Open(path string) (fs.File, error)

	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information.
	Stat(path string) (fs.FileInfo, error)

	// Exists reports whether the path exists.
	Exists(path string) bool
}

// IsNotExist reports whether err indicates a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
