package vfs

import (
	"io/fs"
	"os"
)

// OSFS implements FS on the operating system file system.
type OSFS struct{}

// NewOSFS creates an OS-backed file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

var _ FS = (*OSFS)(nil)

// Open opens a file for reading.
func (*OSFS) Open(path string) (fs.File, error) {
	return os.Open(path)
}

// ReadFile reads the entire file content.
func (*OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file information.
func (*OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports whether the path exists.
func (*OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
