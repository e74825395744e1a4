package vfs

import (
	"bytes"
	"io/fs"
	"path"
	"sync"
	"time"
)

// MemFS implements FS with an in-memory file tree. It is primarily
// used for testing.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
}

type memFile struct {
	content []byte
	modTime time.Time
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memFile)}
}

var _ FS = (*MemFS)(nil)

// WriteFile stores content under the cleaned path, creating or
// replacing the file.
func (m *MemFS) WriteFile(p string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[cleanPath(p)] = &memFile{
		content: append([]byte(nil), content...),
		modTime: time.Now(),
	}
}

// Open opens a file for reading.
func (m *MemFS) Open(p string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = cleanPath(p)
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return &memHandle{
		reader: bytes.NewReader(f.content),
		info:   memInfo{name: path.Base(p), size: int64(len(f.content)), modTime: f.modTime},
	}, nil
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = cleanPath(p)
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.content...), nil
}

// Stat returns file information.
func (m *MemFS) Stat(p string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = cleanPath(p)
	f, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return memInfo{name: path.Base(p), size: int64(len(f.content)), modTime: f.modTime}, nil
}

// Exists reports whether the path exists.
func (m *MemFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[cleanPath(p)]
	return ok
}

func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// memHandle adapts a stored file to fs.File.
type memHandle struct {
	reader *bytes.Reader
	info   memInfo
}

func (h *memHandle) Stat() (fs.FileInfo, error) { return h.info, nil }
func (h *memHandle) Read(p []byte) (int, error) { return h.reader.Read(p) }
func (h *memHandle) Close() error               { return nil }

// memInfo implements fs.FileInfo for in-memory files.
type memInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0o644 }
func (i memInfo) ModTime() time.Time { return i.modTime }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }
