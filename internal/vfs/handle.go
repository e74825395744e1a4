package vfs

import (
	"bytes"
	"context"
	"path"
	"unicode/utf8"
)

// Handle wraps one file, exposing its name immediately and its decoded
// text content lazily. Content is fetched at most per call; Handle
// does not cache.
type Handle struct {
	fsys FS
	path string
}

// NewHandle creates a handle for path on fsys. The file need not exist
// until Text is called.
func NewHandle(fsys FS, path string) *Handle {
	return &Handle{fsys: fsys, path: path}
}

// Name returns the file name, including its extension.
func (h *Handle) Name() string {
	return path.Base(h.path)
}

// Path returns the full path the handle was created with.
func (h *Handle) Path() string {
	return h.path
}

// Text reads the file and decodes it as UTF-8 text. A leading BOM is
// stripped. The context is checked before the read starts.
func (h *Handle) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := h.fsys.ReadFile(h.path)
	if err != nil {
		return "", err
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}
	return string(data), nil
}
