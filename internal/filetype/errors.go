package filetype

import "errors"

// Errors returned by file type operations.
var (
	// ErrInvalidDefinition indicates a definition that declares
	// neither a scope nor a matcher. Such a definition can never
	// match anything; reaching it during a scan is a
	// configuration-authoring bug, not a recoverable condition.
	ErrInvalidDefinition = errors.New("file type declares neither scope nor matcher")

	// ErrBadPattern indicates a matcher template that does not
	// compile as a glob pattern.
	ErrBadPattern = errors.New("invalid matcher pattern")
)
