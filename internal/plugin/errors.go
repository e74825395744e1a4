package plugin

import "errors"

// Errors returned by plugin operations.
var (
	// ErrNilManifest indicates a host was created without a manifest.
	ErrNilManifest = errors.New("plugin: manifest is nil")

	// ErrPluginNotFound indicates the named plugin is not loaded.
	ErrPluginNotFound = errors.New("plugin: not found")

	// ErrAlreadyLoaded indicates a plugin with the same name is
	// already loaded.
	ErrAlreadyLoaded = errors.New("plugin: already loaded")

	// ErrNotLoaded indicates an operation on a host whose script has
	// not run.
	ErrNotLoaded = errors.New("plugin: not loaded")
)
