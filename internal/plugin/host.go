package plugin

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/packsmith/internal/filetype"
)

// Host runs a single plugin's Lua state and tracks the definitions it
// registers so they can be disposed on unload.
//
// gopher-lua states are not goroutine-safe; a Host serializes access
// with its own mutex.
type Host struct {
	mu sync.Mutex

	name     string
	manifest *Manifest
	registry *filetype.Registry

	state     *lua.LState
	disposers []*filetype.Disposer
	loaded    bool
}

// NewHost creates a host for the given manifest, registering file
// types into reg.
func NewHost(manifest *Manifest, reg *filetype.Registry) (*Host, error) {
	if manifest == nil {
		return nil, ErrNilManifest
	}
	return &Host{
		name:     manifest.Name,
		manifest: manifest,
		registry: reg,
	}, nil
}

// Name returns the plugin name.
func (h *Host) Name() string {
	return h.name
}

// Manifest returns the plugin manifest.
func (h *Host) Manifest() *Manifest {
	return h.manifest
}

// Loaded reports whether the plugin script has run.
func (h *Host) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loaded
}

// FileTypeCount returns how many definitions the plugin has
// contributed.
func (h *Host) FileTypeCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.disposers)
}

// Load creates the Lua state, injects the filetype API and executes
// the plugin's entry script. Definitions registered during execution
// stay registered until Unload.
func (h *Host) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loaded {
		return ErrAlreadyLoaded
	}

	L := lua.NewState()
	installFileTypeAPI(L, func(def filetype.Definition) error {
		h.disposers = append(h.disposers, h.registry.AddPluginFileType(def))
		return nil
	})

	if err := L.DoFile(h.manifest.MainPath()); err != nil {
		// A failed script must not leave partial registrations.
		h.disposeAllLocked()
		L.Close()
		return fmt.Errorf("plugin %q: %w", h.name, err)
	}

	h.state = L
	h.loaded = true
	return nil
}

// Unload disposes every definition the plugin registered and closes
// its Lua state.
func (h *Host) Unload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.loaded {
		return ErrNotLoaded
	}

	h.disposeAllLocked()
	h.state.Close()
	h.state = nil
	h.loaded = false
	return nil
}

// disposeAllLocked invokes and drops all tracked disposers.
// Callers must hold h.mu.
func (h *Host) disposeAllLocked() {
	for _, d := range h.disposers {
		d.Dispose()
	}
	h.disposers = nil
}
