package filetype

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds the known file type definitions.
//
// The built-in sequence is assigned once by Setup and its order is the
// match-priority order. Plugin-contributed definitions form a separate
// membership collection with no defined order; they are scanned after
// the built-in sequence.
type Registry struct {
	mu      sync.RWMutex
	builtin []Definition

	// Plugin definitions keyed by a generated stable key so that two
	// registrations of equal content remain individually removable.
	plugin   map[string]Definition
	addOrder []string // for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugin: make(map[string]Definition),
	}
}

// Setup assigns the built-in definition sequence. The slice is copied;
// order is significant and becomes the resolution priority order.
// Calling Setup again replaces the previous sequence.
func (r *Registry) Setup(defs []Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtin = make([]Definition, len(defs))
	copy(r.builtin, defs)
}

// IDs returns the identifiers of the built-in sequence in priority
// order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.builtin))
	for i, def := range r.builtin {
		ids[i] = def.ID
	}
	return ids
}

// Disposer removes one plugin-contributed definition from its registry.
type Disposer struct {
	once sync.Once
	fn   func()
}

// Dispose removes the definition. Calling Dispose again is a no-op.
func (d *Disposer) Dispose() {
	d.once.Do(d.fn)
}

// AddPluginFileType inserts def into the plugin collection and returns
// a disposer that removes exactly that registration.
func (r *Registry) AddPluginFileType(def Definition) *Disposer {
	key := uuid.New().String()

	r.mu.Lock()
	r.plugin[key] = def
	r.addOrder = append(r.addOrder, key)
	r.mu.Unlock()

	return &Disposer{fn: func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.plugin[key]; !ok {
			return
		}
		delete(r.plugin, key)
		for i, k := range r.addOrder {
			if k == key {
				r.addOrder = append(r.addOrder[:i], r.addOrder[i+1:]...)
				break
			}
		}
	}}
}

// SetPluginFileTypes clears the plugin collection and repopulates it
// from defs. Disposers returned before the call become no-ops for the
// replaced registrations.
func (r *Registry) SetPluginFileTypes(defs []Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugin = make(map[string]Definition, len(defs))
	r.addOrder = r.addOrder[:0]
	for _, def := range defs {
		key := uuid.New().String()
		r.plugin[key] = def
		r.addOrder = append(r.addOrder, key)
	}
}

// PluginFileTypes returns a snapshot of the plugin collection.
// Mutating the returned slice does not affect the registry.
func (r *Registry) PluginFileTypes() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.plugin))
	for _, key := range r.addOrder {
		defs = append(defs, r.plugin[key])
	}
	return defs
}

// scan returns the definitions in resolution order: the built-in
// sequence followed by plugin-contributed definitions. The result is a
// snapshot; concurrent registry mutation does not affect an iteration
// already in progress.
func (r *Registry) scan() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.builtin)+len(r.plugin))
	defs = append(defs, r.builtin...)
	for _, key := range r.addOrder {
		defs = append(defs, r.plugin[key])
	}
	return defs
}

// builtinScan returns a snapshot of the built-in sequence only.
// Placement guessing deliberately ignores plugin definitions.
func (r *Registry) builtinScan() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, len(r.builtin))
	copy(defs, r.builtin)
	return defs
}
