package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/packsmith/internal/filetype"
)

// Manager loads and unloads plugins against a shared file type
// registry.
type Manager struct {
	mu sync.RWMutex

	registry *filetype.Registry
	hosts    map[string]*Host

	// Plugin load order (for deterministic iteration)
	loadOrder []string
}

// NewManager creates a manager registering into reg.
func NewManager(reg *filetype.Registry) *Manager {
	return &Manager{
		registry: reg,
		hosts:    make(map[string]*Host),
	}
}

// Load loads the plugin in dir: its manifest is read and validated,
// then its entry script runs.
func (m *Manager) Load(dir string) (*Host, error) {
	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.hosts[manifest.Name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrAlreadyLoaded, manifest.Name)
	}

	host, err := NewHost(manifest, m.registry)
	if err != nil {
		return nil, err
	}
	if err := host.Load(); err != nil {
		return nil, err
	}

	m.hosts[manifest.Name] = host
	m.loadOrder = append(m.loadOrder, manifest.Name)
	return host, nil
}

// LoadAll loads every plugin directory under root (direct children
// containing a manifest.json). Directories that fail to load are
// collected into the returned error; the rest still load.
func (m *Manager) LoadAll(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading plugin directory %s: %w", root, err)
	}

	var errs []error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ManifestFileName)); err != nil {
			continue
		}
		if _, err := m.Load(dir); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("loading plugins: %v", errs)
	}
	return nil
}

// Unload unloads the named plugin, disposing its registered file
// types.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	host, ok := m.hosts[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrPluginNotFound, name)
	}
	if err := host.Unload(); err != nil {
		return err
	}

	delete(m.hosts, name)
	for i, n := range m.loadOrder {
		if n == name {
			m.loadOrder = append(m.loadOrder[:i], m.loadOrder[i+1:]...)
			break
		}
	}
	return nil
}

// UnloadAll unloads every plugin in reverse load order.
func (m *Manager) UnloadAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.loadOrder) - 1; i >= 0; i-- {
		if host, ok := m.hosts[m.loadOrder[i]]; ok {
			_ = host.Unload()
		}
	}
	m.hosts = make(map[string]*Host)
	m.loadOrder = nil
}

// Get returns the host for the named plugin.
func (m *Manager) Get(name string) (*Host, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	host, ok := m.hosts[name]
	return host, ok
}

// Plugins returns the loaded plugin names in load order.
func (m *Manager) Plugins() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.loadOrder))
	copy(names, m.loadOrder)
	return names
}
