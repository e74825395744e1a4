package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/packsmith/internal/filetype"
)

// writePlugin creates a plugin directory with a manifest and entry
// script, returning its path.
func writePlugin(t *testing.T, name, script string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	manifest := `{"name": "` + name + `", "version": "1.0.0"}`
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("writing manifest failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, DefaultMain), []byte(script), 0o644); err != nil {
		t.Fatalf("writing script failed: %v", err)
	}
	return dir
}

const registerScript = `
filetype.register{
	id = "custom_entity",
	type = "json",
	detect = {
		packTypes = "behaviorPack",
		scope = {"entities", "mobs"},
		fileExtensions = {".json"},
		fileContent = "minecraft:entity",
	},
	schema = "entity.schema.json",
	language = "json",
}
`

func loadTestHost(t *testing.T, reg *filetype.Registry, name, script string) *Host {
	t.Helper()
	dir := writePlugin(t, name, script)
	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		t.Fatalf("LoadManifestFromDir failed: %v", err)
	}
	host, err := NewHost(manifest, reg)
	if err != nil {
		t.Fatalf("NewHost failed: %v", err)
	}
	if err := host.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return host
}

func TestHost_LoadRegistersFileTypes(t *testing.T) {
	reg := filetype.NewRegistry()
	host := loadTestHost(t, reg, "custom-types", registerScript)

	defs := reg.PluginFileTypes()
	if len(defs) != 1 {
		t.Fatalf("PluginFileTypes = %d entries, want 1", len(defs))
	}
	def := defs[0]
	if def.ID != "custom_entity" {
		t.Errorf("ID = %q, want custom_entity", def.ID)
	}
	if def.Kind != filetype.KindJSON {
		t.Errorf("Kind = %v, want KindJSON", def.Kind)
	}
	if def.Detect == nil || len(def.Detect.Scope) != 2 {
		t.Fatalf("Detect.Scope = %v, want two entries", def.Detect)
	}
	if len(def.Detect.FileContent) != 1 || def.Detect.FileContent[0] != "minecraft:entity" {
		t.Errorf("FileContent = %v", def.Detect.FileContent)
	}
	if def.Meta.Language != "json" {
		t.Errorf("Meta.Language = %q, want json", def.Meta.Language)
	}
	if host.FileTypeCount() != 1 {
		t.Errorf("FileTypeCount = %d, want 1", host.FileTypeCount())
	}
}

func TestHost_UnloadDisposesFileTypes(t *testing.T) {
	reg := filetype.NewRegistry()
	host := loadTestHost(t, reg, "custom-types", registerScript)

	if err := host.Unload(); err != nil {
		t.Fatalf("Unload failed: %v", err)
	}
	if got := reg.PluginFileTypes(); len(got) != 0 {
		t.Fatalf("PluginFileTypes after unload = %v, want empty", got)
	}
	if err := host.Unload(); err != ErrNotLoaded {
		t.Errorf("second Unload = %v, want ErrNotLoaded", err)
	}
}

func TestHost_FailedScriptLeavesNoRegistrations(t *testing.T) {
	reg := filetype.NewRegistry()
	dir := writePlugin(t, "broken", registerScript+"\nerror(\"boom\")\n")

	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		t.Fatalf("LoadManifestFromDir failed: %v", err)
	}
	host, err := NewHost(manifest, reg)
	if err != nil {
		t.Fatalf("NewHost failed: %v", err)
	}

	if err := host.Load(); err == nil {
		t.Fatal("Load should fail when the script raises")
	}
	if got := reg.PluginFileTypes(); len(got) != 0 {
		t.Fatalf("failed load left registrations: %v", got)
	}
}

func TestHost_RejectsBadRegistration(t *testing.T) {
	reg := filetype.NewRegistry()
	dir := writePlugin(t, "bad-reg", `filetype.register{ type = "json" }`)

	manifest, err := LoadManifestFromDir(dir)
	if err != nil {
		t.Fatalf("LoadManifestFromDir failed: %v", err)
	}
	host, err := NewHost(manifest, reg)
	if err != nil {
		t.Fatalf("NewHost failed: %v", err)
	}
	if err := host.Load(); err == nil {
		t.Fatal("Load should fail on a registration without an id")
	}
}

func TestNewHost_NilManifest(t *testing.T) {
	if _, err := NewHost(nil, filetype.NewRegistry()); err != ErrNilManifest {
		t.Errorf("err = %v, want ErrNilManifest", err)
	}
}
