package filetype

import (
	"errors"
	"testing"

	"github.com/dshills/packsmith/internal/pack"
)

// testPaths resolves templates against fixed pack roots, standing in
// for an open project.
type testPaths struct {
	packs map[pack.Type]string
}

func (p testPaths) ResolvePrefix(t pack.Type, template string) string {
	if t == pack.TypeNone {
		return template
	}
	root, ok := p.packs[t]
	if !ok {
		return ""
	}
	return root + "/" + template
}

func newTestResolver(defs ...Definition) *Resolver {
	reg := NewRegistry()
	reg.Setup(defs)
	return NewResolver(reg, testPaths{packs: map[pack.Type]string{
		pack.TypeBehavior: "BP",
		pack.TypeResource: "RP",
	}})
}

func TestResolver_Get_ScopeAndExtension(t *testing.T) {
	r := newTestResolver(Definition{
		ID: "a",
		Detect: &DetectRules{
			Scope:          []string{"packs/behavior"},
			FileExtensions: []string{".json"},
		},
	})

	def, err := r.Get(Query{Path: "packs/behavior/entities/x.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "a" {
		t.Fatalf("Get = %v, want definition a", def)
	}

	// Extension filter rejects before the scope is even considered.
	def, err = r.Get(Query{Path: "packs/behavior/entities/x.txt"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def != nil {
		t.Fatalf("Get = %v, want no match", def)
	}
}

func TestResolver_Get_Matcher(t *testing.T) {
	r := newTestResolver(Definition{
		ID:     "b",
		Detect: &DetectRules{Matcher: []string{"**/*.mcfunction"}},
	})

	def, err := r.Get(Query{Path: "packs/behavior/functions/foo.mcfunction"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "b" {
		t.Fatalf("Get = %v, want definition b", def)
	}
}

func TestResolver_Get_PriorityOrder(t *testing.T) {
	// Both definitions match the path; the earlier one must win.
	r := newTestResolver(
		Definition{ID: "first", Detect: &DetectRules{Scope: []string{"packs"}}},
		Definition{ID: "second", Detect: &DetectRules{Scope: []string{"packs/behavior"}}},
	)

	def, err := r.Get(Query{Path: "packs/behavior/x.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "first" {
		t.Fatalf("Get = %v, want first", def)
	}
}

func TestResolver_Get_IDOverride(t *testing.T) {
	r := newTestResolver(
		Definition{ID: "first", Detect: &DetectRules{Scope: []string{"elsewhere"}}},
		Definition{ID: "second", Detect: &DetectRules{Scope: []string{"nowhere"}}},
	)

	// Neither definition matches the path; the explicit id still
	// returns "second", bypassing its detection rules entirely.
	def, err := r.Get(Query{Path: "packs/behavior/x.json", ID: "second"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "second" {
		t.Fatalf("Get = %v, want second", def)
	}
}

func TestResolver_Get_IDCheckRunsInPriorityOrder(t *testing.T) {
	r := newTestResolver(
		Definition{ID: "first", Detect: &DetectRules{Scope: []string{"packs"}}},
		Definition{ID: "second", Detect: &DetectRules{Scope: []string{"elsewhere"}}},
	)

	// The id check runs per definition inside the priority scan, so
	// an earlier definition that matches the path wins before the
	// scan ever reaches the requested id.
	def, err := r.Get(Query{Path: "packs/behavior/x.json", ID: "second"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "first" {
		t.Fatalf("Get = %v, want first", def)
	}

	// Without a competing path match the id is found as usual.
	def, err = r.Get(Query{ID: "second"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "second" {
		t.Fatalf("Get = %v, want second", def)
	}
}

func TestResolver_Get_PackTypeCrossProduct(t *testing.T) {
	r := newTestResolver(Definition{
		ID: "texture",
		Detect: &DetectRules{
			PackTypes: []pack.Type{pack.TypeResource},
			Scope:     []string{"textures"},
		},
	})

	def, err := r.Get(Query{Path: "RP/textures/items/apple.png"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "texture" {
		t.Fatalf("Get = %v, want texture", def)
	}

	// Same template under the wrong pack root must not match.
	def, err = r.Get(Query{Path: "BP/textures/items/apple.png"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def != nil {
		t.Fatalf("Get = %v, want no match", def)
	}
}

func TestResolver_Get_InvalidDefinitionFatal(t *testing.T) {
	r := newTestResolver(
		Definition{ID: "broken", Detect: &DetectRules{FileExtensions: []string{".json"}}},
		Definition{ID: "later", Detect: &DetectRules{Scope: []string{"packs"}}},
	)

	// The broken definition is reached first and must abort the scan,
	// not be skipped in favor of "later".
	_, err := r.Get(Query{Path: "packs/x.json"})
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestResolver_Get_NilDetectFatal(t *testing.T) {
	r := newTestResolver(Definition{ID: "bare"})

	_, err := r.Get(Query{Path: "anything.json"})
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("err = %v, want ErrInvalidDefinition", err)
	}
}

func TestResolver_Get_InvalidSkippedByExtensionFilter(t *testing.T) {
	// A broken definition guarded by an extension filter is only
	// fatal for paths that pass the filter.
	r := newTestResolver(
		Definition{ID: "broken", Detect: &DetectRules{FileExtensions: []string{".nbt"}}},
		Definition{ID: "ok", Detect: &DetectRules{Scope: []string{"packs"}}},
	)

	def, err := r.Get(Query{Path: "packs/x.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "ok" {
		t.Fatalf("Get = %v, want ok", def)
	}
}

func TestResolver_Get_NoPath(t *testing.T) {
	r := newTestResolver(Definition{ID: "bare"})

	// Without a path there is nothing to test; even a definition with
	// no detect rules is skipped rather than fatal.
	def, err := r.Get(Query{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def != nil {
		t.Fatalf("Get = %v, want no match", def)
	}
}

func TestResolver_Get_NoPathResolver(t *testing.T) {
	reg := NewRegistry()
	reg.Setup([]Definition{
		{ID: "a", Detect: &DetectRules{Scope: []string{"packs/behavior"}}},
	})
	r := NewResolver(reg, nil)

	// No project context: templates expand to nothing, so nothing
	// resolves by path.
	def, err := r.Get(Query{Path: "packs/behavior/x.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def != nil {
		t.Fatalf("Get = %v, want no match", def)
	}

	// Explicit id queries still work.
	def, err = r.Get(Query{Path: "packs/behavior/x.json", ID: "a"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "a" {
		t.Fatalf("Get = %v, want a", def)
	}
}

func TestResolver_Get_PluginDefinitionsScanAfterBuiltin(t *testing.T) {
	reg := NewRegistry()
	reg.Setup([]Definition{
		{ID: "builtin", Detect: &DetectRules{Scope: []string{"packs/behavior"}}},
	})
	reg.AddPluginFileType(Definition{
		ID:     "plugin",
		Detect: &DetectRules{Scope: []string{"packs"}},
	})
	r := NewResolver(reg, testPaths{})

	// Both match; built-ins keep absolute priority.
	def, err := r.Get(Query{Path: "packs/behavior/x.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "builtin" {
		t.Fatalf("Get = %v, want builtin", def)
	}

	// Only the plugin definition matches paths outside the built-in
	// scope.
	def, err = r.Get(Query{Path: "packs/resource/y.json"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if def == nil || def.ID != "plugin" {
		t.Fatalf("Get = %v, want plugin", def)
	}
}

func TestResolver_ID(t *testing.T) {
	r := newTestResolver(Definition{
		ID:     "entity",
		Detect: &DetectRules{Scope: []string{"packs/behavior/entities"}},
	})

	id, err := r.ID("packs/behavior/entities/zombie.json")
	if err != nil {
		t.Fatalf("ID failed: %v", err)
	}
	if id != "entity" {
		t.Errorf("ID = %q, want entity", id)
	}

	id, err = r.ID("unregistered/path/file.xyz")
	if err != nil {
		t.Fatalf("ID failed: %v", err)
	}
	if id != UnknownID {
		t.Errorf("ID = %q, want %q", id, UnknownID)
	}
}

func TestResolver_IsJSONFile(t *testing.T) {
	r := newTestResolver(
		Definition{
			ID:     "plain",
			Detect: &DetectRules{Scope: []string{"docs"}},
			Meta:   Meta{Language: "plaintext"},
		},
		Definition{
			ID:     "molang",
			Detect: &DetectRules{Scope: []string{"molang"}},
		},
	)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"extension fallback, unmatched", "a.json", true},
		{"extension fallback, unmatched non-json", "a.txt", false},
		{"language override beats extension", "docs/readme.json", false},
		{"matched without language falls back", "molang/expr.json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.IsJSONFile(tt.path)
			if err != nil {
				t.Fatalf("IsJSONFile failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsJSONFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
