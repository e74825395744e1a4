package plugin

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/packsmith/internal/filetype"
	"github.com/dshills/packsmith/internal/pack"
)

// installFileTypeAPI injects the `filetype` module into L. Every table
// passed to filetype.register is converted into a definition and
// handed to onRegister.
//
// Lua shape:
//
//	filetype.register{
//	    id = "custom_entity",
//	    type = "json",
//	    detect = {
//	        packTypes = "behaviorPack",       -- string or list
//	        scope = {"entities", "mobs"},     -- string or list
//	        fileExtensions = {".json"},
//	        fileContent = "minecraft:entity", -- string or list
//	    },
//	    schema = "entity.schema.json",
//	    language = "json",
//	}
func installFileTypeAPI(L *lua.LState, onRegister func(filetype.Definition) error) {
	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		def, err := definitionFromTable(tbl)
		if err != nil {
			L.RaiseError("filetype.register: %s", err.Error())
			return 0
		}
		if err := onRegister(def); err != nil {
			L.RaiseError("filetype.register: %s", err.Error())
			return 0
		}
		return 0
	}))
	L.SetGlobal("filetype", mod)
}

// definitionFromTable converts a Lua registration table into a
// definition, filling defaults through the same factory the loader
// uses.
func definitionFromTable(tbl *lua.LTable) (filetype.Definition, error) {
	cfg := filetype.Config{
		ID:             stringField(tbl, "id"),
		Schema:         stringField(tbl, "schema"),
		PackSpider:     stringField(tbl, "packSpider"),
		LightningCache: stringField(tbl, "lightningCache"),
		Icon:           stringField(tbl, "icon"),
		Language:       stringField(tbl, "language"),
	}
	if cfg.ID == "" {
		return filetype.Definition{}, fmt.Errorf("missing id")
	}

	kind, ok := filetype.ParseKind(stringField(tbl, "type"))
	if !ok {
		return filetype.Definition{}, fmt.Errorf("unknown type %q", stringField(tbl, "type"))
	}
	cfg.Kind = kind

	if v := tbl.RawGetString("queryable"); v != lua.LNil {
		q := lua.LVAsBool(v)
		cfg.Queryable = &q
	}

	if v := tbl.RawGetString("detect"); v != lua.LNil {
		detect, ok := v.(*lua.LTable)
		if !ok {
			return filetype.Definition{}, fmt.Errorf("detect must be a table")
		}
		rules := &filetype.DetectRules{
			Scope:          stringsField(detect, "scope"),
			Matcher:        stringsField(detect, "matcher"),
			FileExtensions: stringsField(detect, "fileExtensions"),
			FileContent:    stringsField(detect, "fileContent"),
		}
		for _, tag := range stringsField(detect, "packTypes") {
			t := pack.Type(tag)
			if !t.Valid() {
				return filetype.Definition{}, fmt.Errorf("unknown pack type %q", tag)
			}
			rules.PackTypes = append(rules.PackTypes, t)
		}
		cfg.Detect = rules
	}

	return filetype.NewDefinition(cfg), nil
}

// stringField returns a string-typed field, or "" when absent.
func stringField(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

// stringsField accepts both a bare string and a list of strings,
// mirroring the spelling flexibility of definition documents.
func stringsField(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.Len(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	default:
		return nil
	}
}
