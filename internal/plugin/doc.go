// Package plugin hosts Lua plugins that contribute file type
// definitions.
//
// A plugin is a directory carrying a manifest.json and a Lua entry
// script. On load the script runs inside its own Lua state with a
// small `filetype` API injected; every definition it registers is
// added to the shared registry and tracked by the host, so unloading
// the plugin disposes exactly the definitions it contributed.
package plugin
