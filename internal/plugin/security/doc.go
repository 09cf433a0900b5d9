// Package security decides which API modules a script may load.
//
// Capabilities form a dotted hierarchy: "editor" covers "editor.mode",
// "editor.keymap" and "editor.textobject". A script runs with one Grants
// value, fixed for the whole run; modules whose capability it does not
// cover are never injected into the script's Lua state.
package security
