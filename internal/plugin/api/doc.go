// Package api provides the Lua modules exposed to text-object scripts.
//
// Scripts reach the host through the "ks" namespace:
//
//   - ks.textobject: resolve and apply the function text objects
//   - ks.mode: query and switch modes
//   - ks.keymap: bind keys to actions and <Plug> names
//
// Each module implements Module and declares the capability it needs.
// Registry.Install opens only the modules the script's Grants allow and
// exposes them both as require("ks") and as require("ks.<name>").
//
//	local ks = require("ks")
//	local sel, reason = ks.textobject.find(ks.textobject.caret(), "inner")
//	if sel then
//	    print(sel.start, sel["end"], sel.kind)
//	end
package api
