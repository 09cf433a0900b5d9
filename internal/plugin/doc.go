// Package plugin runs Lua scripts against the function text objects.
//
// A Host owns the API context (text objects, modes and keymaps) and the
// capabilities scripts are granted. Every Run gets a fresh sandboxed
// state, so scripts share host state but never Lua globals:
//
//	host, err := plugin.NewHost(apiCtx,
//	    plugin.WithLogger(log),
//	    plugin.WithGrants(security.CapabilityTextObject),
//	)
//	if err != nil {
//	    return err
//	}
//	err = host.RunFile(ctx, "select.lua")
//
// Scripts see only the ks modules their grants cover; require("ks.keymap")
// fails for a script without the editor.keymap capability.
package plugin
