// Package keymap provides key binding management.
//
// The keymap system maps key sequences to actions per mode. Bindings may
// target a concrete action ("textobject.innerFunction") or a <Plug> name
// that is itself bound to an action, so users can move a text object to
// other keys without knowing action names.
//
// # Binding Precedence
//
// When multiple bindings match a key sequence, precedence is determined by:
//  1. Keymap priority, then binding priority (higher wins)
//  2. Specificity (mode-specific > global)
//  3. Registration order (later wins)
//
// # Defaults
//
// LoadDefaults binds "i f" and "a f" in the visual and operator-pending
// modes through <Plug>InnerFunction and <Plug>OuterFunction. The default
// keys are added only when missing:
//
//	registry := keymap.NewRegistry()
//	_ = keymap.NewLoader(userDir).RegisterAll(registry) // user keymaps first
//	_ = keymap.LoadDefaults(registry, 'f')
//
//	action, ok := registry.Resolve("i f", "operator-pending")
package keymap
