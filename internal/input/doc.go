// Package input defines the structured actions and input context that flow
// from key bindings and plugins into the dispatcher.
//
// An Action names a command ("textobject.innerFunction") and carries its
// arguments. The Context records the modal state at the time the action was
// produced, most importantly whether an operator is pending, which decides
// whether a text object becomes a visual selection or an operator target.
//
// Subpackages:
//   - mode: mode names and a small mode manager
//   - keymap: key-sequence to action bindings per mode
//   - vim: the Vim text-object table
package input
