// Package dispatcher routes input actions to handlers and coordinates execution.
//
// The dispatcher connects key resolution to editor functionality. It receives
// actions (such as "textobject.innerFunction") from the keymap layer and
// routes them to handlers by namespace prefix or exact name.
//
// # Routing
//
//  1. Namespace Router: routes by the prefix before the first dot, so
//     "textobject.outerFunction" goes to the "textobject" namespace handler.
//  2. Handler Registry: maps exact action names to handlers, sorted by
//     priority. Consulted when no namespace handler claims the action.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built with the syntax provider, editor, mode
//     manager and operator sink
//  2. Pre-dispatch hooks run and may cancel the action
//  3. The handler runs, with panic recovery unless disabled
//  4. A requested mode change is applied if the handler did not make it
//  5. Post-dispatch hooks run
//
// # Results
//
// Handlers return a handler.Result. StatusNoOp is a normal outcome: a text
// object with nothing under the cursor leaves the editor untouched and
// reports no error.
package dispatcher
