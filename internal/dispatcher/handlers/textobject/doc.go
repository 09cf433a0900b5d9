// Package textobject provides the dispatcher handler for function text
// objects.
//
// # Actions
//
//   - textobject.innerFunction (if): the function body without its braces
//   - textobject.outerFunction (af): the whole declaration
//
// # Application
//
// When an operator is pending (e.g. "d" in "dif") the range is registered as
// the operator's target and the caret moves to its start. Otherwise the
// range becomes a character-wise visual selection with the caret at its end.
//
// If there is no syntax tree, no node at the caret, or the caret is not
// inside a function, the handler returns a no-op result and leaves the
// caret, selection and mode as they were. The reason is logged at debug
// level.
//
// # Usage
//
//	h := textobject.NewFunctionHandler(resolver, logger)
//	dispatcher.RegisterNamespace(h)
package textobject
