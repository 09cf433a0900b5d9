// Package mode handles the keys that move between normal mode and the
// visual modes a function text object can select in.
//
// Repeating the key of the active visual mode returns to normal mode, as
// does mode.normal, which also drops a pending operator.
//
//	dispatcher.RegisterNamespace(mode.NewModeHandler())
package mode
