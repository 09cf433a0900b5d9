// Package lua runs text-object scripts in a sandboxed gopher-lua
// interpreter.
//
// Only the base, package, table, string and math libraries are opened.
// The sandbox drops dofile, loadfile, load and loadstring, limits require
// to those built-ins and the host's ks modules, and sends print to the
// writer named in Config.
//
//	state := lua.NewState(lua.Config{Timeout: time.Second})
//	defer state.Close()
//	err := state.Exec(ctx, "myscript", `print(1 + 1)`)
//
// Exec stops when ctx is done or the timeout elapses, whichever is first.
package lua
