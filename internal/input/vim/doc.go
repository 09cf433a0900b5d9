// Package vim holds the Vim text-object table.
//
// A text object is addressed by a prefix key and an object key:
//
//	if  - inner function
//	af  - around (outer) function
//
// The prefix selects the inner or around variant, the object key selects
// the text object. The function object key defaults to 'f' and can be
// reconfigured to any single character:
//
//	table := vim.DefaultTable(vim.FunctionKey(cfg.FunctionChar))
//	action, ok := table.Resolve('i', 'f')
package vim
