// Package textobject resolves syntax-aware text objects.
//
// The function text object ("if" / "af" in Vim terms) is resolved in two
// steps over a syntax.Tree:
//
//  1. FindEnclosingFunction walks parent links up from the leaf at the
//     cursor and returns the nearest node whose kind matches the function
//     table.
//  2. FindFunctionBody scans that node's direct children for the first kind
//     matching the body table.
//
// ComputeRange then turns the resolved nodes into a selection: the whole
// function for Outer, the body with its wrapping braces removed for Inner.
//
// # Kind Tables
//
// Grammars do not share a taxonomy for functions and bodies: one labels a
// Go method "method_declaration", another labels a Java method "METHOD",
// Kotlin uses "FUN". Classification is therefore a table of Rules, each a
// pattern plus a MatchMode (exact, prefix, suffix, contains), compared
// case-insensitively. Tables are built once and never mutated; a Resolver
// holds one Tables value and is safe to share.
//
// # Misses
//
// Every failure is a soft miss. Resolution returns a zero Selection with a
// MissReason that callers may log; nothing is surfaced to the user.
package textobject
