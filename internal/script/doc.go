// Package script runs Lua scripts against rune builders.
//
// A State is a sandboxed gopher-lua interpreter: only the base, table,
// string, math and package libraries are open, file loading is removed,
// and require resolves only those libraries plus the "seq" module. The
// seq module wraps builders as userdata with methods mirroring the builder
// and text packages. Indices are 1-based, as is usual in Lua.
//
//	local b = seq.new("  hello   world ")
//	b:collapse()
//	b:pad_left(15, ".")
//	input:append(b:string())
//
// Each Run receives the caller's builder as the global input. Runs are
// bounded by a timeout and by a budget of calls from Lua into Go, which
// includes every predicate evaluation.
package script
