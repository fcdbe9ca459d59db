// Package builtins wires the Go-native functions reachable through the
// `$` sentinel (spec.md §2, §4.4) into the map internal/evaluator dispatches
// `$.name` calls through. Grounded on the *shape* of
// internal/evaluator/builtins.go's `map[string]*Builtin` dispatch table,
// without importing funxy's HTTP/gRPC/YAML/FP-monad builtin bodies, which
// have no SPWN equivalent; the individual function bodies instead follow
// spwn-lang/src/builtin.rs's `builtins! { ... }` macro block one by one.
package builtins

import (
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

// arg builds a one-parameter ArgSpec with no default and no pattern, the
// common case for a builtin taking a single positional value.
func arg(name string) value.ArgSpec { return value.ArgSpec{Name: name} }

func def(name string, args []value.ArgSpec, fn value.BuiltinFunc) *value.MacroData {
	return &value.MacroData{
		Kind:    value.MacroBuiltinLike,
		Args:    args,
		Builtin: fn,
		Name:    name,
	}
}

// Register builds the full `$.name` dispatch table for one compile.
// Effectful entries that need the caller's trigger-function context
// (currently only "add") carry no Builtin closure; internal/evaluator's
// callMacro special-cases them by Name before ever consulting Builtin, since
// value.BuiltinFunc's signature deliberately omits *evalctx.Context (see
// internal/value/macro.go's doc comment) to keep internal/value free of an
// internal/evalctx import.
func Register(globals *evalctx.Globals) map[string]*value.MacroData {
	m := map[string]*value.MacroData{
		"add":          {Kind: value.MacroBuiltinLike, Args: []value.ArgSpec{arg("obj")}, Name: "add"},
		"print":        def("print", []value.ArgSpec{{Name: "values", Variadic: true}}, builtinPrint),
		"assert":       def("assert", []value.ArgSpec{arg("cond")}, builtinAssert),
		"time":         def("time", nil, builtinTime),
		"spwn_version": def("spwn_version", nil, builtinSpwnVersion),
	}
	registerMath(m)
	registerStrings(m)
	registerArrays(m)
	return m
}
