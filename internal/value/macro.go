package value

import "github.com/spwn-lang/spwn/internal/ast"

// MacroKind distinguishes a user-defined closure from a Go-native builtin
// wired in through internal/builtins.
type MacroKind int

const (
	MacroFuncLike MacroKind = iota
	MacroBuiltinLike
)

// ArgSpec is one macro parameter: name, optional default, optional
// pattern, by-ref flag, variadic flag — the runtime counterpart of
// internal/ast.ArgDef, with Default/Pattern carried as unevaluated AST
// nodes (defaults "evaluate on demand" per spec.md §4.4).
type ArgSpec struct {
	Name     string
	Default  ast.Expression
	Pattern  ast.Pattern
	ByRef    bool
	Variadic bool
}

// BuiltinFunc is the Go function signature internal/builtins registers
// under MacroBuiltinLike. It is declared here (rather than imported from
// internal/builtins) to avoid a value<->builtins import cycle; builtins
// imports value, not the reverse.
type BuiltinFunc func(args []StoredValue, storage *Storage) (Value, error)

// MacroData is the closure payload behind a Macro value: either a
// FuncLike closure carrying its own AST body, or a BuiltinLike wrapper
// around a Go function.
type MacroData struct {
	Kind MacroKind

	Args       []ArgSpec
	Body       []ast.Statement
	RetPattern ast.Pattern
	SelfBound  bool // first arg is named "self": enables method dispatch

	Builtin BuiltinFunc
	Name    string // builtin name, for error messages
}

// cloneMacroData copies a macro. Its argument defaults/patterns are AST
// nodes and therefore immutable once parsed, so cloning a macro only needs
// a shallow copy of the struct plus its own Args slice: spec.md §3 "macros clone their defaults and
// patterns" is satisfied because the AST subtrees are never mutated after
// parse, only re-evaluated.
func cloneMacroData(m *MacroData) *MacroData {
	cp := *m
	cp.Args = append([]ArgSpec(nil), m.Args...)
	return &cp
}
