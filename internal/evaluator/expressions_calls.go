package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

func (e *Evaluator) evalMacroLiteral(n *ast.MacroLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	args := make([]value.ArgSpec, len(n.Args))
	selfBound := false
	for i, a := range n.Args {
		args[i] = value.ArgSpec{Name: a.Name, Default: a.Default, Pattern: a.Pattern, ByRef: a.ByRef, Variadic: a.Variadic}
		if i == 0 && a.Name == "self" {
			selfBound = true
		}
	}
	m := &value.MacroData{
		Kind:       value.MacroFuncLike,
		Args:       args,
		Body:       n.Body,
		RetPattern: n.RetPattern,
		SelfBound:  selfBound,
	}
	return e.store(value.Macro{Macro: m}, ctx, n), nil
}

func (e *Evaluator) evalMacroPatternLiteral(n *ast.MacroPatternLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	args := make([]*value.Pattern, len(n.ArgPatterns))
	for i, a := range n.ArgPatterns {
		p, err := e.patternFromAST(a, ctx)
		if err != nil {
			return 0, err
		}
		args[i] = p
	}
	var ret *value.Pattern
	if n.RetPattern != nil {
		p, err := e.patternFromAST(n.RetPattern, ctx)
		if err != nil {
			return 0, err
		}
		ret = p
	}
	return e.storeConst(value.PatternValue{Pattern: value.MacroShape(args, ret)}, ctx, n), nil
}

func (e *Evaluator) evalConstructor(n *ast.ConstructorExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	th, err := e.Eval(n.Type, ctx)
	if err != nil {
		return 0, err
	}
	ti, ok := e.Globals.Storage.Get(th).(value.TypeIndicator)
	if !ok {
		return 0, e.typeErr(n.Type, "type indicator", e.Globals.Storage.Get(th))
	}
	d := value.NewDict()
	d.Set("__type__", e.storeConst(ti, ctx, n))
	for _, f := range n.Fields {
		vh, err := e.Eval(f.Value, ctx)
		if err != nil {
			return 0, err
		}
		d.Set(f.Name, vh)
	}
	return e.store(*d, ctx, n), nil
}

// evalCall dispatches `callee(args...)`: a macro call (with combos.go's
// argument binding), a TypeIndicator used as a single-argument cast
// callable (sugar for `value as Type`), or a builtin dispatched off the
// Builtins sentinel via evalMember's BuiltinsExpr special-case.
func (e *Evaluator) evalCall(n *ast.CallExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	calleeH, err := e.Eval(n.Callee, ctx)
	if err != nil {
		return 0, err
	}
	callee := e.Globals.Storage.Get(calleeH)

	if ti, ok := callee.(value.TypeIndicator); ok {
		if len(n.Args) != 1 || n.Args[0].Name != "" || n.Args[0].Spread {
			return 0, e.custom(n, "a type indicator called as a function takes exactly one positional argument")
		}
		vh, err := e.Eval(n.Args[0].Value, ctx)
		if err != nil {
			return 0, err
		}
		return e.castTo(n, vh, ti.TypeID, ctx)
	}

	m, ok := callee.(value.Macro)
	if !ok {
		return 0, e.typeErr(n.Callee, "macro", callee)
	}
	return e.callMacro(n, m.Macro, calleeH, n.Args, ctx)
}
