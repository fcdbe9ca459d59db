package evaluator

import (
	"strconv"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/object"
	"github.com/spwn-lang/spwn/internal/value"
)

// callMacro binds args against m's parameter list (positional, named, and
// `..spread` call-site arguments against possibly-variadic, possibly
// by-ref, possibly patterned parameters) and then either runs the Go
// closure directly (MacroBuiltinLike) or executes the AST body in a fresh
// scope (MacroFuncLike), per spec.md §4.3's call protocol.
func (e *Evaluator) callMacro(node ast.Node, m *value.MacroData, macroHandle value.StoredValue, callArgs []ast.Argument, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	bound, diag := e.bindArgs(node, m, callArgs, ctx)
	if diag != nil {
		return 0, diag
	}

	if self, ok := e.selfOverrides[macroHandle]; ok {
		bound["self"] = self
	}

	if m.Kind == value.MacroBuiltinLike && m.Name == "add" {
		return e.callAdd(node, bound, ctx)
	}

	if m.Kind == value.MacroBuiltinLike {
		positional := make([]value.StoredValue, len(m.Args))
		for i, spec := range m.Args {
			positional[i] = bound[spec.Name]
		}
		v, err := m.Builtin(positional, e.Globals.Storage)
		if err != nil {
			return 0, diagnostic.BuiltinError(e.span(node.GetToken()), m.Name, err.Error())
		}
		return e.store(v, ctx, node), nil
	}

	callCtx := ctx.Clone()
	callCtx.PushScope()
	for name, h := range bound {
		callCtx.Define(name, h)
	}
	if diag := e.ExecBlock(m.Body, evalctx.NewFullContext(callCtx)); diag != nil {
		return 0, diag
	}
	ctx.StartGroup = callCtx.StartGroup

	if !callCtx.Returned {
		return value.NullStorage, nil
	}
	result := callCtx.ReturnValue
	if m.RetPattern != nil {
		pat, diag := e.patternFromAST(m.RetPattern, ctx)
		if diag != nil {
			return 0, diag
		}
		ok, diag := e.MatchesValue(pat, result, node)
		if diag != nil {
			return 0, diag
		}
		if !ok {
			got := e.Globals.Storage.Get(result).Kind().String()
			return 0, diagnostic.PatternMismatchError(e.span(node.GetToken()), "return type", got)
		}
	}
	return result, nil
}

// callAdd implements `$.add(obj)`, spec.md §4.7's object/trigger emission
// built-in: it enqueues obj's params onto the current trigger context's
// FunctionID object list via Globals.Emit, and is special-cased here
// (rather than dispatched through the generic value.BuiltinFunc path)
// because it needs ctx.StartGroup, which that signature has no room for.
// Grounded on spwn-lang/src/builtin.rs's `add` builtin.
func (e *Evaluator) callAdd(node ast.Node, bound map[string]value.StoredValue, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	h := bound["obj"]
	obj, ok := e.Globals.Storage.Get(h).(value.Obj)
	if !ok {
		return 0, e.typeErr(node, "object or trigger literal", e.Globals.Storage.Get(h))
	}
	out := object.NewObject(obj.Mode)
	for _, p := range obj.Params {
		out.Params[p.Key] = p.Param
	}
	e.Globals.Emit(ctx.StartGroup, out)
	return value.NullStorage, nil
}

// bindArgs resolves callArgs against m.Args, evaluating defaults (against
// ctx, so they can reference earlier-bound parameters is intentionally
// unsupported: defaults only ever close over the call site) on demand for
// omitted arguments and collecting trailing positional arguments into a
// variadic parameter's array.
func (e *Evaluator) bindArgs(node ast.Node, m *value.MacroData, callArgs []ast.Argument, ctx *evalctx.Context) (map[string]value.StoredValue, *diagnostic.Diagnostic) {
	bound := map[string]value.StoredValue{}
	named := map[string]value.StoredValue{}
	var positional []value.StoredValue

	for _, a := range callArgs {
		h, err := e.Eval(a.Value, ctx)
		if err != nil {
			return nil, err
		}
		if a.Spread {
			arr, ok := e.Globals.Storage.Get(h).(value.Array)
			if !ok {
				return nil, e.typeErr(a.Value, "array", e.Globals.Storage.Get(h))
			}
			positional = append(positional, arr.Elements...)
			continue
		}
		if a.Name != "" {
			named[a.Name] = h
			continue
		}
		positional = append(positional, h)
	}

	pi := 0
	for i, spec := range m.Args {
		if spec.Variadic {
			rest := append([]value.StoredValue{}, positional[pi:]...)
			bound[spec.Name] = e.store(value.Array{Elements: rest}, ctx, node)
			pi = len(positional)
			continue
		}
		if h, ok := named[spec.Name]; ok {
			bound[spec.Name] = h
			continue
		}
		if pi < len(positional) {
			bound[spec.Name] = positional[pi]
			pi++
			continue
		}
		if spec.Default != nil {
			h, err := e.Eval(spec.Default, ctx)
			if err != nil {
				return nil, err
			}
			bound[spec.Name] = h
			continue
		}
		return nil, e.custom(node, "missing required argument %q (position %d)", spec.Name, i)
	}

	for i, spec := range m.Args {
		if spec.Pattern == nil {
			continue
		}
		pat, err := e.patternFromAST(spec.Pattern, ctx)
		if err != nil {
			return nil, err
		}
		ok, err := e.MatchesValue(pat, bound[spec.Name], node)
		if err != nil {
			return nil, err
		}
		if !ok {
			got := e.Globals.Storage.Get(bound[spec.Name]).Kind().String()
			return nil, diagnostic.PatternMismatchError(e.span(node.GetToken()), spec.Name, got).WithNote(
				"argument at position " + strconv.Itoa(i))
		}
	}
	return bound, nil
}
