package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

func (e *Evaluator) evalIdentifier(n *ast.Identifier, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	if h, ok := ctx.Lookup(n.Value); ok {
		return h, nil
	}
	return 0, e.undefined(n, n.Value, ctx)
}

// typeIDOf returns the TypeID a value's runtime Kind or, for a
// Dict carrying a constructed instance, its recorded type tag.
func (e *Evaluator) typeIDOf(v value.Value) evalctx.TypeID {
	if d, ok := v.(value.Dict); ok {
		if th, ok := d.Members["__type__"]; ok {
			if ti, ok := e.Globals.Storage.Get(th).(value.TypeIndicator); ok {
				return evalctx.TypeID(ti.TypeID)
			}
		}
	}
	return evalctx.TypeID(value.BuiltinTypeID(v.Kind()))
}

func (e *Evaluator) evalIndex(n *ast.IndexExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	th, err := e.Eval(n.Target, ctx)
	if err != nil {
		return 0, err
	}
	ih, err := e.Eval(n.Index, ctx)
	if err != nil {
		return 0, err
	}
	target := e.Globals.Storage.Get(th)
	idx := e.Globals.Storage.Get(ih)
	switch t := target.(type) {
	case value.Array:
		num, ok := idx.(value.Number)
		if !ok {
			return 0, e.typeErr(n.Index, "number", idx)
		}
		i := int(num.Value)
		if i < 0 {
			i += len(t.Elements)
		}
		if i < 0 || i >= len(t.Elements) {
			return 0, e.custom(n, "array index %d out of bounds (len %d)", i, len(t.Elements))
		}
		return t.Elements[i], nil
	case value.Dict:
		s, ok := idx.(value.String)
		if !ok {
			return 0, e.typeErr(n.Index, "string", idx)
		}
		h, ok := t.Members[s.Value]
		if !ok {
			return 0, e.custom(n, "key %q not found in dictionary", s.Value)
		}
		return h, nil
	default:
		return 0, e.typeErr(n.Target, "array or dictionary", target)
	}
}

func (e *Evaluator) evalSlice(n *ast.SliceExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	th, err := e.Eval(n.Target, ctx)
	if err != nil {
		return 0, err
	}
	arr, ok := e.Globals.Storage.Get(th).(value.Array)
	if !ok {
		return 0, e.typeErr(n.Target, "array", e.Globals.Storage.Get(th))
	}
	if len(n.Dims) == 0 {
		return e.store(arr, ctx, n), nil
	}
	dim := n.Dims[0]
	start, stop, step := 0, len(arr.Elements), 1
	if dim.Start != nil {
		h, err := e.Eval(dim.Start, ctx)
		if err != nil {
			return 0, err
		}
		start, err = e.intOf(dim.Start, h)
		if err != nil {
			return 0, err
		}
	}
	if dim.Stop != nil {
		h, err := e.Eval(dim.Stop, ctx)
		if err != nil {
			return 0, err
		}
		stop, err = e.intOf(dim.Stop, h)
		if err != nil {
			return 0, err
		}
	}
	if dim.Step != nil {
		h, err := e.Eval(dim.Step, ctx)
		if err != nil {
			return 0, err
		}
		step, err = e.intOf(dim.Step, h)
		if err != nil {
			return 0, err
		}
	}
	if step == 0 {
		return 0, e.custom(n, "slice step cannot be zero")
	}
	var out []value.StoredValue
	if step > 0 {
		for i := start; i < stop && i < len(arr.Elements); i += step {
			if i >= 0 {
				out = append(out, arr.Elements[i])
			}
		}
	} else {
		for i := start; i > stop && i >= 0; i += step {
			if i < len(arr.Elements) {
				out = append(out, arr.Elements[i])
			}
		}
	}
	return e.store(value.Array{Elements: out}, ctx, n), nil
}

func (e *Evaluator) intOf(node ast.Node, h value.StoredValue) (int, *diagnostic.Diagnostic) {
	num, ok := e.Globals.Storage.Get(h).(value.Number)
	if !ok {
		return 0, e.typeErr(node, "number", e.Globals.Storage.Get(h))
	}
	return int(num.Value), nil
}

func (e *Evaluator) evalMember(n *ast.MemberExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	if _, ok := n.Target.(*ast.BuiltinsExpr); ok {
		return e.evalBuiltinMember(n, ctx)
	}
	th, err := e.Eval(n.Target, ctx)
	if err != nil {
		return 0, err
	}
	target := e.Globals.Storage.Get(th)
	if d, ok := target.(value.Dict); ok {
		if h, ok := d.Members[n.Name]; ok {
			return h, nil
		}
	}
	if m, ok := e.Globals.Impl(e.typeIDOf(target), n.Name); ok {
		return e.bindSelf(m.Value, th, ctx, n)
	}
	return 0, e.custom(n, "no member %q on a value of type %s", n.Name, target.Kind())
}

// bindSelf wraps a looked-up impl member in a fresh macro closure whose
// first "self" argument is pre-bound to selfHandle, the receiver-binding
// idiom spec.md §4.3 describes for `obj.method(...)` call sugar.
func (e *Evaluator) bindSelf(member value.StoredValue, selfHandle value.StoredValue, ctx *evalctx.Context, node ast.Node) (value.StoredValue, *diagnostic.Diagnostic) {
	m, ok := e.Globals.Storage.Get(member).(value.Macro)
	if !ok || !m.Macro.SelfBound {
		return member, nil
	}
	bound := &value.MacroData{
		Kind:       m.Macro.Kind,
		Args:       m.Macro.Args,
		Body:       m.Macro.Body,
		RetPattern: m.Macro.RetPattern,
		SelfBound:  true,
		Builtin:    m.Macro.Builtin,
		Name:       m.Macro.Name,
	}
	h := e.store(value.Macro{Macro: bound}, ctx, node)
	// MacroData carries no closure environment, so self is recorded in
	// e.selfOverrides under the bound macro's handle, which callMacro
	// (combos.go) consults when the macro is called.
	e.selfOverrides[h] = selfHandle
	return h, nil
}

// evalBuiltinMember resolves `$.name` to its registered builtin macro,
// storing a fresh constant handle each time (builtins are stateless Go
// closures, so there is no sharing benefit to interning the handle).
func (e *Evaluator) evalBuiltinMember(n *ast.MemberExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	m, ok := e.Builtins[n.Name]
	if !ok {
		return 0, e.custom(n, "no builtin function named %q", n.Name)
	}
	return e.storeConst(value.Macro{Macro: m}, ctx, n), nil
}

func (e *Evaluator) evalAssociated(n *ast.AssociatedExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	th, err := e.Eval(n.Target, ctx)
	if err != nil {
		return 0, err
	}
	ti, ok := e.Globals.Storage.Get(th).(value.TypeIndicator)
	if !ok {
		return 0, e.typeErr(n.Target, "type indicator", e.Globals.Storage.Get(th))
	}
	m, ok := e.Globals.Impl(evalctx.TypeID(ti.TypeID), n.Name)
	if !ok {
		return 0, e.custom(n, "no associated member %q on %s", n.Name, ti.Name)
	}
	return m.Value, nil
}
