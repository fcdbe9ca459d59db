package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

func idClass(c ast.IDClass) value.Class {
	switch c {
	case ast.ClassGroup:
		return value.ClassGroup
	case ast.ClassColor:
		return value.ClassColor
	case ast.ClassBlock:
		return value.ClassBlock
	default:
		return value.ClassItem
	}
}

func idValueOf(class value.Class, id value.Id) value.Value {
	switch class {
	case value.ClassGroup:
		return value.Group{Id: id}
	case value.ClassColor:
		return value.Color{Id: id}
	case value.ClassBlock:
		return value.Block{Id: id}
	default:
		return value.Item{Id: id}
	}
}

func (e *Evaluator) evalIDLiteral(n *ast.IDLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	class := idClass(n.Class)
	id := value.NewSpecific(class, n.Value)
	return e.storeConst(idValueOf(class, id), ctx, n), nil
}

func (e *Evaluator) evalArbitraryID(n *ast.ArbitraryIDLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	class := idClass(n.Class)
	id := e.Globals.NextID(class)
	return e.store(idValueOf(class, id), ctx, n), nil
}

func (e *Evaluator) evalTypeIndicator(n *ast.TypeIndicatorExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	id, ok := e.Globals.Types.Lookup(n.Name)
	if !ok {
		id = evalctx.TypeID(e.Globals.Types.Define(n.Name))
	}
	return e.storeConst(value.TypeIndicator{TypeID: uint16(id), Name: n.Name}, ctx, n), nil
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	var elems []value.StoredValue
	for _, el := range n.Elements {
		h, err := e.Eval(el.Value, ctx)
		if err != nil {
			return 0, err
		}
		switch {
		case el.Spread:
			arr, ok := e.Globals.Storage.Get(h).(value.Array)
			if !ok {
				return 0, e.typeErr(el.Value, "array", e.Globals.Storage.Get(h))
			}
			elems = append(elems, arr.Elements...)
		case el.Collect:
			// `*expr` is appended as a single element, exactly like a plain
			// element: its value is not collected, zipped or flattened into
			// the surrounding array.
			elems = append(elems, h)
		default:
			elems = append(elems, h)
		}
	}
	return e.store(value.Array{Elements: elems}, ctx, n), nil
}

func (e *Evaluator) evalDictLiteral(n *ast.DictLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	d := value.NewDict()
	for _, pair := range n.Pairs {
		key := pair.Name
		if pair.KeyExpr != nil {
			kh, err := e.Eval(pair.KeyExpr, ctx)
			if err != nil {
				return 0, err
			}
			s, ok := e.Globals.Storage.Get(kh).(value.String)
			if !ok {
				return 0, e.typeErr(pair.KeyExpr, "string", e.Globals.Storage.Get(kh))
			}
			key = s.Value
		}
		vh, err := e.Eval(pair.Value, ctx)
		if err != nil {
			return 0, err
		}
		d.Set(key, vh)
	}
	return e.store(*d, ctx, n), nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	obj := value.Obj{Mode: value.ObjectMode(n.Mode)}
	for _, pair := range n.Pairs {
		kh, err := e.Eval(pair.Key, ctx)
		if err != nil {
			return 0, err
		}
		keyNum, ok := e.Globals.Storage.Get(kh).(value.Number)
		if !ok {
			return 0, e.typeErr(pair.Key, "number", e.Globals.Storage.Get(kh))
		}
		vh, err := e.Eval(pair.Value, ctx)
		if err != nil {
			return 0, err
		}
		param, err := e.valueToObjParam(pair.Value, e.Globals.Storage.Get(vh))
		if err != nil {
			return 0, err
		}
		obj.Params = append(obj.Params, value.ObjParamEntry{Key: uint16(keyNum.Value), Param: param})
	}
	return e.store(obj, ctx, n), nil
}

// valueToObjParam converts a runtime Value into the ObjectParameter wire
// shape an obj/trigger literal's field expects, per spec.md §4.7's closed
// table (group/color/block/item pass their Id through; number/bool/string
// map directly; an array of ids becomes a group list).
func (e *Evaluator) valueToObjParam(node ast.Node, v value.Value) (value.ObjectParameter, *diagnostic.Diagnostic) {
	switch vv := v.(type) {
	case value.Group:
		return value.ObjParamGroup(vv.Id), nil
	case value.Color:
		return value.ObjParamColor(vv.Id), nil
	case value.Block:
		return value.ObjParamBlock(vv.Id), nil
	case value.Item:
		return value.ObjParamItem(vv.Id), nil
	case value.Number:
		return value.ObjParamNumber(vv.Value), nil
	case value.Bool:
		return value.ObjParamBool(vv.Value), nil
	case value.String:
		return value.ObjParamText(vv.Value), nil
	case value.Array:
		ids := make([]value.Id, 0, len(vv.Elements))
		for _, h := range vv.Elements {
			g, ok := e.Globals.Storage.Get(h).(value.Group)
			if !ok {
				return value.ObjectParameter{}, e.custom(node, "object parameter arrays must hold groups")
			}
			ids = append(ids, g.Id)
		}
		return value.ObjParamGroupList(ids), nil
	default:
		return value.ObjectParameter{}, e.custom(node, "%s cannot be used as an object parameter", v.Kind())
	}
}

func (e *Evaluator) evalListComprehension(n *ast.ListComprehension, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	items, err := e.iterableOf(n.Iterable, ctx)
	if err != nil {
		return 0, err
	}
	var out []value.StoredValue
	ctx.PushScope()
	defer ctx.PopScope()
	for _, item := range items {
		ctx.Define(n.VarName, item)
		if n.Cond != nil {
			ch, err := e.Eval(n.Cond, ctx)
			if err != nil {
				return 0, err
			}
			b, ok := e.Globals.Storage.Get(ch).(value.Bool)
			if !ok {
				return 0, e.typeErr(n.Cond, "bool", e.Globals.Storage.Get(ch))
			}
			if !b.Value {
				continue
			}
		}
		rh, err := e.Eval(n.Result, ctx)
		if err != nil {
			return 0, err
		}
		out = append(out, rh)
	}
	return e.store(value.Array{Elements: out}, ctx, n), nil
}

// iterableOf expands an Array or Range value into a flat slice of
// StoredValues to loop over, shared by for-statements and comprehensions.
func (e *Evaluator) iterableOf(expr ast.Expression, ctx *evalctx.Context) ([]value.StoredValue, *diagnostic.Diagnostic) {
	h, err := e.Eval(expr, ctx)
	if err != nil {
		return nil, err
	}
	switch v := e.Globals.Storage.Get(h).(type) {
	case value.Array:
		return v.Elements, nil
	case value.Range:
		var out []value.StoredValue
		if v.Step > 0 {
			for i := v.Start; i < v.End; i += v.Step {
				out = append(out, e.storeConst(value.Number{Value: float64(i)}, ctx, expr))
			}
		} else if v.Step < 0 {
			for i := v.Start; i > v.End; i += v.Step {
				out = append(out, e.storeConst(value.Number{Value: float64(i)}, ctx, expr))
			}
		}
		return out, nil
	case value.Dict:
		out := make([]value.StoredValue, 0, len(v.Keys))
		for _, k := range v.Keys {
			out = append(out, e.storeConst(value.String{Value: k}, ctx, expr))
		}
		return out, nil
	default:
		return nil, e.typeErr(expr, "array, range, or dict", v)
	}
}
