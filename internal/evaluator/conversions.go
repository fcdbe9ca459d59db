package evaluator

import (
	"fmt"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

// evalAs implements `value as Type`: Type must evaluate to a TypeIndicator,
// and the conversion is dispatched through the same closed table castTo
// uses for the `@Type(value)` call-sugar form.
func (e *Evaluator) evalAs(n *ast.AsExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	vh, err := e.Eval(n.Value, ctx)
	if err != nil {
		return 0, err
	}
	th, err := e.Eval(n.Type, ctx)
	if err != nil {
		return 0, err
	}
	ti, ok := e.Globals.Storage.Get(th).(value.TypeIndicator)
	if !ok {
		return 0, e.typeErr(n.Type, "type indicator", e.Globals.Storage.Get(th))
	}
	return e.castTo(n, vh, ti.TypeID, ctx)
}

// castTo converts the value at h to the builtin type named by typeID,
// matching spec.md §4.2's closed `as`-cast table. Casting to a
// user-defined (non-builtin) type is rejected: SPWN has no user-definable
// conversion hooks in this model.
func (e *Evaluator) castTo(node ast.Node, h value.StoredValue, typeID uint16, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	v := e.Globals.Storage.Get(h)
	target := value.Kind(-1)
	for k := value.KindGroup; k <= value.KindNull; k++ {
		if value.BuiltinTypeID(k) == typeID {
			target = k
			break
		}
	}
	if target == value.Kind(-1) {
		return 0, e.custom(node, "cannot cast to a user-defined type")
	}
	if v.Kind() == target {
		return h, nil
	}

	switch target {
	case value.KindString:
		return e.store(value.String{Value: e.display(v)}, ctx, node), nil
	case value.KindNumber:
		switch vv := v.(type) {
		case value.Bool:
			n := 0.0
			if vv.Value {
				n = 1.0
			}
			return e.store(value.Number{Value: n}, ctx, node), nil
		case value.Group:
			return e.store(value.Number{Value: float64(vv.Id.Value)}, ctx, node), nil
		case value.Color:
			return e.store(value.Number{Value: float64(vv.Id.Value)}, ctx, node), nil
		case value.Block:
			return e.store(value.Number{Value: float64(vv.Id.Value)}, ctx, node), nil
		case value.Item:
			return e.store(value.Number{Value: float64(vv.Id.Value)}, ctx, node), nil
		case value.String:
			var f float64
			if _, scanErr := fmt.Sscanf(vv.Value, "%g", &f); scanErr != nil {
				return 0, e.custom(node, "cannot parse %q as a number", vv.Value)
			}
			return e.store(value.Number{Value: f}, ctx, node), nil
		}
	case value.KindBool:
		if n, ok := v.(value.Number); ok {
			return e.store(value.Bool{Value: n.Value != 0}, ctx, node), nil
		}
	case value.KindGroup:
		if n, ok := v.(value.Number); ok {
			return e.store(value.Group{Id: value.NewSpecific(value.ClassGroup, uint16(n.Value))}, ctx, node), nil
		}
	case value.KindColor:
		if n, ok := v.(value.Number); ok {
			return e.store(value.Color{Id: value.NewSpecific(value.ClassColor, uint16(n.Value))}, ctx, node), nil
		}
	case value.KindBlock:
		if n, ok := v.(value.Number); ok {
			return e.store(value.Block{Id: value.NewSpecific(value.ClassBlock, uint16(n.Value))}, ctx, node), nil
		}
	case value.KindItem:
		if n, ok := v.(value.Number); ok {
			return e.store(value.Item{Id: value.NewSpecific(value.ClassItem, uint16(n.Value))}, ctx, node), nil
		}
	case value.KindArray:
		if d, ok := v.(value.Dict); ok {
			elems := make([]value.StoredValue, 0, len(d.Keys))
			for _, k := range d.Keys {
				pair := value.NewDict()
				pair.Set("key", e.storeConst(value.String{Value: k}, ctx, node))
				pair.Set("value", d.Members[k])
				elems = append(elems, e.store(*pair, ctx, node))
			}
			return e.store(value.Array{Elements: elems}, ctx, node), nil
		}
	case value.KindPattern:
		return e.storeConst(value.PatternValue{Pattern: value.Compare(value.CmpEq, h)}, ctx, node), nil
	}
	return 0, e.custom(node, "cannot cast %s to %s", v.Kind(), target)
}

// display renders a Value as text for `as @string` casts and for the
// message of a `throw`; the textual shapes follow spec.md §4.2's "value
// display" table. `$.print` does not use it: it renders through
// internal/builtins' own render function.
func (e *Evaluator) display(v value.Value) string {
	switch vv := v.(type) {
	case value.Number:
		if vv.Value == float64(int64(vv.Value)) {
			return fmt.Sprintf("%d", int64(vv.Value))
		}
		return fmt.Sprintf("%g", vv.Value)
	case value.Bool:
		if vv.Value {
			return "true"
		}
		return "false"
	case value.String:
		return vv.Value
	case value.Null:
		return "null"
	case value.Group:
		return vv.Id.String()
	case value.Color:
		return vv.Id.String()
	case value.Block:
		return vv.Id.String()
	case value.Item:
		return vv.Id.String()
	case value.Array:
		s := "["
		for i, h := range vv.Elements {
			if i > 0 {
				s += ", "
			}
			s += e.display(e.Globals.Storage.Get(h))
		}
		return s + "]"
	case value.Dict:
		s := "{"
		for i, k := range vv.Keys {
			if i > 0 {
				s += ", "
			}
			s += k + ": " + e.display(e.Globals.Storage.Get(vv.Members[k]))
		}
		return s + "}"
	case value.Range:
		return fmt.Sprintf("%d..%d..%d", vv.Start, vv.End, vv.Step)
	case value.TypeIndicator:
		return "@" + vv.Name
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
