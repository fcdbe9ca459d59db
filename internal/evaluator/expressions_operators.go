package evaluator

import (
	"math"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/token"
	"github.com/spwn-lang/spwn/internal/value"
)

// valuesEqual is the recursive strict-equality operator spec.md §3/§9
// names for comparing stored values (used by `==`, pattern literal
// matching, and FullContext.Merge's leaf-coalescing check).
func (e *Evaluator) valuesEqual(a, b value.StoredValue) bool {
	if a == b {
		return true
	}
	va, vb := e.Globals.Storage.Get(a), e.Globals.Storage.Get(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch av := va.(type) {
	case value.Number:
		return av.Value == vb.(value.Number).Value
	case value.Bool:
		return av.Value == vb.(value.Bool).Value
	case value.String:
		return av.Value == vb.(value.String).Value
	case value.Null:
		return true
	case value.Group:
		return av.Id == vb.(value.Group).Id
	case value.Color:
		return av.Id == vb.(value.Color).Id
	case value.Block:
		return av.Id == vb.(value.Block).Id
	case value.Item:
		return av.Id == vb.(value.Item).Id
	case value.TriggerFunc:
		return av.StartGroup == vb.(value.TriggerFunc).StartGroup
	case value.Range:
		bv := vb.(value.Range)
		return av.Start == bv.Start && av.End == bv.End && av.Step == bv.Step
	case value.TypeIndicator:
		return av.TypeID == vb.(value.TypeIndicator).TypeID
	case value.Array:
		bv := vb.(value.Array)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !e.valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case value.Dict:
		bv := vb.(value.Dict)
		if len(av.Keys) != len(bv.Keys) {
			return false
		}
		for _, k := range av.Keys {
			bh, ok := bv.Members[k]
			if !ok || !e.valuesEqual(av.Members[k], bh) {
				return false
			}
		}
		return true
	default:
		// Macro, Obj, Builtins, Pattern: identity comparison only, matching
		// spec.md §3's "no structural equality beyond the data variants".
		return false
	}
}

func (e *Evaluator) evalCompare(op value.CompareOp, h value.StoredValue, operand value.StoredValue, node ast.Node) (bool, *diagnostic.Diagnostic) {
	switch op {
	case value.CmpEq:
		return e.valuesEqual(h, operand), nil
	case value.CmpNeq:
		return !e.valuesEqual(h, operand), nil
	case value.CmpIn:
		arr, ok := e.Globals.Storage.Get(operand).(value.Array)
		if !ok {
			return false, e.custom(node, "`in` pattern operand must be an array")
		}
		for _, elem := range arr.Elements {
			if e.valuesEqual(h, elem) {
				return true, nil
			}
		}
		return false, nil
	default:
		a, ok1 := e.Globals.Storage.Get(h).(value.Number)
		b, ok2 := e.Globals.Storage.Get(operand).(value.Number)
		if !ok1 || !ok2 {
			return false, e.custom(node, "ordering patterns only apply to numbers")
		}
		switch op {
		case value.CmpLt:
			return a.Value < b.Value, nil
		case value.CmpLte:
			return a.Value <= b.Value, nil
		case value.CmpGt:
			return a.Value > b.Value, nil
		case value.CmpGte:
			return a.Value >= b.Value, nil
		}
		return false, nil
	}
}

func (e *Evaluator) evalIs(n *ast.IsExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	h, err := e.Eval(n.Value, ctx)
	if err != nil {
		return 0, err
	}
	pat, err := e.patternFromAST(n.Pattern, ctx)
	if err != nil {
		return 0, err
	}
	ok, err := e.MatchesValue(pat, h, n)
	if err != nil {
		return 0, err
	}
	return e.storeConst(value.Bool{Value: ok}, ctx, n), nil
}

func (e *Evaluator) evalTernary(n *ast.TernaryExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	var cond bool
	if n.PatternCond != nil {
		sh, err := e.Eval(n.Subject, ctx)
		if err != nil {
			return 0, err
		}
		pat, err := e.patternFromAST(n.PatternCond, ctx)
		if err != nil {
			return 0, err
		}
		ok, err := e.MatchesValue(pat, sh, n)
		if err != nil {
			return 0, err
		}
		cond = ok
	} else {
		ch, err := e.Eval(n.Cond, ctx)
		if err != nil {
			return 0, err
		}
		b, ok := e.Globals.Storage.Get(ch).(value.Bool)
		if !ok {
			return 0, e.typeErr(n.Cond, "bool", e.Globals.Storage.Get(ch))
		}
		cond = b.Value
	}
	if cond {
		return e.Eval(n.Then, ctx)
	}
	return e.Eval(n.Else, ctx)
}

func (e *Evaluator) evalMatch(n *ast.MatchExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	sh, err := e.Eval(n.Subject, ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range n.Cases {
		if c.IsDefault {
			return e.Eval(c.Body, ctx)
		}
		pat, err := e.patternFromAST(c.Pattern, ctx)
		if err != nil {
			return 0, err
		}
		ok, err := e.MatchesValue(pat, sh, n)
		if err != nil {
			return 0, err
		}
		if ok {
			return e.Eval(c.Body, ctx)
		}
	}
	return 0, e.custom(n, "no match arm matched the subject value")
}

func (e *Evaluator) evalRange(n *ast.RangeExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	startH, err := e.Eval(n.Start, ctx)
	if err != nil {
		return 0, err
	}
	endH, err := e.Eval(n.End, ctx)
	if err != nil {
		return 0, err
	}
	start, err := e.intOf(n.Start, startH)
	if err != nil {
		return 0, err
	}
	end, err := e.intOf(n.End, endH)
	if err != nil {
		return 0, err
	}
	step := 1
	if n.Step != nil {
		stepH, err := e.Eval(n.Step, ctx)
		if err != nil {
			return 0, err
		}
		step, err = e.intOf(n.Step, stepH)
		if err != nil {
			return 0, err
		}
	}
	return e.store(value.Range{Start: int64(start), End: int64(end), Step: int64(step)}, ctx, n), nil
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	h, err := e.Eval(n.Operand, ctx)
	if err != nil {
		return 0, err
	}
	v := e.Globals.Storage.Get(h)
	switch n.Op {
	case token.MINUS:
		num, ok := v.(value.Number)
		if !ok {
			return 0, e.typeErr(n.Operand, "number", v)
		}
		return e.store(value.Number{Value: -num.Value}, ctx, n), nil
	case token.BANG:
		switch vv := v.(type) {
		case value.Bool:
			return e.store(value.Bool{Value: !vv.Value}, ctx, n), nil
		case value.PatternValue:
			return e.store(value.PatternValue{Pattern: value.Not(vv.Pattern)}, ctx, n), nil
		default:
			return 0, e.typeErr(n.Operand, "bool or pattern", v)
		}
	case token.TILDE:
		num, ok := v.(value.Number)
		if !ok {
			return 0, e.typeErr(n.Operand, "number", v)
		}
		return e.store(value.Number{Value: float64(^int64(num.Value))}, ctx, n), nil
	case token.INCR, token.DECR:
		num, ok := v.(value.Number)
		if !ok {
			return 0, e.typeErr(n.Operand, "number", v)
		}
		delta := 1.0
		if n.Op == token.DECR {
			delta = -1.0
		}
		updated := value.Number{Value: num.Value + delta}
		e.Globals.Storage.Set(h, updated)
		if n.Postfix {
			return e.storeConst(num, ctx, n), nil
		}
		return e.storeConst(updated, ctx, n), nil
	default:
		return 0, e.custom(n, "unsupported unary operator %s", n.Op)
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	switch n.Op {
	case token.AND:
		lh, err := e.Eval(n.Left, ctx)
		if err != nil {
			return 0, err
		}
		lb, ok := e.Globals.Storage.Get(lh).(value.Bool)
		if !ok {
			return 0, e.typeErr(n.Left, "bool", e.Globals.Storage.Get(lh))
		}
		if !lb.Value {
			return e.storeConst(value.Bool{Value: false}, ctx, n), nil
		}
		rh, err := e.Eval(n.Right, ctx)
		if err != nil {
			return 0, err
		}
		rb, ok := e.Globals.Storage.Get(rh).(value.Bool)
		if !ok {
			return 0, e.typeErr(n.Right, "bool", e.Globals.Storage.Get(rh))
		}
		return e.storeConst(value.Bool{Value: rb.Value}, ctx, n), nil
	case token.OR:
		lh, err := e.Eval(n.Left, ctx)
		if err != nil {
			return 0, err
		}
		lb, ok := e.Globals.Storage.Get(lh).(value.Bool)
		if !ok {
			return 0, e.typeErr(n.Left, "bool", e.Globals.Storage.Get(lh))
		}
		if lb.Value {
			return e.storeConst(value.Bool{Value: true}, ctx, n), nil
		}
		rh, err := e.Eval(n.Right, ctx)
		if err != nil {
			return 0, err
		}
		rb, ok := e.Globals.Storage.Get(rh).(value.Bool)
		if !ok {
			return 0, e.typeErr(n.Right, "bool", e.Globals.Storage.Get(rh))
		}
		return e.storeConst(value.Bool{Value: rb.Value}, ctx, n), nil
	}

	lh, err := e.Eval(n.Left, ctx)
	if err != nil {
		return 0, err
	}
	rh, err := e.Eval(n.Right, ctx)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case token.EQ:
		return e.storeConst(value.Bool{Value: e.valuesEqual(lh, rh)}, ctx, n), nil
	case token.NOT_EQ:
		return e.storeConst(value.Bool{Value: !e.valuesEqual(lh, rh)}, ctx, n), nil
	}

	lv, rv := e.Globals.Storage.Get(lh), e.Globals.Storage.Get(rh)

	if n.Op == token.PLUS {
		if ls, ok := lv.(value.String); ok {
			rs, ok := rv.(value.String)
			if !ok {
				return 0, e.typeErr(n.Right, "string", rv)
			}
			return e.store(value.String{Value: ls.Value + rs.Value}, ctx, n), nil
		}
		if la, ok := lv.(value.Array); ok {
			ra, ok := rv.(value.Array)
			if !ok {
				return 0, e.typeErr(n.Right, "array", rv)
			}
			merged := append(append([]value.StoredValue{}, la.Elements...), ra.Elements...)
			return e.store(value.Array{Elements: merged}, ctx, n), nil
		}
	}

	ln, ok := lv.(value.Number)
	if !ok {
		return 0, e.typeErr(n.Left, "number", lv)
	}
	rn, ok := rv.(value.Number)
	if !ok {
		return 0, e.typeErr(n.Right, "number", rv)
	}

	switch n.Op {
	case token.PLUS:
		return e.store(value.Number{Value: ln.Value + rn.Value}, ctx, n), nil
	case token.MINUS:
		return e.store(value.Number{Value: ln.Value - rn.Value}, ctx, n), nil
	case token.ASTERISK:
		return e.store(value.Number{Value: ln.Value * rn.Value}, ctx, n), nil
	case token.SLASH:
		if rn.Value == 0 {
			return 0, e.custom(n, "division by zero")
		}
		return e.store(value.Number{Value: ln.Value / rn.Value}, ctx, n), nil
	case token.PERCENT:
		if rn.Value == 0 {
			return 0, e.custom(n, "division by zero")
		}
		return e.store(value.Number{Value: math.Mod(ln.Value, rn.Value)}, ctx, n), nil
	case token.POWER:
		return e.store(value.Number{Value: math.Pow(ln.Value, rn.Value)}, ctx, n), nil
	case token.LT:
		return e.storeConst(value.Bool{Value: ln.Value < rn.Value}, ctx, n), nil
	case token.LTE:
		return e.storeConst(value.Bool{Value: ln.Value <= rn.Value}, ctx, n), nil
	case token.GT:
		return e.storeConst(value.Bool{Value: ln.Value > rn.Value}, ctx, n), nil
	case token.GTE:
		return e.storeConst(value.Bool{Value: ln.Value >= rn.Value}, ctx, n), nil
	case token.AMPERSAND:
		return e.store(value.Number{Value: float64(int64(ln.Value) & int64(rn.Value))}, ctx, n), nil
	case token.PIPE:
		return e.store(value.Number{Value: float64(int64(ln.Value) | int64(rn.Value))}, ctx, n), nil
	case token.CARET:
		return e.store(value.Number{Value: float64(int64(ln.Value) ^ int64(rn.Value))}, ctx, n), nil
	case token.LSHIFT:
		return e.store(value.Number{Value: float64(int64(ln.Value) << uint(int64(rn.Value)))}, ctx, n), nil
	case token.RSHIFT:
		return e.store(value.Number{Value: float64(int64(ln.Value) >> uint(int64(rn.Value)))}, ctx, n), nil
	default:
		return 0, e.custom(n, "unsupported binary operator %s", n.Op)
	}
}
