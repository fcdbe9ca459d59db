package evaluator

import (
	"math"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/token"
	"github.com/spwn-lang/spwn/internal/value"
)

// assignOpBinary maps an augmented-assignment operator's surface spelling
// to the binary operator it folds against the target's current value,
// matching internal/parser/statements.go's assignOps table.
var assignOpBinary = map[string]token.TokenType{
	"+=": token.PLUS, "-=": token.MINUS, "*=": token.ASTERISK, "/=": token.SLASH,
	"%=": token.PERCENT, "**=": token.POWER, "&=": token.AMPERSAND, "|=": token.PIPE,
	"^=": token.CARET, "<<=": token.LSHIFT, ">>=": token.RSHIFT,
}

// applyBinaryValues folds op against two already-evaluated Values, used by
// assignTo's `op=` path where both operands are already unwrapped from
// Storage (unlike evalBinary, which works from AST nodes).
func (e *Evaluator) applyBinaryValues(node ast.Node, op token.TokenType, left, right value.Value) (value.Value, *diagnostic.Diagnostic) {
	if op == token.PLUS {
		if ls, ok := left.(value.String); ok {
			rs, ok := right.(value.String)
			if !ok {
				return nil, e.typeErr(node, "string", right)
			}
			return value.String{Value: ls.Value + rs.Value}, nil
		}
		if la, ok := left.(value.Array); ok {
			ra, ok := right.(value.Array)
			if !ok {
				return nil, e.typeErr(node, "array", right)
			}
			return value.Array{Elements: append(append([]value.StoredValue{}, la.Elements...), ra.Elements...)}, nil
		}
	}
	ln, ok := left.(value.Number)
	if !ok {
		return nil, e.typeErr(node, "number", left)
	}
	rn, ok := right.(value.Number)
	if !ok {
		return nil, e.typeErr(node, "number", right)
	}
	switch op {
	case token.PLUS:
		return value.Number{Value: ln.Value + rn.Value}, nil
	case token.MINUS:
		return value.Number{Value: ln.Value - rn.Value}, nil
	case token.ASTERISK:
		return value.Number{Value: ln.Value * rn.Value}, nil
	case token.SLASH:
		if rn.Value == 0 {
			return nil, e.custom(node, "division by zero")
		}
		return value.Number{Value: ln.Value / rn.Value}, nil
	case token.PERCENT:
		if rn.Value == 0 {
			return nil, e.custom(node, "division by zero")
		}
		return value.Number{Value: math.Mod(ln.Value, rn.Value)}, nil
	case token.POWER:
		return value.Number{Value: math.Pow(ln.Value, rn.Value)}, nil
	case token.AMPERSAND:
		return value.Number{Value: float64(int64(ln.Value) & int64(rn.Value))}, nil
	case token.PIPE:
		return value.Number{Value: float64(int64(ln.Value) | int64(rn.Value))}, nil
	case token.CARET:
		return value.Number{Value: float64(int64(ln.Value) ^ int64(rn.Value))}, nil
	case token.LSHIFT:
		return value.Number{Value: float64(int64(ln.Value) << uint(int64(rn.Value)))}, nil
	case token.RSHIFT:
		return value.Number{Value: float64(int64(ln.Value) >> uint(int64(rn.Value)))}, nil
	default:
		return nil, e.custom(node, "unsupported assignment operator")
	}
}

func (e *Evaluator) execLet(s *ast.LetStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	h, err := e.Eval(s.Value, ctx)
	if err != nil {
		return err
	}
	if s.Pattern != nil {
		pat, err := e.patternFromAST(s.Pattern, ctx)
		if err != nil {
			return err
		}
		ok, err := e.MatchesValue(pat, h, s)
		if err != nil {
			return err
		}
		if !ok {
			got := e.Globals.Storage.Get(h).Kind().String()
			return diagnostic.PatternMismatchError(e.span(s.GetToken()), s.Name, got)
		}
	}
	clone := e.Globals.Storage.Clone(h, ctx.StartGroup, true, e.area(s.GetToken()))
	ctx.Define(s.Name, clone)
	return nil
}

func (e *Evaluator) execAssign(s *ast.AssignStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	vh, err := e.Eval(s.Value, ctx)
	if err != nil {
		return err
	}

	if ident, ok := s.Target.Expr.(*ast.Identifier); ok {
		h, ok := ctx.Lookup(ident.Value)
		if !ok {
			if s.Op != "=" {
				return e.undefined(ident, ident.Value, ctx)
			}
			// spec.md §4.6: an assignment with no prior `let` binding that
			// finds no existing variable defines a new *immutable* one,
			// unlike `let` (execLet, above), which always defines mutable.
			ctx.Define(ident.Value, e.Globals.Storage.Clone(vh, ctx.StartGroup, false, e.area(s.GetToken())))
			return nil
		}
		return e.assignTo(s, h, vh, ctx)
	}

	if idx, ok := s.Target.Expr.(*ast.IndexExpr); ok {
		return e.assignIndexed(s, idx, vh, ctx)
	}

	if mem, ok := s.Target.Expr.(*ast.MemberExpr); ok {
		th, err := e.Eval(mem.Target, ctx)
		if err != nil {
			return err
		}
		d, ok := e.Globals.Storage.Get(th).(value.Dict)
		if !ok {
			return e.typeErr(mem.Target, "dictionary", e.Globals.Storage.Get(th))
		}
		if h, exists := d.Members[mem.Name]; exists {
			return e.assignTo(s, h, vh, ctx)
		}
		d.Set(mem.Name, e.Globals.Storage.Clone(vh, ctx.StartGroup, true, e.area(s.GetToken())))
		e.Globals.Storage.Set(th, d)
		return nil
	}

	return e.custom(s, "invalid assignment target")
}

func (e *Evaluator) assignIndexed(s *ast.AssignStatement, idx *ast.IndexExpr, vh value.StoredValue, ctx *evalctx.Context) *diagnostic.Diagnostic {
	th, err := e.Eval(idx.Target, ctx)
	if err != nil {
		return err
	}
	ih, err := e.Eval(idx.Index, ctx)
	if err != nil {
		return err
	}
	target := e.Globals.Storage.Get(th)
	switch t := target.(type) {
	case value.Array:
		num, ok := e.Globals.Storage.Get(ih).(value.Number)
		if !ok {
			return e.typeErr(idx.Index, "number", e.Globals.Storage.Get(ih))
		}
		i := int(num.Value)
		if i < 0 {
			i += len(t.Elements)
		}
		if i < 0 || i >= len(t.Elements) {
			return e.custom(idx, "array index %d out of bounds (len %d)", i, len(t.Elements))
		}
		return e.assignTo(s, t.Elements[i], vh, ctx)
	case value.Dict:
		str, ok := e.Globals.Storage.Get(ih).(value.String)
		if !ok {
			return e.typeErr(idx.Index, "string", e.Globals.Storage.Get(ih))
		}
		if h, ok := t.Members[str.Value]; ok {
			return e.assignTo(s, h, vh, ctx)
		}
		t.Set(str.Value, e.Globals.Storage.Clone(vh, ctx.StartGroup, true, e.area(s.GetToken())))
		e.Globals.Storage.Set(th, t)
		return nil
	default:
		return e.typeErr(idx.Target, "array or dictionary", target)
	}
}

// assignTo writes vh's value into the already-resolved slot h, honoring
// the mutability and context-ownership invariant spec.md §3 describes: the
// target slot must be Mutable and owned by ctx's current trigger context,
// and `op=`-style compound assignment first folds the binary operator
// against the slot's current value.
func (e *Evaluator) assignTo(s *ast.AssignStatement, h value.StoredValue, vh value.StoredValue, ctx *evalctx.Context) *diagnostic.Diagnostic {
	data := e.Globals.Storage.GetData(h)
	if !data.Mutable {
		return diagnostic.MutabilityError(e.span(s.GetToken()), s.Target.Expr.TokenLiteral())
	}
	if data.FnContext != ctx.StartGroup {
		return diagnostic.ContextChangeMutateError(e.span(s.GetToken()), s.Target.Expr.TokenLiteral())
	}

	newVal := e.Globals.Storage.Get(vh)
	if s.Op != "=" {
		op, ok := assignOpBinary[s.Op]
		if !ok {
			return e.custom(s, "unsupported assignment operator %s", s.Op)
		}
		folded, err := e.applyBinaryValues(s, op, data.Value, newVal)
		if err != nil {
			return err
		}
		newVal = folded
	}
	e.Globals.Storage.Set(h, newVal)
	return nil
}

func (e *Evaluator) execTypeDef(s *ast.TypeDefStatement) *diagnostic.Diagnostic {
	e.Globals.Types.Define(s.Name)
	return nil
}

func (e *Evaluator) execImpl(s *ast.ImplStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	th, err := e.Eval(s.Type, ctx)
	if err != nil {
		return err
	}
	ti, ok := e.Globals.Storage.Get(th).(value.TypeIndicator)
	if !ok {
		return e.typeErr(s.Type, "type indicator", e.Globals.Storage.Get(th))
	}
	for _, member := range s.Members {
		vh, err := e.Eval(member.Value, ctx)
		if err != nil {
			return err
		}
		e.Globals.DefineImpl(evalctx.TypeID(ti.TypeID), member.Name, vh)
	}
	return nil
}

func (e *Evaluator) execExtract(s *ast.ExtractStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	h, err := e.Eval(s.Value, ctx)
	if err != nil {
		return err
	}
	d, ok := e.Globals.Storage.Get(h).(value.Dict)
	if !ok {
		return e.typeErr(s.Value, "dictionary", e.Globals.Storage.Get(h))
	}
	for _, k := range d.Keys {
		ctx.Define(k, d.Members[k])
	}
	return nil
}
