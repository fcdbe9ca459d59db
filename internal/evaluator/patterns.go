package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

// patternFromAST lowers a parsed internal/ast.Pattern into the runtime
// internal/value.Pattern MatchesValue/Subset operate on, evaluating any
// embedded expressions (comparison operands, literal values, type names)
// against ctx. This lives in internal/evaluator rather than internal/value
// because resolving a bare type name requires Globals' TypeTable and a
// literal pattern requires evaluating an expression, both of which would
// pull evaluation-time behavior into the otherwise-pure value package (see
// DESIGN.md).
func (e *Evaluator) patternFromAST(p ast.Pattern, ctx *evalctx.Context) (*value.Pattern, *diagnostic.Diagnostic) {
	switch pp := p.(type) {
	case *ast.PatternAny:
		return value.Any(), nil
	case *ast.PatternType:
		id, ok := e.Globals.Types.Lookup(pp.Name)
		if !ok {
			id = evalctx.TypeID(e.Globals.Types.Define(pp.Name))
		}
		return value.TypeOf(uint16(id)), nil
	case *ast.PatternNot:
		inner, err := e.patternFromAST(pp.Inner, ctx)
		if err != nil {
			return nil, err
		}
		return value.Not(inner), nil
	case *ast.PatternEither:
		l, err := e.patternFromAST(pp.Left, ctx)
		if err != nil {
			return nil, err
		}
		r, err := e.patternFromAST(pp.Right, ctx)
		if err != nil {
			return nil, err
		}
		return value.Either(l, r), nil
	case *ast.PatternBoth:
		l, err := e.patternFromAST(pp.Left, ctx)
		if err != nil {
			return nil, err
		}
		r, err := e.patternFromAST(pp.Right, ctx)
		if err != nil {
			return nil, err
		}
		return value.Both(l, r), nil
	case *ast.PatternArray:
		elems := make([]*value.Pattern, len(pp.Elems))
		for i, el := range pp.Elems {
			ep, err := e.patternFromAST(el, ctx)
			if err != nil {
				return nil, err
			}
			elems[i] = ep
		}
		return value.ArrayOf(elems...), nil
	case *ast.PatternDict:
		fields := map[string]*value.Pattern{}
		for _, entry := range pp.Entries {
			fp, err := e.patternFromAST(entry.Pattern, ctx)
			if err != nil {
				return nil, err
			}
			fields[entry.Key] = fp
		}
		return value.DictOf(fields), nil
	case *ast.PatternMacro:
		args := make([]*value.Pattern, len(pp.ArgPatterns))
		for i, a := range pp.ArgPatterns {
			ap, err := e.patternFromAST(a, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = ap
		}
		var ret *value.Pattern
		if pp.RetPattern != nil {
			var err *diagnostic.Diagnostic
			ret, err = e.patternFromAST(pp.RetPattern, ctx)
			if err != nil {
				return nil, err
			}
		}
		return value.MacroShape(args, ret), nil
	case *ast.PatternCompare:
		operand, err := e.Eval(pp.Operand, ctx)
		if err != nil {
			return nil, err
		}
		return value.Compare(compareOpFromAST(pp.Op), operand), nil
	case *ast.PatternLiteral:
		operand, err := e.Eval(pp.Value, ctx)
		if err != nil {
			return nil, err
		}
		return value.Compare(value.CmpEq, operand), nil
	default:
		return nil, e.custom(p, "unsupported pattern %T", p)
	}
}

func compareOpFromAST(op ast.CompareOp) value.CompareOp {
	switch op {
	case ast.CmpEq:
		return value.CmpEq
	case ast.CmpNeq:
		return value.CmpNeq
	case ast.CmpLt:
		return value.CmpLt
	case ast.CmpLte:
		return value.CmpLte
	case ast.CmpGt:
		return value.CmpGt
	case ast.CmpGte:
		return value.CmpGte
	default:
		return value.CmpIn
	}
}

// MatchesValue reports whether the value at h satisfies pat, per spec.md
// §4.4's matches_pat table. node is only used to build diagnostics for
// comparisons against incompatible operand types.
func (e *Evaluator) MatchesValue(pat *value.Pattern, h value.StoredValue, node ast.Node) (bool, *diagnostic.Diagnostic) {
	v := e.Globals.Storage.Get(h)
	switch pat.Tag {
	case value.PatAny:
		return true, nil
	case value.PatType:
		return e.typeIDOf(v) == evalctx.TypeID(pat.TypeID), nil
	case value.PatNot:
		ok, err := e.MatchesValue(pat.Inner, h, node)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case value.PatEither:
		ok, err := e.MatchesValue(pat.Left, h, node)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		return e.MatchesValue(pat.Right, h, node)
	case value.PatBoth:
		ok, err := e.MatchesValue(pat.Left, h, node)
		if err != nil || !ok {
			return false, err
		}
		return e.MatchesValue(pat.Right, h, node)
	case value.PatArray:
		arr, ok := v.(value.Array)
		if !ok {
			return false, nil
		}
		switch len(pat.ArrayElems) {
		case 0:
			return true, nil
		case 1:
			for _, elemH := range arr.Elements {
				ok, err := e.MatchesValue(pat.ArrayElems[0], elemH, node)
				if err != nil {
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		default:
			return false, diagnostic.CustomError(e.span(node.GetToken()), "arrays with multiple elements cannot be used as patterns (yet)")
		}
	case value.PatDict:
		d, ok := v.(value.Dict)
		if !ok {
			return false, nil
		}
		for key, fp := range pat.DictFields {
			h, ok := d.Members[key]
			if !ok {
				return false, nil
			}
			ok2, err := e.MatchesValue(fp, h, node)
			if err != nil {
				return false, err
			}
			if !ok2 {
				return false, nil
			}
		}
		return true, nil
	case value.PatMacro:
		m, ok := v.(value.Macro)
		if !ok {
			return false, nil
		}
		return len(m.Macro.Args) == len(pat.MacroArgs), nil
	case value.PatCompare:
		return e.evalCompare(pat.CompareOp, h, pat.CompareOperand, node)
	default:
		return false, nil
	}
}

// Subset reports whether every value matching sub also matches super, a
// conservative structural check used for exhaustiveness-adjacent warnings
// and for `is`-narrowing of macro argument patterns. Grounded on spec.md
// §4.4's informal "A is a subset of B" definition: identical tags recurse
// structurally; PatAny is a superset of everything; anything else is
// compared only when the tags match exactly.
func Subset(sub, super *value.Pattern) bool {
	if super.Tag == value.PatAny {
		return true
	}
	if sub.Tag != super.Tag {
		if sub.Tag == value.PatEither {
			return Subset(sub.Left, super) && Subset(sub.Right, super)
		}
		return false
	}
	switch sub.Tag {
	case value.PatType:
		return sub.TypeID == super.TypeID
	case value.PatNot:
		return Subset(super.Inner, sub.Inner)
	case value.PatEither:
		return Subset(sub.Left, super) && Subset(sub.Right, super)
	case value.PatBoth:
		return Subset(sub.Left, super.Left) && Subset(sub.Right, super.Right)
	case value.PatArray:
		if len(super.ArrayElems) == 0 {
			return true
		}
		if len(sub.ArrayElems) == 0 {
			return false
		}
		return Subset(sub.ArrayElems[0], super.ArrayElems[0])
	default:
		return true
	}
}
