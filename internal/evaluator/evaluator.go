// Package evaluator walks internal/ast and drives internal/evalctx's
// Context/FullContext/Globals model, producing internal/value.StoredValue
// results and internal/object.Object level output. The single Eval/exec
// type-switch dispatch (rather than funvibe/funxy's Accept(Visitor)
// double dispatch) follows the simplification already recorded in
// internal/ast's package doc and DESIGN.md. Grounded on
// internal/evaluator/expressions_identifiers.go and statements.go from
// funvibe/funxy for the tree-walking shape, and on
// spwn-lang/src/compiler/mod.rs for SPWN's own evaluation semantics.
package evaluator

import (
	"fmt"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/token"
	"github.com/spwn-lang/spwn/internal/value"
)

// Evaluator holds the state shared across one compile: the mutable root
// (Globals) and the source file name used to build spans/areas.
type Evaluator struct {
	Globals *evalctx.Globals
	File    string

	// selfOverrides maps a method-bound macro's StoredValue handle (minted
	// by bindSelf in expressions_access.go) to the receiver it was bound
	// to, since MacroData itself carries no closure environment to stash
	// it in.
	selfOverrides map[value.StoredValue]value.StoredValue

	// Builtins is the `$.name` dispatch table, wired in by
	// internal/builtins.Register once the Evaluator is constructed.
	Builtins map[string]*value.MacroData

	// Import resolves `import "path"`/`import! lib` to the StoredValue its
	// module body exports (almost always a Dict). Declared as a plain
	// function type here, rather than importing internal/modules directly,
	// since internal/modules' Loader needs to run a full Evaluator over
	// each imported file: internal/compiler wires this field once both
	// packages are constructed, avoiding an evaluator<->modules cycle. span
	// is the importing expression's own location, carried through so a
	// resolution failure reports where the `import` appears, not where its
	// target file would have been.
	Import func(span token.Span, path string, isLib bool) (value.StoredValue, *diagnostic.Diagnostic)
}

// New builds an Evaluator over an already-constructed Globals.
func New(globals *evalctx.Globals, file string) *Evaluator {
	return &Evaluator{Globals: globals, File: file, selfOverrides: map[value.StoredValue]value.StoredValue{}, Builtins: map[string]*value.MacroData{}}
}

func (e *Evaluator) span(tok token.Token) token.Span { return tok.Span(e.File) }

func (e *Evaluator) area(tok token.Token) value.Area {
	s := e.span(tok)
	return value.Area{File: s.File, StartLine: s.StartLine, StartCol: s.StartColumn, EndLine: s.EndLine, EndCol: s.EndColumn}
}

// store allocates a fresh mutable slot owned by ctx's current trigger
// context, the common case for expression results.
func (e *Evaluator) store(v value.Value, ctx *evalctx.Context, node ast.Node) value.StoredValue {
	return e.Globals.Storage.Store(v, ctx.StartGroup, e.area(node.GetToken()))
}

// storeConst allocates a fresh immutable slot, used for literals and other
// computed constant results.
func (e *Evaluator) storeConst(v value.Value, ctx *evalctx.Context, node ast.Node) value.StoredValue {
	return e.Globals.Storage.StoreConst(v, ctx.StartGroup, e.area(node.GetToken()))
}

func (e *Evaluator) typeErr(node ast.Node, expected string, got value.Value) *diagnostic.Diagnostic {
	return diagnostic.TypeError(e.span(node.GetToken()), expected, got.Kind().String())
}

func (e *Evaluator) undefined(node ast.Node, name string, ctx *evalctx.Context) *diagnostic.Diagnostic {
	return diagnostic.UndefinedErr(e.span(node.GetToken()), name, ctx.InScopeNames())
}

func (e *Evaluator) custom(node ast.Node, format string, args ...interface{}) *diagnostic.Diagnostic {
	return diagnostic.CustomError(e.span(node.GetToken()), fmt.Sprintf(format, args...))
}

// EvalProgram runs every top-level statement of prog against every live
// leaf of fc in order, stopping at the first diagnostic. fc starts as a
// single leaf at module entry (see internal/compiler), and only grows
// transiently: arrow statements are the sole construct that forks it,
// and they fork-and-discard within their own statement rather than
// leaving new leaves for the rest of the program to see.
func (e *Evaluator) EvalProgram(prog *ast.Program, fc *evalctx.FullContext) *diagnostic.Diagnostic {
	return e.ExecBlock(prog.Statements, fc)
}

// ExecBlock runs stmts against every live leaf of fc in fc's current
// scope (no fresh scope is pushed; callers that need lexical scoping,
// like macro bodies and loop bodies, push/pop around the call). Leaves
// are re-fetched once per statement rather than once for the whole
// block, so a statement that forks fc (an arrow statement, via
// ForkDiscard) is itself still seen by the remaining statements.
func (e *Evaluator) ExecBlock(stmts []ast.Statement, fc *evalctx.FullContext) *diagnostic.Diagnostic {
	for _, stmt := range stmts {
		if err := e.Exec(stmt, fc); err != nil {
			return err
		}
	}
	return nil
}

// ExecScoped pushes a fresh lexical scope on every live leaf, runs
// stmts, and pops it again, matching every brace-delimited body in
// spec.md's grammar.
func (e *Evaluator) ExecScoped(stmts []ast.Statement, fc *evalctx.FullContext) *diagnostic.Diagnostic {
	for _, ctx := range fc.Leaves() {
		ctx.PushScope()
	}
	err := e.ExecBlock(stmts, fc)
	for _, ctx := range fc.Leaves() {
		ctx.PopScope()
	}
	return err
}

// Exec dispatches a single statement against every live leaf of fc,
// skipping leaves that have already returned or broken out of their
// enclosing loop. Arrow-prefixed statements fork-and-discard per leaf
// (arrows.go); every other statement runs against the leaf's own
// *evalctx.Context directly, since within a single leaf statements are
// purely sequential (spec.md §4.6).
func (e *Evaluator) Exec(stmt ast.Statement, fc *evalctx.FullContext) *diagnostic.Diagnostic {
	for _, ctx := range fc.Leaves() {
		if ctx.Returned || ctx.Broken != evalctx.NotBroken {
			continue
		}
		if stmt.IsArrow() {
			if err := e.execArrow(stmt, evalctx.NewFullContext(ctx)); err != nil {
				return err
			}
			continue
		}
		if err := e.execInner(stmt, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execInner(stmt ast.Statement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := e.Eval(s.Expr, ctx)
		return err
	case *ast.LetStatement:
		return e.execLet(s, ctx)
	case *ast.AssignStatement:
		return e.execAssign(s, ctx)
	case *ast.IfStatement:
		return e.execIf(s, ctx)
	case *ast.WhileStatement:
		return e.execWhile(s, ctx)
	case *ast.ForStatement:
		return e.execFor(s, ctx)
	case *ast.TryStatement:
		return e.execTry(s, ctx)
	case *ast.ReturnStatement:
		return e.execReturn(s, ctx)
	case *ast.BreakStatement:
		ctx.Broken = evalctx.BrokenLoop
		return nil
	case *ast.ContinueStatement:
		ctx.Broken = evalctx.BrokenContinue
		return nil
	case *ast.ThrowStatement:
		return e.execThrow(s, ctx)
	case *ast.BlockStatement:
		return e.ExecScoped(s.Body, evalctx.NewFullContext(ctx))
	case *ast.TypeDefStatement:
		return e.execTypeDef(s)
	case *ast.ImplStatement:
		return e.execImpl(s, ctx)
	case *ast.ExtractStatement:
		return e.execExtract(s, ctx)
	default:
		return e.custom(stmt, "unsupported statement %T", stmt)
	}
}

// Eval dispatches a single expression by concrete AST type, returning the
// StoredValue handle its result was written to.
func (e *Evaluator) Eval(expr ast.Expression, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return e.storeConst(value.Number{Value: float64(n.Value)}, ctx, n), nil
	case *ast.FloatLiteral:
		return e.storeConst(value.Number{Value: n.Value}, ctx, n), nil
	case *ast.BoolLiteral:
		return e.storeConst(value.Bool{Value: n.Value}, ctx, n), nil
	case *ast.StringLiteral:
		return e.storeConst(value.String{Value: n.Value}, ctx, n), nil
	case *ast.NullLiteral:
		return value.NullStorage, nil
	case *ast.EpsilonExpr:
		return e.evalEpsilon(n, ctx)
	case *ast.BuiltinsExpr:
		return value.BuiltinStorage, nil
	case *ast.SelfExpr:
		return e.evalSelf(n, ctx)
	case *ast.UnderscoreExpr:
		return e.storeConst(value.PatternValue{Pattern: value.Any()}, ctx, n), nil
	case *ast.IDLiteral:
		return e.evalIDLiteral(n, ctx)
	case *ast.ArbitraryIDLiteral:
		return e.evalArbitraryID(n, ctx)
	case *ast.TypeIndicatorExpr:
		return e.evalTypeIndicator(n, ctx)
	case *ast.Identifier:
		return e.evalIdentifier(n, ctx)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, ctx)
	case *ast.DictLiteral:
		return e.evalDictLiteral(n, ctx)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n, ctx)
	case *ast.ListComprehension:
		return e.evalListComprehension(n, ctx)
	case *ast.TernaryExpr:
		return e.evalTernary(n, ctx)
	case *ast.MatchExpr:
		return e.evalMatch(n, ctx)
	case *ast.MacroLiteral:
		return e.evalMacroLiteral(n, ctx)
	case *ast.MacroPatternLiteral:
		return e.evalMacroPatternLiteral(n, ctx)
	case *ast.CallExpr:
		return e.evalCall(n, ctx)
	case *ast.IndexExpr:
		return e.evalIndex(n, ctx)
	case *ast.SliceExpr:
		return e.evalSlice(n, ctx)
	case *ast.MemberExpr:
		return e.evalMember(n, ctx)
	case *ast.AssociatedExpr:
		return e.evalAssociated(n, ctx)
	case *ast.ConstructorExpr:
		return e.evalConstructor(n, ctx)
	case *ast.UnaryExpr:
		return e.evalUnary(n, ctx)
	case *ast.BinaryExpr:
		return e.evalBinary(n, ctx)
	case *ast.AsExpr:
		return e.evalAs(n, ctx)
	case *ast.IsExpr:
		return e.evalIs(n, ctx)
	case *ast.RangeExpr:
		return e.evalRange(n, ctx)
	case *ast.ImportExpr:
		return e.evalImport(n, ctx)
	default:
		return 0, e.custom(expr, "unsupported expression %T", expr)
	}
}

func (e *Evaluator) evalEpsilon(n *ast.EpsilonExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	return e.storeConst(value.Number{Value: 0.05}, ctx, n), nil
}

// evalSelf resolves the implicit `self` binding a method body's enclosing
// macro call pushes into scope (combos.go's callMacro binds it). Outside any method body it is simply an undefined identifier.
func (e *Evaluator) evalSelf(n *ast.SelfExpr, ctx *evalctx.Context) (value.StoredValue, *diagnostic.Diagnostic) {
	if h, ok := ctx.Lookup("self"); ok {
		return h, nil
	}
	return 0, e.undefined(n, "self", ctx)
}
