package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

func (e *Evaluator) execIf(s *ast.IfStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	for _, branch := range s.Branches {
		ch, err := e.Eval(branch.Cond, ctx)
		if err != nil {
			return err
		}
		b, ok := e.Globals.Storage.Get(ch).(value.Bool)
		if !ok {
			return e.typeErr(branch.Cond, "bool", e.Globals.Storage.Get(ch))
		}
		if b.Value {
			return e.ExecScoped(branch.Body, evalctx.NewFullContext(ctx))
		}
	}
	if s.Else != nil {
		return e.ExecScoped(s.Else, evalctx.NewFullContext(ctx))
	}
	return nil
}

func (e *Evaluator) execWhile(s *ast.WhileStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	for {
		ch, err := e.Eval(s.Cond, ctx)
		if err != nil {
			return err
		}
		b, ok := e.Globals.Storage.Get(ch).(value.Bool)
		if !ok {
			return e.typeErr(s.Cond, "bool", e.Globals.Storage.Get(ch))
		}
		if !b.Value {
			return nil
		}
		if err := e.ExecScoped(s.Body, evalctx.NewFullContext(ctx)); err != nil {
			return err
		}
		if ctx.Broken == evalctx.BrokenLoop {
			ctx.Broken = evalctx.NotBroken
			return nil
		}
		if ctx.Broken == evalctx.BrokenContinue {
			ctx.Broken = evalctx.NotBroken
		}
		if ctx.Returned {
			return nil
		}
	}
}

func (e *Evaluator) execFor(s *ast.ForStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	items, err := e.iterableOf(s.Iterable, ctx)
	if err != nil {
		return err
	}
	ctx.PushScope()
	defer ctx.PopScope()
	for _, item := range items {
		ctx.Define(s.VarName, item)
		if err := e.ExecScoped(s.Body, evalctx.NewFullContext(ctx)); err != nil {
			return err
		}
		if ctx.Broken == evalctx.BrokenLoop {
			ctx.Broken = evalctx.NotBroken
			return nil
		}
		if ctx.Broken == evalctx.BrokenContinue {
			ctx.Broken = evalctx.NotBroken
		}
		if ctx.Returned {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) execTry(s *ast.TryStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	err := e.ExecScoped(s.Body, evalctx.NewFullContext(ctx))
	if err == nil {
		return nil
	}
	if err.Kind != diagnostic.KindCustom {
		return err
	}
	thrown := e.storeConst(value.String{Value: err.Message}, ctx, s)
	for _, c := range s.Catches {
		matched := true
		if c.Pattern != nil {
			pat, perr := e.patternFromAST(c.Pattern, ctx)
			if perr != nil {
				return perr
			}
			ok, perr := e.MatchesValue(pat, thrown, s)
			if perr != nil {
				return perr
			}
			matched = ok
		}
		if !matched {
			continue
		}
		ctx.PushScope()
		if c.ErrVar != "" {
			ctx.Define(c.ErrVar, thrown)
		}
		cerr := e.ExecBlock(c.Body, evalctx.NewFullContext(ctx))
		ctx.PopScope()
		return cerr
	}
	return err
}

func (e *Evaluator) execReturn(s *ast.ReturnStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	if s.Value == nil {
		ctx.ReturnValue = value.NullStorage
		ctx.Returned = true
		return nil
	}
	h, err := e.Eval(s.Value, ctx)
	if err != nil {
		return err
	}
	ctx.ReturnValue = h
	ctx.Returned = true
	return nil
}

func (e *Evaluator) execThrow(s *ast.ThrowStatement, ctx *evalctx.Context) *diagnostic.Diagnostic {
	h, err := e.Eval(s.Value, ctx)
	if err != nil {
		return err
	}
	v := e.Globals.Storage.Get(h)
	msg := e.display(v)
	return diagnostic.CustomError(e.span(s.GetToken()), msg)
}
