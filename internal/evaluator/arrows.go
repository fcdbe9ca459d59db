package evaluator

import (
	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/value"
)

// execArrow runs stmt's wrapped form on a forked-and-discarded leaf:
// fc.ForkDiscard clones the current leaf, so the wrapped statement's
// scopes, start group, and broken/return state all live on a throwaway
// copy that never rejoins fc. Only the clone's object emissions (routed
// through the shared Globals, not the Context) survive, which is exactly
// spec.md §4.6's "yeet (discard) the leaf's execution, preserving only
// the side effect that g now transitively contains the emitted
// triggers". Running the statement on its own clone rather than
// mutating-then-restoring fc's leaf in place is what keeps a wrapped
// return/break/continue from leaking into the enclosing macro or loop.
func (e *Evaluator) execArrow(stmt ast.Statement, fc *evalctx.FullContext) *diagnostic.Diagnostic {
	newGroup := e.Globals.NextID(value.ClassGroup)
	var err *diagnostic.Diagnostic
	fc.ForkDiscard(func(clone *evalctx.Context) {
		clone.FnContextChangeStack = append(clone.FnContextChangeStack, evalctx.ChangeEntry{Group: newGroup})
		clone.StartGroup = newGroup
		err = e.execInner(stmt, clone)
	})
	return err
}
