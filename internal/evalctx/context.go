// Package evalctx implements the context-splitting execution model spec.md
// §3/§5 describes: a Context is one execution branch; a FullContext is the
// binary tree of branches a conditional or loop may fork into; Globals is
// the single shared mutable compile-time root. Grounded on
// src/interpreter/contexts.rs and spwn-lang/src/globals.rs.
package evalctx

import "github.com/spwn-lang/spwn/internal/value"

// BrokenState names why a Context's current loop body stopped early.
type BrokenState int

const (
	NotBroken BrokenState = iota
	BrokenLoop
	BrokenContinue
)

// Scope is one lexical layer of variable bindings.
type Scope map[string]value.StoredValue

// ChangeEntry records one entry on a Context's FnContextChangeStack: the
// Group an arrow statement pushed, so nested arrow statements and mutation
// checks can tell which trigger-function context currently owns writes.
type ChangeEntry struct {
	Group value.Id
}

// Context is a single execution branch: its own scope stack, its own
// trigger-function identity (StartGroup), and the bookkeeping a statement
// sequence mutates as it runs (return value, broken state, context-change
// stack).
type Context struct {
	StartGroup value.Id
	Scopes     []Scope

	ReturnValue  value.StoredValue
	ReturnValue2 value.StoredValue // carries the prior path segment's value for method dispatch

	Broken BrokenState

	FnContextChangeStack []ChangeEntry

	Returned bool // true once a `return` has fired in this leaf
}

// NewContext builds a Context with a single empty top-level scope.
func NewContext(startGroup value.Id) *Context {
	return &Context{StartGroup: startGroup, Scopes: []Scope{{}}}
}

// PushScope enters a fresh lexical layer.
func (c *Context) PushScope() {
	c.Scopes = append(c.Scopes, Scope{})
}

// PopScope leaves the innermost lexical layer.
func (c *Context) PopScope() {
	if len(c.Scopes) > 0 {
		c.Scopes = c.Scopes[:len(c.Scopes)-1]
	}
}

// Lookup walks the scope stack from innermost to outermost, returning the
// bound handle and true on a hit.
func (c *Context) Lookup(name string) (value.StoredValue, bool) {
	for i := len(c.Scopes) - 1; i >= 0; i-- {
		if h, ok := c.Scopes[i][name]; ok {
			return h, true
		}
	}
	return 0, false
}

// Define binds name in the innermost scope.
func (c *Context) Define(name string, h value.StoredValue) {
	c.Scopes[len(c.Scopes)-1][name] = h
}

// InScopeNames collects every name currently bound, innermost scope first,
// used to build did-you-mean candidate lists for UndefinedErr.
func (c *Context) InScopeNames() []string {
	var names []string
	for i := len(c.Scopes) - 1; i >= 0; i-- {
		for name := range c.Scopes[i] {
			names = append(names, name)
		}
	}
	return names
}

// Clone produces an independent copy of c for FullContext.Split: the scope
// stack is copied (new maps, same handles) so each branch can rebind names
// without affecting its sibling, while FnContextChangeStack is copied by
// value since []ChangeEntry is never mutated in place, only appended.
func (c *Context) Clone() *Context {
	cp := &Context{
		StartGroup:           c.StartGroup,
		ReturnValue:          c.ReturnValue,
		ReturnValue2:         c.ReturnValue2,
		Broken:               c.Broken,
		Returned:             c.Returned,
		FnContextChangeStack: append([]ChangeEntry(nil), c.FnContextChangeStack...),
	}
	cp.Scopes = make([]Scope, len(c.Scopes))
	for i, s := range c.Scopes {
		ns := make(Scope, len(s))
		for k, v := range s {
			ns[k] = v
		}
		cp.Scopes[i] = ns
	}
	return cp
}
