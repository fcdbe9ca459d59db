package evalctx

import "github.com/spwn-lang/spwn/internal/value"

// FullContext is the binary tree of live execution branches spec.md §3/§9
// describes: `Single(Context) | Split(FullContext, FullContext)`. The tree
// only ever grows by Split; it shrinks only through the explicit Merge
// pass.
type FullContext struct {
	leaf        *Context
	left, right *FullContext
}

// NewFullContext wraps a single starting Context as the tree's sole leaf.
func NewFullContext(c *Context) *FullContext {
	return &FullContext{leaf: c}
}

// IsSplit reports whether this node has branched.
func (fc *FullContext) IsSplit() bool { return fc.leaf == nil }

// Leaves collects every live Context in the tree, left to right, matching
// spec.md §216's "execution order across leaves is left-to-right,
// depth-first".
func (fc *FullContext) Leaves() []*Context {
	if fc == nil {
		return nil
	}
	if !fc.IsSplit() {
		return []*Context{fc.leaf}
	}
	return append(fc.left.Leaves(), fc.right.Leaves()...)
}

// Split replaces this node's single leaf with n independent clones,
// turning it into a right-leaning chain of binary splits. Used whenever an
// evaluation step (a branching conditional, a comprehension iteration)
// needs each current leaf to fork into several hypothetical continuations.
func (fc *FullContext) Split(n int) {
	if n <= 0 || !fc.replaceable() {
		return
	}
	leaf := fc.leaf
	clones := make([]*Context, n)
	clones[0] = leaf
	for i := 1; i < n; i++ {
		clones[i] = leaf.Clone()
	}
	fc.becomeChain(clones)
}

func (fc *FullContext) replaceable() bool { return !fc.IsSplit() }

// becomeChain rewrites fc in place into a right-leaning chain of Split
// nodes, one leaf per clone, so callers holding the original *FullContext
// pointer keep seeing the whole subtree through it.
func (fc *FullContext) becomeChain(clones []*Context) {
	if len(clones) == 1 {
		fc.leaf = clones[0]
		fc.left, fc.right = nil, nil
		return
	}
	fc.leaf = nil
	fc.left = &FullContext{leaf: clones[0]}
	fc.right = &FullContext{}
	fc.right.becomeChain(clones[1:])
}

// forEachLeafNode applies fn to every live leaf node (not just its Context),
// so callers (SplitEach) can replace individual leaves in place.
func (fc *FullContext) forEachLeafNode(fn func(*FullContext)) {
	if fc == nil {
		return
	}
	if !fc.IsSplit() {
		fn(fc)
		return
	}
	fc.left.forEachLeafNode(fn)
	fc.right.forEachLeafNode(fn)
}

// SplitEach replaces every live leaf with however many clones fn(ctx)
// requests for that leaf's Context (0 drops the leaf's continuation
// entirely by collapsing it to zero clones of itself, i.e. a no-op split
// of 1 that the caller then marks broken/returned).
func (fc *FullContext) SplitEach(fn func(*Context) int) {
	fc.forEachLeafNode(func(node *FullContext) {
		n := fn(node.leaf)
		if n > 1 {
			node.Split(n)
		}
	})
}

// ForkDiscard clones fc's current single leaf, runs fn against the
// clone, then throws the clone away entirely, leaving fc's own leaf
// exactly as it was before the call. Any change fn makes to the clone's
// scopes, start group, or broken/return state is discarded along with
// it; the only thing that survives is whatever fn caused Globals to
// record (trigger emissions), since those live outside the Context. This
// is the "yeet" mechanic spec.md §4.6 describes for arrow statements: a
// genuine fork of the execution tree whose non-leaf side never rejoins
// it. Calling ForkDiscard on an already-split node is a no-op, since
// there is no single leaf to fork from.
func (fc *FullContext) ForkDiscard(fn func(*Context)) {
	if !fc.replaceable() {
		return
	}
	original := fc.leaf
	fc.Split(2)
	fn(fc.right.leaf)
	fc.leaf, fc.left, fc.right = original, nil, nil
}

// Merge coalesces sibling leaves whose scope stacks are structurally
// equal, using eq to compare stored values recursively (spec.md §9's
// "recursive strict-equality operator on stored values"). It is applied
// bottom-up so a Split produced by an `if` whose branches converge on
// identical bindings collapses back to a single leaf, as spec.md's worked
// example 5 requires.
func (fc *FullContext) Merge(storage *value.Storage, eq func(a, b value.StoredValue) bool) {
	if fc == nil || !fc.IsSplit() {
		return
	}
	fc.left.Merge(storage, eq)
	fc.right.Merge(storage, eq)

	if fc.left.IsSplit() || fc.right.IsSplit() {
		return
	}
	if scopesEqual(fc.left.leaf, fc.right.leaf, eq) {
		fc.leaf = fc.left.leaf
		fc.left, fc.right = nil, nil
	}
}

func scopesEqual(a, b *Context, eq func(x, y value.StoredValue) bool) bool {
	if a.StartGroup != b.StartGroup || a.Broken != b.Broken || len(a.Scopes) != len(b.Scopes) {
		return false
	}
	for i := range a.Scopes {
		if len(a.Scopes[i]) != len(b.Scopes[i]) {
			return false
		}
		for name, ha := range a.Scopes[i] {
			hb, ok := b.Scopes[i][name]
			if !ok || !eq(ha, hb) {
				return false
			}
		}
	}
	return true
}
