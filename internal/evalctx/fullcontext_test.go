package evalctx

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/value"
)

func TestFullContextSplitProducesIndependentLeaves(t *testing.T) {
	ctx := NewContext(value.NewSpecific(value.ClassGroup, 0))
	ctx.Define("x", value.StoredValue(1))

	fc := NewFullContext(ctx)
	fc.Split(3)

	leaves := fc.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves, want 3", len(leaves))
	}
	leaves[0].Define("x", value.StoredValue(99))
	if h, _ := leaves[1].Lookup("x"); h != 1 {
		t.Errorf("expected leaf 1 unaffected by leaf 0's redefine, got handle %v", h)
	}
}

func TestFullContextSplitEachVariesCloneCountPerLeaf(t *testing.T) {
	ctx := NewContext(value.NewSpecific(value.ClassGroup, 0))
	fc := NewFullContext(ctx)
	fc.Split(2)

	counts := []int{3, 1}
	i := 0
	fc.SplitEach(func(*Context) int {
		n := counts[i]
		i++
		return n
	})

	if got := len(fc.Leaves()); got != 4 {
		t.Errorf("got %d leaves after SplitEach(3,1), want 4", got)
	}
}

func TestFullContextMergeCollapsesStructurallyEqualSiblings(t *testing.T) {
	ctx := NewContext(value.NewSpecific(value.ClassGroup, 0))
	ctx.Define("x", value.StoredValue(7))

	fc := NewFullContext(ctx)
	fc.Split(2)

	eq := func(a, b value.StoredValue) bool { return a == b }
	fc.Merge(nil, eq)

	if fc.IsSplit() {
		t.Errorf("expected merge to collapse two identical leaves back to one")
	}
	if got := len(fc.Leaves()); got != 1 {
		t.Errorf("got %d leaves after merge, want 1", got)
	}
}

func TestFullContextMergeLeavesDivergentSiblingsSplit(t *testing.T) {
	ctx := NewContext(value.NewSpecific(value.ClassGroup, 0))
	ctx.Define("x", value.StoredValue(1))

	fc := NewFullContext(ctx)
	fc.Split(2)
	leaves := fc.Leaves()
	leaves[0].Define("x", value.StoredValue(2))

	eq := func(a, b value.StoredValue) bool { return a == b }
	fc.Merge(nil, eq)

	if !fc.IsSplit() {
		t.Errorf("expected divergent leaves to remain split")
	}
}
