// Package tests exercises internal/compiler end to end against the
// concrete scenarios spec.md §8 walks through, driving CompileFile/Finish
// directly against inline source strings rather than a built binary.
package tests

import (
	"strings"
	"testing"

	"github.com/spwn-lang/spwn/internal/compiler"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/modules"
	"github.com/spwn-lang/spwn/internal/value"
)

func compile(t *testing.T, source string) *compiler.Result {
	t.Helper()
	result, diag := compiler.CompileFile(source, "test.spwn", modules.NewPathLoader())
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %s", diag.Error())
	}
	return result
}

func compileErr(t *testing.T, source string) *diagnostic.Diagnostic {
	t.Helper()
	result, diag := compiler.CompileFile(source, "test.spwn", modules.NewPathLoader())
	if diag == nil {
		t.Fatalf("expected a diagnostic, compiled cleanly to export %v", result.Export)
	}
	return diag
}

// Scenario 1: each id class (group, color, block, item) allocates its own
// Arbitrary placeholder independently of the others, so the first `?g`
// and the first `?c` both resolve to slot 1.
func TestArbitraryIDsAllocatePerClass(t *testing.T) {
	result := compile(t, `
		a = ?g
		b = ?c
		$.add(obj{
			57: a,
			51: b,
		})
	`)

	level, counts, err := result.Finish("")
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if counts[0] != 1 || counts[1] != 1 {
		t.Errorf("got id counts %v, want group=1 color=1", counts)
	}
	if !strings.Contains(level, "57,1.1001,") {
		t.Errorf("expected group id resolved to slot 1 in %q", level)
	}
	if !strings.Contains(level, "51,1,") {
		t.Errorf("expected color id resolved to slot 1 in %q", level)
	}
}

// Scenario 2: an arrow statement runs its body under a freshly allocated
// group, so a plain `=` reassignment of a variable owned by the outer
// group inside it is a context-change mutation, not a normal write.
func TestArrowIsolatesMutation(t *testing.T) {
	diag := compileErr(t, `
		let x = 1
		-> {
			x = 2
		}
	`)
	if diag.Kind != diagnostic.KindContextChangeMutate {
		t.Errorf("got diagnostic kind %q, want %q (%s)", diag.Kind, diagnostic.KindContextChangeMutate, diag.Error())
	}
}

// Scenario 3: `is` against an Either pattern (`@number | @string`) matches
// a value belonging to either branch type and rejects anything else.
func TestPatternEitherMatch(t *testing.T) {
	for _, tc := range []struct {
		source string
		want   bool
	}{
		{`return 5 is @number | @string`, true},
		{`return "hi" is @number | @string`, true},
		{`return true is @number | @string`, false},
	} {
		result := compile(t, tc.source)
		b, ok := result.Session.Globals.Storage.Get(result.Export).(value.Bool)
		if !ok {
			t.Fatalf("%q: expected a bool export, got %T", tc.source, result.Session.Globals.Storage.Get(result.Export))
		}
		if b.Value != tc.want {
			t.Errorf("%q: got %v, want %v", tc.source, b.Value, tc.want)
		}
	}
}

// A single-element array pattern matches every element against the same
// sub-pattern, but one with more than one element parses fine and only
// fails once it actually runs against a value.
func TestArrayPatternArity(t *testing.T) {
	result := compile(t, `return [1, 2, 3] is [@number]`)
	b, ok := result.Session.Globals.Storage.Get(result.Export).(value.Bool)
	if !ok || !b.Value {
		t.Fatalf("expected true, got %v", result.Session.Globals.Storage.Get(result.Export))
	}

	diag := compileErr(t, `return [1, 2] is [@number, @string]`)
	if diag.Kind != diagnostic.KindCustom {
		t.Fatalf("expected a custom runtime error, got %v: %s", diag.Kind, diag.Error())
	}
	if !strings.Contains(diag.Message, "multiple elements") {
		t.Errorf("unexpected message: %s", diag.Message)
	}
}

// Scenario 4: `..expr` inside an array literal splices expr's elements in
// place instead of nesting expr as a single element.
func TestArraySpreadFlattens(t *testing.T) {
	result := compile(t, `return [1, ..[2, 3], 4]`)
	arr, ok := result.Session.Globals.Storage.Get(result.Export).(value.Array)
	if !ok {
		t.Fatalf("expected an array export, got %T", result.Session.Globals.Storage.Get(result.Export))
	}
	if len(arr.Elements) != 4 {
		t.Fatalf("got %d elements, want 4", len(arr.Elements))
	}
	want := []float64{1, 2, 3, 4}
	for i, h := range arr.Elements {
		n, ok := result.Session.Globals.Storage.Get(h).(value.Number)
		if !ok || n.Value != want[i] {
			t.Errorf("element %d: got %v, want %v", i, result.Session.Globals.Storage.Get(h), want[i])
		}
	}
}

// Scenario 5: the postfix ternary `then if cond else else_` evaluates
// only its taken branch, so `1 if true else 2` is always 1.
func TestTernaryTakesOneBranch(t *testing.T) {
	result := compile(t, `
		let x = 1 if true else 2
		return x
	`)
	n, ok := result.Session.Globals.Storage.Get(result.Export).(value.Number)
	if !ok {
		t.Fatalf("expected a number export, got %T", result.Session.Globals.Storage.Get(result.Export))
	}
	if n.Value != 1 {
		t.Errorf("got %v, want 1", n.Value)
	}
}

// Scenario 6: a program that emits no triggers, built against an existing
// level, leaves that level's one signed-free object untouched and appends
// nothing.
func TestBuildAgainstExistingLevelAppendsNothing(t *testing.T) {
	existing := "1,1,2,30,3,30;"
	result := compile(t, `let x = 1`)
	level, counts, err := result.Finish(existing)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if level != existing {
		t.Errorf("got %q, want unchanged %q", level, existing)
	}
	if counts != [4]int{} {
		t.Errorf("got id counts %v, want all zero", counts)
	}
}
