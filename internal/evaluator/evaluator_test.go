package evaluator_test

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/compiler"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/modules"
	"github.com/spwn-lang/spwn/internal/value"
)

func run(t *testing.T, source string) *compiler.Result {
	t.Helper()
	result, diag := compiler.CompileFile(source, "test.spwn", modules.NewPathLoader())
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %s", diag.Error())
	}
	return result
}

func TestLetBindingIsMutable(t *testing.T) {
	result := run(t, `
		let x = 1
		x = 2
		return x
	`)
	n := result.Session.Globals.Storage.Get(result.Export).(value.Number)
	if n.Value != 2 {
		t.Errorf("got %v, want 2", n.Value)
	}
}

func TestBareAssignDefinesImmutableBinding(t *testing.T) {
	_, diag := compiler.CompileFile(`
		x = 1
		x = 2
	`, "test.spwn", modules.NewPathLoader())
	if diag == nil {
		t.Fatal("expected a mutability error, compiled cleanly")
	}
	if diag.Kind != diagnostic.KindMutability {
		t.Errorf("got diagnostic kind %q, want %q (%s)", diag.Kind, diagnostic.KindMutability, diag.Error())
	}
}

func TestWhileLoopAccumulates(t *testing.T) {
	result := run(t, `
		let total = 0
		let i = 0
		while i < 5 {
			total += i
			i += 1
		}
		return total
	`)
	n := result.Session.Globals.Storage.Get(result.Export).(value.Number)
	if n.Value != 10 {
		t.Errorf("got %v, want 10", n.Value)
	}
}

func TestForLoopOverArraySumsElements(t *testing.T) {
	result := run(t, `
		let total = 0
		for n in [1, 2, 3] {
			total += n
		}
		return total
	`)
	n := result.Session.Globals.Storage.Get(result.Export).(value.Number)
	if n.Value != 6 {
		t.Errorf("got %v, want 6", n.Value)
	}
}

func TestMacroCallReturnsBody(t *testing.T) {
	result := run(t, `
		let double = (n) {
			return n * 2
		}
		return double(21)
	`)
	n := result.Session.Globals.Storage.Get(result.Export).(value.Number)
	if n.Value != 42 {
		t.Errorf("got %v, want 42", n.Value)
	}
}

func TestUndefinedVariableErrors(t *testing.T) {
	_, diag := compiler.CompileFile(`return unknown_name`, "test.spwn", modules.NewPathLoader())
	if diag == nil {
		t.Fatal("expected an undefined-variable error, compiled cleanly")
	}
	if diag.Kind != diagnostic.KindUndefined {
		t.Errorf("got diagnostic kind %q, want %q (%s)", diag.Kind, diagnostic.KindUndefined, diag.Error())
	}
}
