package parser_test

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/lexer"
	"github.com/spwn-lang/spwn/internal/parser"
	"github.com/spwn-lang/spwn/internal/token"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors) > 0 {
		t.Fatalf("unexpected lex errors: %v", l.Errors)
	}
	prog, errs := parser.ParseProgram(tokens, "test.spwn")
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs[0].Error())
	}
	return prog
}

func TestParseLetStatement(t *testing.T) {
	prog := parseSource(t, `let x = 5`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*ast.LetStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.LetStatement", prog.Statements[0])
	}
	if let.Name != "x" {
		t.Errorf("got name %q, want %q", let.Name, "x")
	}
	if _, ok := let.Value.(*ast.IntLiteral); !ok {
		t.Errorf("got value %T, want *ast.IntLiteral", let.Value)
	}
}

func TestParseArrowStatement(t *testing.T) {
	prog := parseSource(t, "-> x = 1")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	if !prog.Statements[0].IsArrow() {
		t.Errorf("expected leading -> to mark the statement arrow-executed")
	}
}

func TestParseArbitraryIDLiterals(t *testing.T) {
	prog := parseSource(t, "let a = ?g")
	let := prog.Statements[0].(*ast.LetStatement)
	id, ok := let.Value.(*ast.ArbitraryIDLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ArbitraryIDLiteral", let.Value)
	}
	if id.Class != ast.ClassGroup {
		t.Errorf("got class %v, want ClassGroup", id.Class)
	}
}

func TestParseArraySpreadAndCollect(t *testing.T) {
	prog := parseSource(t, "let a = [1, ..b, *c]")
	let := prog.Statements[0].(*ast.LetStatement)
	arr, ok := let.Value.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayLiteral", let.Value)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr.Elements))
	}
	if arr.Elements[0].Spread || arr.Elements[0].Collect {
		t.Errorf("element 0 should be a plain value")
	}
	if !arr.Elements[1].Spread {
		t.Errorf("element 1 should be Spread")
	}
	if !arr.Elements[2].Collect {
		t.Errorf("element 2 should be Collect")
	}
}

func TestParseObjectLiteralMode(t *testing.T) {
	prog := parseSource(t, "let o = trigger { 1: 899, 57: a }")
	let := prog.Statements[0].(*ast.LetStatement)
	obj, ok := let.Value.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ObjectLiteral", let.Value)
	}
	if obj.Mode != ast.ModeTrigger {
		t.Errorf("got mode %v, want ModeTrigger", obj.Mode)
	}
	if len(obj.Pairs) != 2 {
		t.Errorf("got %d pairs, want 2", len(obj.Pairs))
	}
}

func TestParseIsExprWithEitherPattern(t *testing.T) {
	prog := parseSource(t, "let ok = x is @number | @string")
	let := prog.Statements[0].(*ast.LetStatement)
	is, ok := let.Value.(*ast.IsExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.IsExpr", let.Value)
	}
	if is.Pattern == nil {
		t.Errorf("expected a non-nil pattern")
	}
}

func TestParseTernaryExpr(t *testing.T) {
	prog := parseSource(t, "let x = 1 if true else 2")
	let := prog.Statements[0].(*ast.LetStatement)
	if _, ok := let.Value.(*ast.TernaryExpr); !ok {
		t.Fatalf("got %T, want *ast.TernaryExpr", let.Value)
	}
}

func TestParseIfStatementWithElse(t *testing.T) {
	prog := parseSource(t, "if true {\n\tx = 1\n} else {\n\tx = 2\n}")
	ifStmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStatement", prog.Statements[0])
	}
	if len(ifStmt.Branches) != 1 {
		t.Errorf("got %d branches, want 1", len(ifStmt.Branches))
	}
	if len(ifStmt.Else) != 1 {
		t.Errorf("got %d else statements, want 1", len(ifStmt.Else))
	}
}
