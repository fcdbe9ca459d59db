// Package compiler wires internal/lexer, internal/parser,
// internal/evaluator, internal/evalctx and internal/modules into the
// single entry point spec.md §2's data-flow line names: "source text →
// tokens → AST → (compile: AST × initial context → trigger list +
// resolved identifier tables)". It is the one package allowed to import
// both internal/evaluator and internal/modules, breaking the cycle each
// of those packages' own doc comments defer to "internal/compiler".
package compiler

import (
	"github.com/google/uuid"

	"github.com/spwn-lang/spwn/internal/ast"
	"github.com/spwn-lang/spwn/internal/builtins"
	"github.com/spwn-lang/spwn/internal/diagnostic"
	"github.com/spwn-lang/spwn/internal/evalctx"
	"github.com/spwn-lang/spwn/internal/evaluator"
	"github.com/spwn-lang/spwn/internal/lexer"
	"github.com/spwn-lang/spwn/internal/modules"
	"github.com/spwn-lang/spwn/internal/object"
	"github.com/spwn-lang/spwn/internal/parser"
	"github.com/spwn-lang/spwn/internal/token"
	"github.com/spwn-lang/spwn/internal/value"
)

// rootGroup is the start group every top-level file (and every imported
// module, run as its own nested top level) begins evaluating under.
// Specific(group, 0) is the reserved "no trigger function" sentinel
// spec.md §4.7/§9 gives special meaning to (a trigger's spawn-triggered
// flag is false exactly when its start group is this one).
var rootGroup = value.NewSpecific(value.ClassGroup, 0)

// Lex runs the lexer over source to completion, collecting every token up
// to and including EOF, and reports the first lexical error (if any) as a
// syntax Diagnostic anchored at that token's own line/column.
func Lex(source, file string) ([]token.Token, *diagnostic.Diagnostic) {
	l := lexer.New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors) > 0 {
		first := l.Errors[0]
		span := token.Span{File: file, StartLine: first.Line, StartColumn: first.Column, EndLine: first.Line, EndColumn: first.Column}
		return nil, diagnostic.NewSyntaxError(span, first.Message)
	}
	return tokens, nil
}

// Parse runs the lexer then the parser over source, returning the first
// syntax error (if any) as a Diagnostic.
func Parse(source, file string) (*ast.Program, *diagnostic.Diagnostic) {
	tokens, diag := Lex(source, file)
	if diag != nil {
		return nil, diag
	}
	prog, errs := parser.ParseProgram(tokens, file)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return prog, nil
}

// Session holds everything one end-to-end compile shares across every
// file it touches (the entry file plus every transitively imported
// module): one Globals (one arena, one set of id counters, one impl
// table — spec.md §3's "Globals ... the one shared mutable root"), and
// one modules.Manager caching each distinct resolved import to a single
// evaluation.
type Session struct {
	Globals  *evalctx.Globals
	Builtins map[string]*value.MacroData
	Modules  *modules.Manager
}

// NewSession builds a fresh Session around loader, ready to compile one
// entry file (and whatever it transitively imports).
func NewSession(loader modules.Loader) *Session {
	globals := evalctx.NewGlobals()
	return &Session{
		Globals:  globals,
		Builtins: builtins.Register(globals),
		Modules:  modules.NewManager(loader),
	}
}

// newEvaluator builds an Evaluator sharing s's Globals/Builtins and wires
// its Import hook back through s.Modules, so `import`/`import!` inside any
// file this Session runs resolves through the same cache and the same
// running RunFile closure (runModule, below), however deep the import
// chain goes.
func (s *Session) newEvaluator(file string) *evaluator.Evaluator {
	ev := evaluator.New(s.Globals, file)
	ev.Builtins = s.Builtins
	ev.Import = func(span token.Span, path string, isLib bool) (value.StoredValue, *diagnostic.Diagnostic) {
		dir := fileDir(file)
		return s.Modules.Resolve(span, dir, path, isLib, s.runModule)
	}
	return ev
}

// runModule implements modules.RunFile: it lexes, parses, and evaluates
// one resolved import's source under a fresh root Context but the
// Session's shared Globals, and returns whatever StoredValue its body's
// last statement left in the context's return slot — spec.md's "exported
// value" for a module is simply what falls out of running it as a
// miniature top-level program.
func (s *Session) runModule(source, file, dir string) (value.StoredValue, *diagnostic.Diagnostic) {
	prog, diag := Parse(source, file)
	if diag != nil {
		return 0, diag
	}
	ev := s.newEvaluator(file)
	ctx := evalctx.NewContext(rootGroup)
	fc := evalctx.NewFullContext(ctx)
	s.Globals.Preserved.Push()
	defer func() {
		roots := s.Globals.Preserved.Pop()
		s.Globals.Storage.Sweep(roots)
	}()
	if diag := ev.EvalProgram(prog, fc); diag != nil {
		return 0, diag
	}
	s.Globals.Storage.IncrementLifetimes([]value.StoredValue{ctx.ReturnValue})
	s.Globals.Preserved.Preserve(ctx.ReturnValue)
	return ctx.ReturnValue, nil
}

func fileDir(file string) string {
	i := -1
	for j := len(file) - 1; j >= 0; j-- {
		if file[j] == '/' {
			i = j
			break
		}
	}
	if i < 0 {
		return "."
	}
	return file[:i]
}

// Result is one entry file's finished compile: the Session it ran in
// (carrying every trigger-function's accumulated object list), the value
// its top-level body returned, and a correlation id unique to this
// compile, useful for tying a `--stats` report back to the diagnostics
// log of the run that produced it.
type Result struct {
	Export  value.StoredValue
	Session *Session
	ID      uuid.UUID
}

// CompileFile runs the full front half of the pipeline — lex, parse,
// evaluate — for one entry file under a fresh Session, leaving every
// emitted trigger queued on the Session's Globals for Finish to place and
// serialize. The entry file's own directory seeds relative-import
// resolution; library imports (`import! lib`) additionally search the
// executable's directory and SPWN_PATH, per loader's own search order.
func CompileFile(source, file string, loader modules.Loader) (*Result, *diagnostic.Diagnostic) {
	s := NewSession(loader)
	export, diag := s.runModule(source, file, fileDir(file))
	if diag != nil {
		return nil, diag
	}
	return &Result{Export: export, Session: s, ID: uuid.New()}, nil
}

// Finish runs spec.md §4.7's trigger/object builder and id-allocator
// tail: place every accumulated trigger on its strip position, resolve
// every Arbitrary id against existingLevel's already-occupied ids, and
// serialize the result to append to existingLevel (after stripping that
// level's own prior SPWN-signed objects). It returns the new full level
// string and the final occupied-id counts per class (group, color,
// block, item), or an error if any class overflows its 999-slot limit.
func (r *Result) Finish(existingLevel string) (string, [4]int, error) {
	objects := object.ApplyFnIDs(r.Session.Globals.Funcs)
	stripped := object.RemoveSignedObjects(existingLevel)
	fragment, counts, err := object.AppendObjects(objects, stripped)
	if err != nil {
		return "", [4]int{}, err
	}
	return stripped + fragment, counts, nil
}
