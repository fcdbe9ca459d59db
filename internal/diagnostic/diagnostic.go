// Package diagnostic implements SPWN's structured compiler error taxonomy:
// a primary span, optional secondary labels, and an optional note, modeled
// after the `CompilerError` variant list in errors/src/lib.rs that spec.md
// §4.8 distills. The carried-span/Error() shape follows
// internal/diagnostics.DiagnosticError from funvibe/funxy (see
// cmd/lsp/diagnostics.go for its consumer), generalized from a single
// flat error type into the named variant kinds spec.md calls for.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/spwn-lang/spwn/internal/token"
)

// Kind names one of the taxonomy's error variants.
type Kind string

const (
	KindUndefined            Kind = "undefined"
	KindType                 Kind = "type"
	KindPatternMismatch      Kind = "pattern_mismatch"
	KindMutability           Kind = "mutability"
	KindContextChangeMutate  Kind = "context_change_mutate"
	KindContextChange        Kind = "context_change"
	KindBreakNeverUsed       Kind = "break_never_used"
	KindBuiltin              Kind = "builtin"
	KindPackage              Kind = "package"
	KindPackageSyntax        Kind = "package_syntax"
	KindSyntax               Kind = "syntax"
	KindCustom               Kind = "custom"
)

// Label is a secondary span annotated with a short explanatory message,
// e.g. pointing at the definition site of a variable involved in the error.
type Label struct {
	Span    token.Span
	Message string
}

// Diagnostic is a single compiler error: a kind, a primary span, a message,
// zero or more secondary labels, and an optional closing note.
type Diagnostic struct {
	Kind    Kind
	Span    token.Span
	Message string
	Labels  []Label
	Note    string
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s", d.Span.File, d.Span.StartLine, d.Span.StartColumn, d.Message)
	for _, l := range d.Labels {
		fmt.Fprintf(&b, "\n  %s:%d:%d: %s", l.Span.File, l.Span.StartLine, l.Span.StartColumn, l.Message)
	}
	if d.Note != "" {
		fmt.Fprintf(&b, "\n  note: %s", d.Note)
	}
	return b.String()
}

// New builds a Diagnostic of the given kind at span with message.
func New(kind Kind, span token.Span, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: message}
}

// NewSyntaxError is a convenience constructor used by internal/parser,
// which only ever raises the KindSyntax variant.
func NewSyntaxError(span token.Span, message string) *Diagnostic {
	return New(KindSyntax, span, message)
}

// WithLabel returns d with an additional secondary label, for chaining at
// the call site.
func (d *Diagnostic) WithLabel(span token.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}

// WithNote returns d with its closing note set.
func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Note = note
	return d
}

// UndefinedErr reports a reference to a name with no binding in scope,
// annotated with did-you-mean suggestions computed by Suggest.
func UndefinedErr(span token.Span, name string, candidates []string) *Diagnostic {
	d := New(KindUndefined, span, fmt.Sprintf("undefined name %q", name))
	if sugg := Suggest(name, candidates); len(sugg) > 0 {
		d.Note = "did you mean: " + strings.Join(sugg, ", ") + "?"
	}
	return d
}

// TypeError reports a value of the wrong runtime type reaching an operation.
func TypeError(span token.Span, expected, got string) *Diagnostic {
	return New(KindType, span, fmt.Sprintf("expected %s, got %s", expected, got))
}

// PatternMismatchError reports a value failing to satisfy a pattern.
func PatternMismatchError(span token.Span, pattern, got string) *Diagnostic {
	return New(KindPatternMismatch, span, fmt.Sprintf("value of type %s does not match pattern %s", got, pattern))
}

// MutabilityError reports a write to a value not flagged mutable.
func MutabilityError(span token.Span, name string) *Diagnostic {
	return New(KindMutability, span, fmt.Sprintf("%q is not mutable", name))
}

// ContextChangeMutateError reports a mutation attempted from outside the
// function context that owns the target value (spec.md §3 "StoredValue").
func ContextChangeMutateError(span token.Span, name string) *Diagnostic {
	return New(KindContextChangeMutate, span, fmt.Sprintf("cannot mutate %q from a different trigger context than it was defined in", name))
}

// ContextChangeError reports a general context-ownership violation that
// isn't specifically a mutation (e.g. returning a context-local handle).
func ContextChangeError(span token.Span, message string) *Diagnostic {
	return New(KindContextChange, span, message)
}

// BreakNeverUsedError reports a `break`/`continue` statement outside any
// enclosing loop.
func BreakNeverUsedError(span token.Span, keyword string) *Diagnostic {
	return New(KindBreakNeverUsed, span, fmt.Sprintf("%s used outside of a loop", keyword))
}

// BuiltinError reports a built-in function call with the wrong argument
// count, type, or value.
func BuiltinError(span token.Span, name, message string) *Diagnostic {
	return New(KindBuiltin, span, fmt.Sprintf("$.%s: %s", name, message))
}

// PackageError reports a failure resolving or loading an imported module.
func PackageError(span token.Span, path, message string) *Diagnostic {
	return New(KindPackage, span, fmt.Sprintf("importing %q: %s", path, message))
}

// PackageSyntaxError reports a lex/parse failure inside an imported module.
func PackageSyntaxError(span token.Span, path string, inner *Diagnostic) *Diagnostic {
	d := New(KindPackageSyntax, span, fmt.Sprintf("syntax error in imported module %q", path))
	if inner != nil {
		d.Labels = append(d.Labels, Label{Span: inner.Span, Message: inner.Message})
	}
	return d
}

// CustomError wraps a user-level `throw` payload that escaped all catches.
func CustomError(span token.Span, message string) *Diagnostic {
	return New(KindCustom, span, message)
}
