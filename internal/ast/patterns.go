package ast

import "github.com/spwn-lang/spwn/internal/token"

// Pattern is the syntax-level pattern tree produced by the parser wherever
// a `: Pattern` annotation, `is` expression, or match arm appears. It is
// distinct from internal/value.Pattern, which is the runtime value that
// patterns evaluate to.
type Pattern interface {
	Node
	patternNode()
}

// PatternBase carries the fields common to every pattern node.
type PatternBase struct {
	Token token.Token
}

func (b PatternBase) TokenLiteral() string  { return b.Token.Lexeme }
func (b PatternBase) GetToken() token.Token { return b.Token }
func (b PatternBase) patternNode()          {}

// PatternType is a bare type reference, e.g. `@number`.
type PatternType struct {
	PatternBase
	Name string
}

// PatternAny is the `_` wildcard pattern.
type PatternAny struct{ PatternBase }

// PatternArray is `[Pattern, Pattern, ...]`. Zero elements (`[]`) matches
// any array; exactly one matches an array whose every element matches that
// pattern; more than one parses fine but is rejected at match time, per
// real SPWN's own "arrays with multiple elements not yet supported"
// restriction.
type PatternArray struct {
	PatternBase
	Elems []Pattern
}

// PatternDictEntry is one `key: Pattern` entry of a dict pattern.
type PatternDictEntry struct {
	Key     string
	Pattern Pattern
}

// PatternDict is `{ key: Pattern, ... }`.
type PatternDict struct {
	PatternBase
	Entries []PatternDictEntry
}

// PatternEither is `A | B`, matching if either side matches.
type PatternEither struct {
	PatternBase
	Left  Pattern
	Right Pattern
}

// PatternBoth is `A & B`, matching if both sides match.
type PatternBoth struct {
	PatternBase
	Left  Pattern
	Right Pattern
}

// PatternNot is `!Pattern`, matching if the inner pattern does not.
type PatternNot struct {
	PatternBase
	Inner Pattern
}

// CompareOp is a pattern comparison operator.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpLt
	CmpLte
	CmpGt
	CmpGte
	CmpIn
)

// PatternCompare is `> 5`, `<= 10`, `in [1, 2, 3]`, matching a value
// against a comparison against a fixed operand expression.
type PatternCompare struct {
	PatternBase
	Op      CompareOp
	Operand Expression
}

// PatternLiteral wraps a literal expression used directly as an exact-match
// pattern, e.g. `5`, `"a"`, `true`.
type PatternLiteral struct {
	PatternBase
	Value Expression
}

// PatternMacro is a macro-shape pattern: `(Pat, Pat) -> RetPat`.
type PatternMacro struct {
	PatternBase
	ArgPatterns []Pattern
	RetPattern  Pattern
}
