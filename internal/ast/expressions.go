package ast

import "github.com/spwn-lang/spwn/internal/token"

// Identifier is a variable reference.
type Identifier struct {
	ExprBase
	Value string
}

// IntLiteral is an integer literal (any base).
type IntLiteral struct {
	ExprBase
	Value int64
}

// FloatLiteral is a floating point literal.
type FloatLiteral struct {
	ExprBase
	Value float64
}

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	ExprBase
	Value bool
}

// StringLiteral is a string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

// NullLiteral is the `null` literal.
type NullLiteral struct{ ExprBase }

// UnderscoreExpr is the `_` any-pattern atom.
type UnderscoreExpr struct{ ExprBase }

// BuiltinsExpr is the `$` sentinel referring to the global Builtins value.
type BuiltinsExpr struct{ ExprBase }

// SelfExpr is the `self` keyword.
type SelfExpr struct{ ExprBase }

// IDClass names one of the four identifier classes.
type IDClass int

const (
	ClassGroup IDClass = iota
	ClassColor
	ClassBlock
	ClassItem
)

func (c IDClass) String() string {
	return [...]string{"g", "c", "b", "i"}[c]
}

// IDLiteral is a specific id literal, e.g. `5g`.
type IDLiteral struct {
	ExprBase
	Class IDClass
	Value uint16
}

// ArbitraryIDLiteral is `?g`/`?c`/`?b`/`?i` — mints a fresh arbitrary id.
type ArbitraryIDLiteral struct {
	ExprBase
	Class IDClass
}

// TypeIndicatorExpr is `@name`.
type TypeIndicatorExpr struct {
	ExprBase
	Name string
}

// EpsilonExpr is the `ε` sentinel literal.
type EpsilonExpr struct{ ExprBase }

// ArrayElement is one entry of an array literal: a plain expression, or a
// spread (`..expr`) / collect (`*expr`) prefix per spec.md §4.5.
type ArrayElement struct {
	Value      Expression
	Spread     bool
	Collect    bool
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	ExprBase
	Elements []ArrayElement
}

// DictPair is one `key: value` entry of a dict literal. Key is either a
// plain identifier/string name (Name != "") or a computed key expression.
type DictPair struct {
	Name      string
	KeyExpr   Expression
	Value     Expression
}

// DictLiteral is `{ k: v, ... }`.
type DictLiteral struct {
	ExprBase
	Pairs []DictPair
}

// ObjectMode selects Object vs Trigger emission semantics (spec.md §3/§6).
type ObjectMode int

const (
	ModeObject ObjectMode = iota
	ModeTrigger
)

// ObjectPair is one `key: value` entry of an obj/trigger literal. Key may
// be a numeric parameter index or an "object_key" dict expression.
type ObjectPair struct {
	Key   Expression
	Value Expression
}

// ObjectLiteral is `obj { ... }` or `trigger { ... }`.
type ObjectLiteral struct {
	ExprBase
	Mode  ObjectMode
	Pairs []ObjectPair
}

// ListComprehension is `[expr for name in it if cond]`.
type ListComprehension struct {
	ExprBase
	Result   Expression
	VarName  string
	Iterable Expression
	Cond     Expression // optional
}

// TernaryExpr is `then if cond else else_` or `then if is Pat else else_`.
type TernaryExpr struct {
	ExprBase
	Then        Expression
	Cond        Expression // used when PatternCond == nil
	PatternCond Pattern    // used for `x if is Pat else y`
	Subject     Expression // the value tested against PatternCond
	Else        Expression
}

// MatchCase is one arm of a match expression.
type MatchCase struct {
	Pattern   Pattern // nil for `default`
	IsDefault bool
	Body      Expression
}

// MatchExpr is `match subject { pat -> expr, default -> expr }`.
type MatchExpr struct {
	ExprBase
	Subject Expression
	Cases   []MatchCase
}

// ArgDef describes one macro argument.
type ArgDef struct {
	Name      string
	Default   Expression // optional
	Pattern   Pattern    // optional
	ByRef     bool
	Variadic  bool
}

// MacroLiteral is a closure literal: `(args) { body }` or `(args) -> RetPat { body }`.
type MacroLiteral struct {
	ExprBase
	Args       []ArgDef
	Body       []Statement
	RetPattern Pattern // optional
}

// MacroPatternLiteral describes a macro's shape as a pattern: `(Pat, Pat) -> RetPat`.
type MacroPatternLiteral struct {
	ExprBase
	ArgPatterns []Pattern
	RetPattern  Pattern
}

// Argument is one call argument, optionally named or spread.
type Argument struct {
	Name   string // optional named argument
	Value  Expression
	Spread bool
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	ExprBase
	Callee Expression
	Args   []Argument
}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	ExprBase
	Target Expression
	Index  Expression
}

// SliceDim is one dimension of an n-dimensional slice expression.
type SliceDim struct {
	Start Expression // optional
	Stop  Expression // optional
	Step  Expression // optional
}

// SliceExpr is `target[s1, s2, ...]` with optional start/stop/step per dim.
type SliceExpr struct {
	ExprBase
	Target Expression
	Dims   []SliceDim
}

// MemberExpr is `target.name`.
type MemberExpr struct {
	ExprBase
	Target Expression
	Name   string
}

// AssociatedExpr is `target::name`.
type AssociatedExpr struct {
	ExprBase
	Target Expression
	Name   string
}

// ConstructorExpr is `@Type { fields... }`.
type ConstructorExpr struct {
	ExprBase
	Type   Expression
	Fields []DictPair
}

// UnaryExpr is a prefix/postfix unary operator: `-x`, `!x`, `~x`, `x++`, `x--`.
type UnaryExpr struct {
	ExprBase
	Op      token.TokenType
	Operand Expression
	Postfix bool
}

// BinaryExpr is a binary operator expression.
type BinaryExpr struct {
	ExprBase
	Op    token.TokenType
	Left  Expression
	Right Expression
}

// AsExpr is `value as Type`.
type AsExpr struct {
	ExprBase
	Value Expression
	Type  Expression
}

// IsExpr is `value is Pattern`.
type IsExpr struct {
	ExprBase
	Value   Expression
	Pattern Pattern
}

// RangeExpr is `start..end` or `start..end..step`.
type RangeExpr struct {
	ExprBase
	Start Expression
	End   Expression
	Step  Expression // optional
}

// ImportExpr is `import "path"` or `import! lib` used in expression position.
type ImportExpr struct {
	ExprBase
	Path    string
	IsLib   bool
}

// TupleLiteral/placeholder kept minimal: SPWN has no tuple type in spec.md,
// arrays serve that role; intentionally not defined.
