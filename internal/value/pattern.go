package value

// PatternTag identifies the runtime pattern variant, as tabulated in
// spec.md §4.4 "Pattern application".
type PatternTag int

const (
	PatAny PatternTag = iota
	PatType
	PatNot
	PatEither
	PatBoth
	PatArray
	PatDict
	PatMacro
	PatCompare
)

// CompareOp names the comparison-delegating pattern variants
// (Eq/NotEq/MoreThan/LessThan/MoreOrEq/LessOrEq/In).
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNeq
	CmpGt
	CmpLt
	CmpGte
	CmpLte
	CmpIn
)

// Pattern is the runtime counterpart of internal/ast.Pattern: the value a
// pattern expression evaluates to, stored as value.PatternValue and used by
// MatchesValue/Subset (spec.md §4.4's matches_pat/in_pat).
type Pattern struct {
	Tag PatternTag

	TypeID uint16 // PatType

	Inner *Pattern // PatNot
	Left  *Pattern // PatEither, PatBoth
	Right *Pattern // PatEither, PatBoth

	// ArrayElems is PatArray's element-pattern list: empty means "matches
	// any array", one entry means every element must match it, and more
	// than one is a pattern MatchesValue refuses at match time (SPWN itself
	// has never supported multi-element array patterns).
	ArrayElems []*Pattern

	DictFields map[string]*Pattern // PatDict

	MacroArgs []*Pattern // PatMacro
	MacroRet  *Pattern   // PatMacro

	CompareOp      CompareOp // PatCompare
	CompareOperand StoredValue
}

func Any() *Pattern                     { return &Pattern{Tag: PatAny} }
func TypeOf(typeID uint16) *Pattern      { return &Pattern{Tag: PatType, TypeID: typeID} }
func Not(p *Pattern) *Pattern            { return &Pattern{Tag: PatNot, Inner: p} }
func Either(a, b *Pattern) *Pattern      { return &Pattern{Tag: PatEither, Left: a, Right: b} }
func Both(a, b *Pattern) *Pattern        { return &Pattern{Tag: PatBoth, Left: a, Right: b} }
func ArrayOf(elems ...*Pattern) *Pattern { return &Pattern{Tag: PatArray, ArrayElems: elems} }
func DictOf(fields map[string]*Pattern) *Pattern {
	return &Pattern{Tag: PatDict, DictFields: fields}
}
func MacroShape(args []*Pattern, ret *Pattern) *Pattern {
	return &Pattern{Tag: PatMacro, MacroArgs: args, MacroRet: ret}
}
func Compare(op CompareOp, operand StoredValue) *Pattern {
	return &Pattern{Tag: PatCompare, CompareOp: op, CompareOperand: operand}
}

// builtinTypeIDs maps a Kind to its canonical builtin TypeIndicator id, used
// by Pattern's Type(t) test ("to_num(value) == t" in spec.md's table). User
// types are numbered by internal/evalctx's TypeTable; this table only covers
// the built-in kinds, which internal/evalctx's builtinTypeNames registers
// under the same fixed ids at Globals construction.
var builtinTypeIDs = map[Kind]uint16{
	KindGroup: 1, KindColor: 2, KindBlock: 3, KindItem: 4, KindNumber: 5,
	KindBool: 6, KindTriggerFunc: 7, KindDict: 8, KindMacro: 9, KindString: 10,
	KindArray: 11, KindObj: 12, KindBuiltins: 13, KindTypeIndicator: 14,
	KindRange: 15, KindPattern: 16, KindNull: 17,
}

// BuiltinTypeID returns the fixed TypeIndicator id assigned to a builtin
// Kind, used by MatchesValue's PatType case and by the `as`-cast table.
func BuiltinTypeID(k Kind) uint16 { return builtinTypeIDs[k] }
