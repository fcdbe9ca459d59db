package evalctx

import (
	"github.com/spwn-lang/spwn/internal/object"
	"github.com/spwn-lang/spwn/internal/value"
)

// Counter mints Arbitrary ids for one id class (group/color/block/item),
// matching spwn-lang/src/globals.rs's per-class `Counter` fields.
type Counter struct {
	next uint16
	class value.Class
}

// NewCounter starts a fresh mint for class, first Arbitrary value 1.
func NewCounter(class value.Class) *Counter {
	return &Counter{next: 1, class: class}
}

// Next mints the next Arbitrary id in this counter's class.
func (c *Counter) Next() value.Id {
	id := value.NewArbitrary(c.class, c.next)
	c.next++
	return id
}

// TypeID names a user-defined or builtin type by its registered numeric
// identity (matches value.Pattern's TypeID field and value.BuiltinTypeID).
type TypeID int

// Member is one `impl` entry: a stored value (almost always a Macro) bound
// under a dotted TypeID.name path, e.g. `@vec2::length`.
type Member struct {
	Value value.StoredValue
}

// builtinTypeNames lists the surface names spec.md §4.2 assigns to the 17
// builtin Kinds, in the same order value.builtinTypeIDs numbers them
// (1..17), so TypeTable can seed known names without reaching into an
// unexported table.
var builtinTypeNames = map[string]TypeID{
	"@group": 1, "@color": 2, "@block": 3, "@item": 4, "@number": 5,
	"@bool": 6, "@trigger_function": 7, "@dictionary": 8, "@macro": 9, "@string": 10,
	"@array": 11, "@object": 12, "@builtins": 13, "@type_indicator": 14,
	"@range": 15, "@pattern": 16, "@null": 17,
}

// TypeTable records every `type @Foo` declaration seen so far, mapping its
// surface name to the TypeID new patterns/values reference. Builtin type
// names are seeded in at construction; user types mint fresh ids above 17.
type TypeTable struct {
	byName map[string]TypeID
	names  []string
	next   TypeID
}

// NewTypeTable seeds the table with the builtin type names so user code
// can `impl` onto them too.
func NewTypeTable() *TypeTable {
	t := &TypeTable{byName: map[string]TypeID{}, next: 18}
	for name, id := range builtinTypeNames {
		t.byName[name] = id
		t.names = append(t.names, name)
	}
	return t
}

// Lookup returns the TypeID registered for name, if any.
func (t *TypeTable) Lookup(name string) (TypeID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Define registers a new user type name, minting a fresh TypeID. Redefining
// an existing name returns its original TypeID unchanged (spec.md §7's
// "redefining a type name is a no-op re-bind, not an error").
func (t *TypeTable) Define(name string) TypeID {
	if id, ok := t.Lookup(name); ok {
		return id
	}
	id := t.next
	t.next++
	t.byName[name] = id
	t.names = append(t.names, name)
	return id
}

// Names lists every type name registered so far, the seeded builtin names
// included, used to build did-you-mean candidate lists.
func (t *TypeTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Globals is the single mutable root every Context/FullContext shares
// across a compile: the value arena, the type/impl tables, the four id
// counters, the accumulated trigger-function object lists, the
// preservation stack for GC, and the interned constant cache. Grounded on
// spwn-lang/src/globals.rs's `Globals` struct.
type Globals struct {
	Storage *value.Storage

	Types *TypeTable
	Impls map[TypeID]map[string]Member

	Counters [4]*Counter // indexed by classIndex order: Group, Color, Block, Item

	Funcs     []*object.FunctionID
	funcIndex map[value.Id]int
	emitOrder float64

	Preserved *value.PreservedStack

	Interned map[string]value.StoredValue
}

// NewGlobals builds an empty Globals ready for a fresh compile.
func NewGlobals() *Globals {
	g := &Globals{
		Storage:  value.NewStorage(),
		Types:    NewTypeTable(),
		Impls:    map[TypeID]map[string]Member{},
		Counters: [4]*Counter{NewCounter(value.ClassGroup), NewCounter(value.ClassColor), NewCounter(value.ClassBlock), NewCounter(value.ClassItem)},
		Preserved: &value.PreservedStack{},
		Interned: map[string]value.StoredValue{},
	}
	return g
}

func classIndexOf(c value.Class) int {
	switch c {
	case value.ClassGroup:
		return 0
	case value.ClassColor:
		return 1
	case value.ClassBlock:
		return 2
	case value.ClassItem:
		return 3
	default:
		return -1
	}
}

// NextID mints a fresh Arbitrary id in class via this Globals' counters.
func (g *Globals) NextID(class value.Class) value.Id {
	return g.Counters[classIndexOf(class)].Next()
}

// Impl looks up a member bound via `impl @Type { name: ... }`.
func (g *Globals) Impl(t TypeID, name string) (Member, bool) {
	members, ok := g.Impls[t]
	if !ok {
		return Member{}, false
	}
	m, ok := members[name]
	return m, ok
}

// DefineImpl binds name under type t, overwriting any prior binding (a
// second `impl` block for the same type merges rather than replaces the
// whole table, per spec.md §7).
func (g *Globals) DefineImpl(t TypeID, name string, h value.StoredValue) {
	members, ok := g.Impls[t]
	if !ok {
		members = map[string]Member{}
		g.Impls[t] = members
	}
	members[name] = Member{Value: h}
}

// AddFunc registers a completed trigger-function's object list for the
// compiler's final AppendObjects/ApplyFnIDs pass.
func (g *Globals) AddFunc(f *object.FunctionID) {
	g.Funcs = append(g.Funcs, f)
}

// Emit enqueues obj under group's trigger-function object list, minting
// that list on group's first emission, and stamps a monotonically
// increasing Order on the entry so object/serialize.go's ApplyFnIDs can
// later reconstruct $.add's call order within one trigger function.
// Grounded on spwn-lang/src/builtins/mod.rs's `add` builtin, which pushes
// onto `globals.func_ids[context.start_group].obj_list` under a running
// `globals.func_ids` insertion counter.
func (g *Globals) Emit(group value.Id, obj *object.Object) {
	if g.funcIndex == nil {
		g.funcIndex = map[value.Id]int{}
	}
	idx, ok := g.funcIndex[group]
	if !ok {
		idx = len(g.Funcs)
		g.Funcs = append(g.Funcs, &object.FunctionID{Group: group})
		g.funcIndex[group] = idx
	}
	obj.FuncID = group
	g.Funcs[idx].Objects = append(g.Funcs[idx].Objects, object.FunctionIDEntry{Obj: obj, Order: g.emitOrder})
	g.emitOrder++
}

// Intern caches a once-computed constant StoredValue (e.g. a builtin
// module's exported dict) under key, so repeated `import` of the same
// builtin module reuses one arena slot instead of re-evaluating it.
func (g *Globals) Intern(key string, h value.StoredValue) {
	g.Interned[key] = h
}

// InternedLookup returns a previously interned value for key.
func (g *Globals) InternedLookup(key string) (value.StoredValue, bool) {
	h, ok := g.Interned[key]
	return h, ok
}
