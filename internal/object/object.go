// Package object implements the level-object/trigger model and the
// bit-exact wire serializer spec.md §4.7 and §6 describe: an Object is a
// sparse parameter map plus a mode (Object vs Trigger), and AppendObjects
// turns a batch of them into the level-string fragment GD expects,
// resolving every arbitrary id to a concrete 1..999 slot along the way.
// Grounded on compiler/src/leveldata.rs's GdObj/get_used_ids/
// append_objects/apply_fn_ids.
package object

import "github.com/spwn-lang/spwn/internal/value"

// Mode selects Object vs Trigger serialization; Trigger additionally gets
// a `108,1` linked-group tag and participates in strip placement.
type Mode = value.ObjectMode

const (
	ModeObject  = value.ModeObject
	ModeTrigger = value.ModeTrigger
)

// Object is a level object or trigger prior to serialization: a sparse
// mapping from parameter index to value, its mode, the Group of the
// trigger-function that emitted it, and a monotonically assigned unique id
// used only to break ties when two objects share an ordering key.
type Object struct {
	Params   map[uint16]value.ObjectParameter
	Mode     Mode
	FuncID   value.Id
	UniqueID int
}

// NewObject returns an empty Object of the given mode.
func NewObject(mode Mode) *Object {
	return &Object{Params: map[uint16]value.ObjectParameter{}, Mode: mode}
}

// SignatureGroup is the fixed group SPWN stamps onto every object it
// emits, so a subsequent compile can find and strip its own prior output
// from an existing level string. Grounded on leveldata.rs's
// SPWN_SIGNATURE_GROUP = Group{id: Id::Specific(1001)}.
var SignatureGroup = value.NewSpecific(value.ClassGroup, 1001)

// Strip placement constants from leveldata.rs.
const (
	StartHeight = 10
	MaxHeight   = 40
	DeltaX      = 1
)

// FunctionID collects every object emitted from one trigger-function
// context, in insertion order, so apply_fn_ids can place them on the
// level's strip in a stable, deterministic order.
type FunctionID struct {
	Group   value.Id
	Objects []FunctionIDEntry
}

// FunctionIDEntry pairs an emitted Object with its ordering key (the
// global insertion counter at the moment it was enqueued via `$.add`).
type FunctionIDEntry struct {
	Obj   *Object
	Order float64
}
