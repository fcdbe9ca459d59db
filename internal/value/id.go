// Package value implements SPWN's runtime value model: the closed Value
// variant set, the Id tagged union used by Group/Color/Block/Item, pattern
// matching, the arena-backed value storage with its cooperative GC, and
// macro closures. Grounded on spwn-lang/src/value.rs, leveldata.rs's
// Id/Group/Color/Block/Item, and value_storage.rs.
package value

import "fmt"

// Class names one of the four independent id namespaces.
type Class int

const (
	ClassGroup Class = iota
	ClassColor
	ClassBlock
	ClassItem
)

func (c Class) String() string {
	switch c {
	case ClassGroup:
		return "g"
	case ClassColor:
		return "c"
	case ClassBlock:
		return "b"
	case ClassItem:
		return "i"
	default:
		return "?"
	}
}

// Id is the tagged union `Specific(u16) | Arbitrary(u16)` from spec.md §3.
// A Specific id is a user-written literal and is never rewritten; an
// Arbitrary id is a freshly-minted placeholder the allocator later maps to
// a Specific slot in 1..999 (0 is reserved).
type Id struct {
	Class      Class
	Specific   bool
	Value      uint16 // the literal id if Specific; the arbitrary counter value otherwise
}

// NewSpecific builds a Specific id. Ids written in source are 1..999; the
// root group 0 and the signature group 1001 are also built with it.
func NewSpecific(class Class, n uint16) Id {
	return Id{Class: class, Specific: true, Value: n}
}

// NewArbitrary builds an Arbitrary id from a counter value minted by
// Globals' per-class counters.
func NewArbitrary(class Class, counter uint16) Id {
	return Id{Class: class, Specific: false, Value: counter}
}

func (id Id) String() string {
	if id.Specific {
		return fmt.Sprintf("%d%s", id.Value, id.Class)
	}
	return fmt.Sprintf("?%s(%d)", id.Class, id.Value)
}

// IsZero reports whether this is the reserved zero/no-op id.
func (id Id) IsZero() bool {
	return id.Specific && id.Value == 0
}
