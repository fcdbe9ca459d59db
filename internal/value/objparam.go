package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectParameter is one value slot of a level object/trigger, grounded on
// leveldata.rs's ObjParam enum and its Display impl. Ids that were never
// resolved to a Specific slot (still Arbitrary when this is serialized)
// print as "0", matching the original's fallback.
type ObjectParameter struct {
	kind objParamKind

	id   Id
	ids  []Id
	num  float64
	b    bool
	text string
}

type objParamKind int

const (
	opGroup objParamKind = iota
	opColor
	opBlock
	opItem
	opNumber
	opBool
	opText
	opGroupList
	opEpsilon
)

func ObjParamGroup(id Id) ObjectParameter { return ObjectParameter{kind: opGroup, id: id} }
func ObjParamColor(id Id) ObjectParameter { return ObjectParameter{kind: opColor, id: id} }
func ObjParamBlock(id Id) ObjectParameter { return ObjectParameter{kind: opBlock, id: id} }
func ObjParamItem(id Id) ObjectParameter  { return ObjectParameter{kind: opItem, id: id} }
func ObjParamNumber(n float64) ObjectParameter { return ObjectParameter{kind: opNumber, num: n} }
func ObjParamBool(b bool) ObjectParameter      { return ObjectParameter{kind: opBool, b: b} }
func ObjParamText(s string) ObjectParameter    { return ObjectParameter{kind: opText, text: s} }
func ObjParamGroupList(ids []Id) ObjectParameter {
	return ObjectParameter{kind: opGroupList, ids: ids}
}
func ObjParamEpsilon() ObjectParameter { return ObjectParameter{kind: opEpsilon} }

// IDs reports the id(s) this parameter carries, for the allocator's used-id
// scan and specific-id rewrite pass. ok is false for non-id parameters.
func (p ObjectParameter) IDs() (ids []Id, class Class, ok bool) {
	switch p.kind {
	case opGroup:
		return []Id{p.id}, ClassGroup, true
	case opColor:
		return []Id{p.id}, ClassColor, true
	case opBlock:
		return []Id{p.id}, ClassBlock, true
	case opItem:
		return []Id{p.id}, ClassItem, true
	case opGroupList:
		return p.ids, ClassGroup, true
	default:
		return nil, 0, false
	}
}

// WithIDs returns a copy of p with its id(s) replaced, used once arbitrary
// ids have been resolved to specific slots.
func (p ObjectParameter) WithIDs(ids []Id) ObjectParameter {
	cp := p
	if p.kind == opGroupList {
		cp.ids = ids
	} else if len(ids) == 1 {
		cp.id = ids[0]
	}
	return cp
}

// String renders the parameter in level-object wire format, matching
// leveldata.rs's `impl fmt::Display for ObjParam` exactly.
func (p ObjectParameter) String() string {
	switch p.kind {
	case opGroup, opColor, opBlock, opItem:
		if p.id.Specific {
			return strconv.Itoa(int(p.id.Value))
		}
		return "0"
	case opNumber:
		if fracIsNegligible(p.num) {
			return strconv.Itoa(int(p.num))
		}
		return strconv.FormatFloat(p.num, 'f', 3, 64)
	case opBool:
		if p.b {
			return "1"
		}
		return "0"
	case opText:
		return p.text
	case opGroupList:
		parts := make([]string, len(p.ids))
		for i, id := range p.ids {
			if id.Specific {
				parts[i] = strconv.Itoa(int(id.Value))
			} else {
				parts[i] = "0"
			}
		}
		return strings.Join(parts, ".")
	case opEpsilon:
		return "0.05"
	default:
		return fmt.Sprintf("<invalid-objparam-%d>", p.kind)
	}
}

func fracIsNegligible(n float64) bool {
	frac := n - float64(int(n))
	if frac < 0 {
		frac = -frac
	}
	return frac < 0.001
}
