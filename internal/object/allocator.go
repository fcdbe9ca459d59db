package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spwn-lang/spwn/internal/value"
)

// classOrder fixes the [4]T array layout the allocator and used-id scanner
// share: index 0 is Group, 1 Color, 2 Block, 3 Item.
var classOrder = [4]value.Class{value.ClassGroup, value.ClassColor, value.ClassBlock, value.ClassItem}

func classIndex(c value.Class) int {
	for i, cc := range classOrder {
		if cc == c {
			return i
		}
	}
	return -1
}

// UsedIDs scans a pre-existing level string and returns the set of
// already-occupied ids per class, by the same ad hoc key-by-key heuristics
// as leveldata.rs's get_used_ids: key 57 (groups), 51 (colors, except a
// group id when the object is a 1006 pulse trigger with key 52==1), 71
// (groups), 21/22/23 (colors), 80
// (blocks for collision objects 1815/1816, ignored for counter displays
// 1615, items otherwise), 95 (blocks).
func UsedIDs(levelString string) [4]map[uint16]struct{} {
	var out [4]map[uint16]struct{}
	for i := range out {
		out[i] = map[uint16]struct{}{}
	}
	if levelString == "" {
		return out
	}

	for _, obj := range strings.Split(levelString, ";") {
		if obj == "" {
			continue
		}
		props := strings.Split(obj, ",")
		m := map[string]string{}
		for i := 0; i+1 < len(props); i += 2 {
			m[props[i]] = props[i+1]
		}

		insert := func(classIdx int, raw string) {
			n, err := strconv.ParseUint(raw, 10, 16)
			if err == nil {
				out[classIdx][uint16(n)] = struct{}{}
			}
		}

		for key, val := range m {
			switch key {
			case "57":
				for _, g := range strings.Split(val, ".") {
					insert(0, g)
				}
			case "51":
				switch {
				case m["1"] == "1006" && m["52"] == "1":
					insert(0, val)
				case m["1"] == "1006":
					insert(1, val)
				default:
					insert(1, val)
				}
			case "71":
				insert(0, val)
			case "21", "22", "23":
				insert(1, val)
			case "80":
				switch m["1"] {
				case "1815", "1816":
					insert(2, val)
				case "1615":
					// counter display: not an id reference.
				default:
					insert(3, val)
				}
			case "95":
				insert(2, val)
			}
		}
	}
	return out
}

// idMax is the largest legal specific id in any of the four classes
// (1..999; 0 is reserved), matching leveldata.rs's ID_MAX.
const idMax = 999

// className is used only in overflow error messages, matching the order
// leveldata.rs reports them in.
var className = [4]string{"group", "color", "block ID", "item ID"}

// ResolveArbitraryIDs assigns a concrete Specific slot to every Arbitrary
// id any of objects' parameters carry, using the smallest free slot in
// 1..999 not already claimed by existingUsed or by a prior object in this
// same batch. Ids minted from the same Arbitrary counter value within a
// class always resolve to the same Specific slot (id_maps memoization in
// append_objects). Returns the final occupied-id counts per class
// (closed_ids.len() in the original) or an error if a class would exceed
// idMax.
func ResolveArbitraryIDs(objects []*Object, existingUsed [4]map[uint16]struct{}) ([4]int, error) {
	closed := existingUsed
	idMaps := [4]map[uint16]uint16{{}, {}, {}, {}}

	// First pass: record every Specific id already referenced by this
	// batch, so arbitrary ids don't collide with them.
	for _, obj := range objects {
		for _, p := range obj.Params {
			ids, class, ok := p.IDs()
			if !ok {
				continue
			}
			idx := classIndex(class)
			for _, id := range ids {
				if id.Specific {
					closed[idx][id.Value] = struct{}{}
				}
			}
		}
	}

	// Second pass: resolve every Arbitrary id to a Specific slot.
	for _, obj := range objects {
		for key, p := range obj.Params {
			ids, class, ok := p.IDs()
			if !ok {
				continue
			}
			idx := classIndex(class)
			changed := false
			resolved := make([]value.Id, len(ids))
			for i, id := range ids {
				if id.Specific {
					resolved[i] = id
					continue
				}
				changed = true
				if slot, ok := idMaps[idx][id.Value]; ok {
					resolved[i] = value.NewSpecific(class, slot)
					continue
				}
				slot, found := smallestFreeSlot(closed[idx])
				if !found {
					return [4]int{}, fmt.Errorf("this level exceeds the %s limit!", className[idx])
				}
				closed[idx][slot] = struct{}{}
				idMaps[idx][id.Value] = slot
				resolved[i] = value.NewSpecific(class, slot)
			}
			if changed {
				obj.Params[key] = p.WithIDs(resolved)
			}
		}
	}

	var counts [4]int
	for i := range closed {
		delete(closed[i], 0)
		if len(closed[i]) > idMax {
			return [4]int{}, fmt.Errorf("this level exceeds the %s limit! (%d/%d)", className[i], len(closed[i]), idMax)
		}
		counts[i] = len(closed[i])
	}
	return counts, nil
}

// smallestFreeSlot returns the smallest id in 1..9999 not present in used,
// matching append_objects' `for i in 1..10000` scan.
func smallestFreeSlot(used map[uint16]struct{}) (uint16, bool) {
	for i := uint16(1); i < 10000; i++ {
		if _, taken := used[i]; !taken {
			return i, true
		}
	}
	return 0, false
}
