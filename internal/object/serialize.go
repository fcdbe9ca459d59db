package object

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spwn-lang/spwn/internal/value"
)

// RemoveSignedObjects strips every prior-compile object tagged with
// SignatureGroup from an existing level string, so a fresh compile doesn't
// duplicate its own previous output. Grounded on leveldata.rs's
// remove_spwn_objects.
func RemoveSignedObjects(levelString string) string {
	if levelString == "" {
		return levelString
	}
	spwnGroup := strconv.Itoa(int(SignatureGroup.Value))

	kept := make([]string, 0)
	for _, obj := range strings.Split(levelString, ";") {
		keyVal := strings.Split(obj, ",")
		signed := false
		for i := 0; i+1 < len(keyVal); i += 2 {
			if keyVal[i] == "57" {
				for _, g := range strings.Split(keyVal[i+1], ".") {
					if g == spwnGroup {
						signed = true
					}
				}
			}
		}
		if !signed {
			kept = append(kept, obj)
		}
	}
	return strings.Join(kept, ";")
}

// AppendObjects resolves every arbitrary id across objects, serializes
// each to level-object wire format, and returns the fragment to append to
// existingLevel along with the final occupied-id counts per class
// (group/color/block/item). Grounded on leveldata.rs's append_objects.
func AppendObjects(objects []*Object, existingLevel string) (string, [4]int, error) {
	used := UsedIDs(existingLevel)
	counts, err := ResolveArbitraryIDs(objects, used)
	if err != nil {
		return "", [4]int{}, err
	}

	var b strings.Builder
	for _, obj := range objects {
		b.WriteString(serializeObject(obj))
	}
	return b.String(), counts, nil
}

// serializeObject renders a single Object as `key,value,...;`, stamping
// SignatureGroup onto parameter 57 (merging into a GroupList if 57 is
// already a Group or GroupList) and, for Trigger mode, appending the
// `108,1` linked-group tag. Grounded on leveldata.rs's serialize_obj.
func serializeObject(obj *Object) string {
	stampSignature(obj)

	keys := make([]int, 0, len(obj.Params))
	for k := range obj.Params {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%d,%s,", k, obj.Params[uint16(k)].String())
	}
	b.WriteString(";")

	if obj.Mode == ModeTrigger {
		// Replace the trailing ";" with the linked-group tag + ";",
		// matching `obj_string + "108,1;"`.
		s := b.String()
		return s[:len(s)-1] + "108,1;"
	}
	return b.String()
}

func stampSignature(obj *Object) {
	const groupsKey = 57
	existing, has := obj.Params[groupsKey]
	if !has {
		obj.Params[groupsKey] = value.ObjParamGroup(SignatureGroup)
		return
	}
	ids, _, ok := existing.IDs()
	if !ok {
		obj.Params[groupsKey] = value.ObjParamGroup(SignatureGroup)
		return
	}
	obj.Params[groupsKey] = value.ObjParamGroupList(append(append([]value.Id{}, ids...), SignatureGroup))
}

// ApplyFnIDs gathers every object across funcIDs (each already ordered by
// its insertion-order key within the function), assigns trigger-mode
// objects their strip position (row-cycling through
// MAX_HEIGHT-START_HEIGHT rows), and stamps the `spawned` flag (87/62) and
// x/y position parameters (2/3). Object-mode entries pass through
// unplaced. Grounded on leveldata.rs's apply_fn_ids.
func ApplyFnIDs(funcIDs []*FunctionID) []*Object {
	type ordered struct {
		obj   *Object
		order float64
	}

	var all []ordered
	for _, f := range funcIDs {
		for _, e := range f.Objects {
			all = append(all, ordered{e.Obj, e.Order})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].order < all[j].order })

	const possibleHeight = MaxHeight - StartHeight

	out := make([]*Object, 0, len(all))
	for i, o := range all {
		if o.obj.Mode == ModeObject {
			out = append(out, o.obj)
			continue
		}

		yPos := uint16(i%possibleHeight) + StartHeight
		spawned := objIsSpawned(o.obj)

		newObj := cloneObject(o.obj)
		if spawned {
			newObj.Params[62] = value.ObjParamBool(true)
			newObj.Params[87] = value.ObjParamBool(true)
		}

		var xParam float64
		if spawned {
			xParam = float64(15 + i*DeltaX)
		}
		newObj.Params[2] = value.ObjParamNumber(xParam)
		newObj.Params[3] = value.ObjParamNumber(float64((80-yPos)*30 + 15))

		out = append(out, newObj)
	}
	return out
}

// objIsSpawned implements the three-branch `spawned` heuristic from
// apply_fn_ids: an explicit bool at key 62 wins; otherwise it is derived
// from whether key 57 names a non-zero (i.e. resolved) group.
func objIsSpawned(obj *Object) bool {
	// key 62, when present, is only ever written as an ObjParamBool;
	// decode it via String() rather than exposing ObjectParameter's
	// internal kind tag outside the value package.
	if p, ok := obj.Params[62]; ok {
		return p.String() == "1"
	}
	p57, ok := obj.Params[57]
	if !ok {
		return false
	}
	ids, _, isID := p57.IDs()
	if !isID || len(ids) == 0 {
		return false
	}
	return !ids[0].IsZero()
}

func cloneObject(obj *Object) *Object {
	cp := &Object{Mode: obj.Mode, FuncID: obj.FuncID, UniqueID: obj.UniqueID, Params: make(map[uint16]value.ObjectParameter, len(obj.Params))}
	for k, v := range obj.Params {
		cp.Params[k] = v
	}
	return cp
}
