package object_test

import (
	"strings"
	"testing"

	"github.com/spwn-lang/spwn/internal/object"
	"github.com/spwn-lang/spwn/internal/value"
)

func TestAppendObjectsAssignsDistinctArbitraryIDsPerClass(t *testing.T) {
	groupObj := object.NewObject(object.ModeObject)
	groupObj.Params[57] = value.ObjParamGroup(value.NewArbitrary(value.ClassGroup, 1))

	colorObj := object.NewObject(object.ModeObject)
	colorObj.Params[21] = value.ObjParamColor(value.NewArbitrary(value.ClassColor, 1))

	out, counts, err := object.AppendObjects([]*object.Object{groupObj, colorObj}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[0] != 1 || counts[1] != 1 {
		t.Errorf("got counts %v, want [1 1 0 0] prefix", counts)
	}
	if !strings.Contains(out, "57,1.1001,") {
		t.Errorf("expected group resolved to slot 1, got %q", out)
	}
	if !strings.Contains(out, "21,1,") {
		t.Errorf("expected color resolved to slot 1, got %q", out)
	}
}

func TestAppendObjectsAvoidsExistingUsedIDs(t *testing.T) {
	existing := "57,1,71,2;"
	obj := object.NewObject(object.ModeObject)
	obj.Params[57] = value.ObjParamGroup(value.NewArbitrary(value.ClassGroup, 1))

	out, _, err := object.AppendObjects([]*object.Object{obj}, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "57,1,") || strings.Contains(out, "57,2,") {
		t.Errorf("expected a slot other than 1 or 2 (both already used), got %q", out)
	}
}

func TestTriggerModeAppendsLinkedGroupTag(t *testing.T) {
	obj := object.NewObject(object.ModeTrigger)
	obj.Params[1] = value.ObjParamNumber(899)

	out, _, err := object.AppendObjects([]*object.Object{obj}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSuffix(out, ";"), "108,1") {
		t.Errorf("expected trailing 108,1 linked-group tag, got %q", out)
	}
}

func TestRemoveSignedObjectsStripsSignatureGroup(t *testing.T) {
	ls := "1,1,57,1001;2,2,57,5;"
	out := object.RemoveSignedObjects(ls)
	if strings.Contains(out, "1001") {
		t.Errorf("expected signature-tagged object removed, got %q", out)
	}
	if !strings.Contains(out, "2,2") {
		t.Errorf("expected non-signed object kept, got %q", out)
	}
}

func TestApplyFnIDsPlacesTriggersOnStrip(t *testing.T) {
	trig := object.NewObject(object.ModeTrigger)
	trig.Params[1] = value.ObjParamNumber(899)
	trig.Params[57] = value.ObjParamGroup(value.NewSpecific(value.ClassGroup, 5))

	plain := object.NewObject(object.ModeObject)
	plain.Params[1] = value.ObjParamNumber(1)

	fid := &object.FunctionID{
		Objects: []object.FunctionIDEntry{{Obj: trig, Order: 1}, {Obj: plain, Order: 2}},
	}

	placed := object.ApplyFnIDs([]*object.FunctionID{fid})
	if len(placed) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(placed))
	}
	if _, ok := placed[0].Params[2]; !ok {
		t.Errorf("expected trigger object to get an x position")
	}
	if _, ok := placed[1].Params[2]; ok {
		t.Errorf("expected object-mode entry to pass through unplaced")
	}
}
