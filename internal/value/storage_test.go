package value_test

import (
	"testing"

	"github.com/spwn-lang/spwn/internal/value"
)

func TestStorageStoreAndGet(t *testing.T) {
	s := value.NewStorage()
	h := s.Store(value.Number{Value: 42}, value.Id{}, value.Area{})
	got, ok := s.Get(h).(value.Number)
	if !ok || got.Value != 42 {
		t.Fatalf("got %#v, want Number{42}", s.Get(h))
	}
}

func TestStorageBuiltinNullSlots(t *testing.T) {
	s := value.NewStorage()
	if _, ok := s.Get(value.BuiltinStorage).(value.Builtins); !ok {
		t.Errorf("expected BuiltinStorage slot to hold Builtins")
	}
	if _, ok := s.Get(value.NullStorage).(value.Null); !ok {
		t.Errorf("expected NullStorage slot to hold Null")
	}
}

func TestCloneArrayIsIndependent(t *testing.T) {
	s := value.NewStorage()
	elem := s.Store(value.Number{Value: 1}, value.Id{}, value.Area{})
	arr := s.Store(value.Array{Elements: []value.StoredValue{elem}}, value.Id{}, value.Area{})

	clone := s.Clone(arr, value.Id{}, true, value.Area{})
	clonedArr := s.Get(clone).(value.Array)
	clonedElem := clonedArr.Elements[0]

	s.Set(clonedElem, value.Number{Value: 99})

	if s.Get(elem).(value.Number).Value != 1 {
		t.Errorf("mutating the clone's element mutated the original")
	}
}

func TestSweepReclaimsAtZeroLifetime(t *testing.T) {
	s := value.NewStorage()
	h := s.Store(value.Number{Value: 5}, value.Id{}, value.Area{})
	s.Sweep([]value.StoredValue{h})

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Get on swept handle to panic")
		}
	}()
	s.Get(h)
}

func TestSetMutabilityRecursesButSparesMacros(t *testing.T) {
	s := value.NewStorage()
	macroH := s.StoreConst(value.Macro{Macro: &value.MacroData{}}, value.Id{}, value.Area{})
	arrH := s.Store(value.Array{Elements: []value.StoredValue{macroH}}, value.Id{}, value.Area{})

	s.SetMutability(arrH, true)

	if s.GetData(macroH).Mutable {
		t.Errorf("SetMutability must never make a Macro mutable")
	}
	if !s.GetData(arrH).Mutable {
		t.Errorf("expected array slot to become mutable")
	}
}
