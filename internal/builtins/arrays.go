package builtins

import (
	"errors"
	"strconv"

	"github.com/spwn-lang/spwn/internal/value"
)

func arrayArg(storage *value.Storage, h value.StoredValue) (value.Array, error) {
	a, ok := storage.Get(h).(value.Array)
	if !ok {
		return value.Array{}, errors.New("expected an array")
	}
	return a, nil
}

func builtinArrLen(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	a, err := arrayArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.Number{Value: float64(len(a.Elements))}, nil
}

// builtinAppend returns a new array with val appended; unlike
// spwn-lang/src/builtin.rs's `append`, which mutates its array argument in
// place, this hands back a fresh Array and leaves the caller responsible
// for reassigning it — BuiltinFunc has no ctx to re-clone val's ownership into, so the simplest
// correct behavior is to append the handle as-is rather than mutate.
func builtinAppend(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	a, err := arrayArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	elems := append(append([]value.StoredValue{}, a.Elements...), args[1])
	return value.Array{Elements: elems}, nil
}

func builtinReverse(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	a, err := arrayArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.StoredValue, len(a.Elements))
	for i, h := range a.Elements {
		out[len(out)-1-i] = h
	}
	return value.Array{Elements: out}, nil
}

func builtinContains(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	a, err := arrayArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	target := storage.Get(args[1])
	for _, h := range a.Elements {
		if renderEq(storage.Get(h), target) {
			return value.Bool{Value: true}, nil
		}
	}
	return value.Bool{Value: false}, nil
}

// renderEq is a shallow structural-equality check over rendered text: good
// enough for the scalar elements `contains` is meant to search (numbers,
// bools, strings, ids). A recursive, kind-aware equality like
// internal/evaluator's valuesEqual would need an *Evaluator this package
// deliberately has no access to.
func renderEq(a, b value.Value) bool {
	return a.Kind() == b.Kind() && renderScalar(a) == renderScalar(b)
}

func renderScalar(v value.Value) string {
	switch vv := v.(type) {
	case value.Number:
		return strconv.FormatFloat(vv.Value, 'g', -1, 64)
	case value.Bool:
		if vv.Value {
			return "true"
		}
		return "false"
	case value.String:
		return vv.Value
	case value.Group:
		return vv.Id.String()
	case value.Color:
		return vv.Id.String()
	case value.Block:
		return vv.Id.String()
	case value.Item:
		return vv.Id.String()
	default:
		return ""
	}
}

func registerArrays(m map[string]*value.MacroData) {
	m["arr_len"] = def("arr_len", []value.ArgSpec{arg("arr")}, builtinArrLen)
	m["append"] = def("append", []value.ArgSpec{arg("arr"), arg("val")}, builtinAppend)
	m["reverse"] = def("reverse", []value.ArgSpec{arg("arr")}, builtinReverse)
	m["contains"] = def("contains", []value.ArgSpec{arg("arr"), arg("val")}, builtinContains)
}
