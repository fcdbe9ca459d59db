package builtins

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"github.com/spwn-lang/spwn/internal/value"
)

func stringArg(storage *value.Storage, h value.StoredValue) (string, error) {
	s, ok := storage.Get(h).(value.String)
	if !ok {
		return "", errors.New("expected a string")
	}
	return s.Value, nil
}

func builtinSplitStr(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	sep, err := stringArg(storage, args[1])
	if err != nil {
		return nil, err
	}
	// Element slots are const and ownerless (zero Id): BuiltinFunc has no
	// ctx.StartGroup to stamp them with, and an immutable slot is never
	// subject to the FnContext ownership check assignTo performs anyway.
	var out []value.StoredValue
	for _, part := range strings.Split(s, sep) {
		out = append(out, storage.StoreConst(value.String{Value: part}, value.Id{}, value.Area{}))
	}
	return value.Array{Elements: out}, nil
}

func builtinJoin(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	arr, ok := storage.Get(args[0]).(value.Array)
	if !ok {
		return nil, errors.New("expected an array")
	}
	sep, err := stringArg(storage, args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr.Elements))
	for i, h := range arr.Elements {
		parts[i] = render(storage, storage.Get(h))
	}
	return value.String{Value: strings.Join(parts, sep)}, nil
}

func builtinUpper(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.String{Value: strings.ToUpper(s)}, nil
}

func builtinLower(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.String{Value: strings.ToLower(s)}, nil
}

func builtinTrim(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.String{Value: strings.TrimSpace(s)}, nil
}

func builtinStrLen(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.Number{Value: float64(len(s))}, nil
}

func builtinParseNumber(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	n, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return nil, perr
	}
	return value.Number{Value: n}, nil
}

func builtinB64Encode(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	return value.String{Value: base64.StdEncoding.EncodeToString([]byte(s))}, nil
}

func builtinB64Decode(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	s, err := stringArg(storage, args[0])
	if err != nil {
		return nil, err
	}
	raw, derr := base64.StdEncoding.DecodeString(s)
	if derr != nil {
		return nil, derr
	}
	return value.String{Value: string(raw)}, nil
}

func registerStrings(m map[string]*value.MacroData) {
	m["split_str"] = def("split_str", []value.ArgSpec{arg("s"), arg("sep")}, builtinSplitStr)
	m["join"] = def("join", []value.ArgSpec{arg("arr"), arg("sep")}, builtinJoin)
	m["upper"] = def("upper", []value.ArgSpec{arg("s")}, builtinUpper)
	m["lower"] = def("lower", []value.ArgSpec{arg("s")}, builtinLower)
	m["trim"] = def("trim", []value.ArgSpec{arg("s")}, builtinTrim)
	m["str_len"] = def("str_len", []value.ArgSpec{arg("s")}, builtinStrLen)
	m["parse_number"] = def("parse_number", []value.ArgSpec{arg("s")}, builtinParseNumber)
	m["b64encode"] = def("b64encode", []value.ArgSpec{arg("s")}, builtinB64Encode)
	m["b64decode"] = def("b64decode", []value.ArgSpec{arg("s")}, builtinB64Decode)
}
