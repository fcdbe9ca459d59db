package builtins

import (
	"errors"
	"fmt"
	"time"

	"github.com/spwn-lang/spwn/internal/value"
)

// spwnVersion mirrors spwn-lang/src/builtin.rs's `spwn_version` builtin,
// which reports the compiler crate's own Cargo version; there being no
// equivalent build metadata here, this names the language version spec.md
// targets instead.
const spwnVersion = "0.1"

func builtinPrint(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	for _, h := range args {
		fmt.Println(render(storage, storage.Get(h)))
	}
	return value.Null{}, nil
}

func builtinAssert(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	b, ok := storage.Get(args[0]).(value.Bool)
	if !ok {
		return nil, errors.New("assert expects a bool")
	}
	if !b.Value {
		return nil, errors.New("assertion failed")
	}
	return value.Null{}, nil
}

func builtinTime(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	return value.Number{Value: float64(time.Now().Unix())}, nil
}

func builtinSpwnVersion(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	return value.String{Value: spwnVersion}, nil
}
