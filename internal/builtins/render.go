package builtins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spwn-lang/spwn/internal/value"
)

// render is print's display routine: a small, builtins-local recursive
// stringifier over Storage-backed values, kept independent from
// internal/evaluator's own e.display (conversions.go) since this package
// must not import internal/evaluator (the import runs the other way:
// internal/evaluator wires internal/builtins in). Grounded on
// spwn-lang/src/value.rs's `to_str`.
func render(storage *value.Storage, v value.Value) string {
	switch vv := v.(type) {
	case value.Number:
		return strconv.FormatFloat(vv.Value, 'g', -1, 64)
	case value.Bool:
		return strconv.FormatBool(vv.Value)
	case value.String:
		return vv.Value
	case value.Null:
		return "null"
	case value.Group:
		return vv.Id.String()
	case value.Color:
		return vv.Id.String()
	case value.Block:
		return vv.Id.String()
	case value.Item:
		return vv.Id.String()
	case value.TypeIndicator:
		return "@" + vv.Name
	case value.Array:
		parts := make([]string, len(vv.Elements))
		for i, h := range vv.Elements {
			parts[i] = render(storage, storage.Get(h))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case value.Dict:
		parts := make([]string, 0, len(vv.Keys))
		for _, k := range vv.Keys {
			parts = append(parts, k+": "+render(storage, storage.Get(vv.Members[k])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
