package builtins

import (
	"errors"
	"math"

	"github.com/spwn-lang/spwn/internal/value"
)

// unaryMath adapts a plain float64->float64 Go math function into a
// BuiltinFunc taking one @number argument, the common shape of nearly every
// entry spwn-lang/src/builtin.rs's `builtins!` block lists for sin/cos/tan/
// floor/ceil/abs/sqrt/etc.
func unaryMath(fn func(float64) float64) value.BuiltinFunc {
	return func(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
		n, ok := storage.Get(args[0]).(value.Number)
		if !ok {
			return nil, errors.New("expected a number")
		}
		return value.Number{Value: fn(n.Value)}, nil
	}
}

func builtinAtan2(args []value.StoredValue, storage *value.Storage) (value.Value, error) {
	x, ok := storage.Get(args[0]).(value.Number)
	if !ok {
		return nil, errors.New("expected a number")
	}
	y, ok := storage.Get(args[1]).(value.Number)
	if !ok {
		return nil, errors.New("expected a number")
	}
	return value.Number{Value: math.Atan2(x.Value, y.Value)}, nil
}

func registerMath(m map[string]*value.MacroData) {
	unary := map[string]func(float64) float64{
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
		"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
		"asinh": math.Asinh, "acosh": math.Acosh, "atanh": math.Atanh,
		"floor": math.Floor, "ceil": math.Ceil, "round": math.Round,
		"abs": math.Abs, "sqrt": math.Sqrt, "cbrt": math.Cbrt,
		"exp": math.Exp, "exp2": math.Exp2, "ln": math.Log, "log10": math.Log10,
		"fract": func(n float64) float64 { _, f := math.Modf(n); return f },
	}
	for name, fn := range unary {
		m[name] = def(name, []value.ArgSpec{arg("n")}, unaryMath(fn))
	}
	m["atan2"] = def("atan2", []value.ArgSpec{arg("x"), arg("y")}, builtinAtan2)
}
