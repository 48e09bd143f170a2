package space

import (
	"errors"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Functions returns the implementation of every callable CSL function.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":   stdlib.AbsoluteFunc,
		"ceil":  stdlib.CeilFunc,
		"floor": stdlib.FloorFunc,
		"log":   logFunc,
		"max":   stdlib.MaxFunc,
		"min":   stdlib.MinFunc,
		"pow":   powFunc,
	}
}

// finite guards cty.NumberFloatVal, which cannot hold NaN.
func finite(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.UnknownVal(cty.Number), errors.New("result is not a number")
	}
	return cty.NumberFloatVal(f), nil
}

func floats(args []cty.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		if err := gocty.FromCtyValue(a, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// logFunc is the natural logarithm, or the logarithm in base when a second
// argument is given.
var logFunc = function.New(&function.Spec{
	Description: "Returns the natural logarithm of num, or its logarithm in base.",
	Params:      []function.Parameter{{Name: "num", Type: cty.Number}},
	VarParam:    &function.Parameter{Name: "base", Type: cty.Number},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		if len(args) > 2 {
			return cty.UnknownVal(cty.Number), errors.New("log takes one or two arguments")
		}
		f, err := floats(args)
		if err != nil {
			return cty.UnknownVal(cty.Number), err
		}
		if f[0] <= 0 {
			return cty.UnknownVal(cty.Number), errors.New("log of a non-positive number")
		}
		if len(f) == 1 {
			return finite(math.Log(f[0]))
		}
		if f[1] <= 0 || f[1] == 1 {
			return cty.UnknownVal(cty.Number), errors.New("log base must be positive and not 1")
		}
		return finite(math.Log(f[0]) / math.Log(f[1]))
	},
})

var powFunc = function.New(&function.Spec{
	Description: "Returns num raised to power.",
	Params: []function.Parameter{
		{Name: "num", Type: cty.Number},
		{Name: "power", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		f, err := floats(args)
		if err != nil {
			return cty.UnknownVal(cty.Number), err
		}
		return finite(math.Pow(f[0], f[1]))
	},
})
