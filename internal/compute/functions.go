package compute

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// mathFunctions is the function table available to expressions.
func mathFunctions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"min":    stdlib.MinFunc,
		"max":    stdlib.MaxFunc,
		"floor":  stdlib.FloorFunc,
		"ceil":   stdlib.CeilFunc,
		"log":    stdlib.LogFunc,
		"pow":    stdlib.PowFunc,
		"signum": stdlib.SignumFunc,
		"sin":    unaryMath("sin", math.Sin),
		"cos":    unaryMath("cos", math.Cos),
		"tan":    unaryMath("tan", math.Tan),
		"sqrt":   unaryMath("sqrt", math.Sqrt),
		"exp":    unaryMath("exp", math.Exp),
		"round":  unaryMath("round", math.Round),
	}
}

func unaryMath(name string, fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "num", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			r := fn(x)
			if math.IsNaN(r) {
				return cty.UnknownVal(cty.Number), fmt.Errorf("%s(%v) is not a number", name, x)
			}
			return cty.NumberFloatVal(r), nil
		},
	})
}

func constants() map[string]cty.Value {
	return map[string]cty.Value{
		"pi": cty.NumberFloatVal(math.Pi),
		"e":  cty.NumberFloatVal(math.E),
	}
}
