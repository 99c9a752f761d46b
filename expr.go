package irb

import (
	"errors"
	"fmt"
	"math"

	"github.com/knetic/govaluate"
)

const kelvinOffset = 273.15

// Expression is a user-supplied per-sample transform such as "value - 273.15".
//
// The variables value, col and row are bound on evaluation.
type Expression struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// CompileExpression parses src.
func CompileExpression(src string) (*Expression, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, expressionFunctions())
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", src, err)
	}
	for _, tok := range expr.Tokens() {
		if tok.Kind != govaluate.VARIABLE {
			continue
		}
		switch tok.Value {
		case "value", "col", "row":
		default:
			return nil, fmt.Errorf("compile expression %q: unknown variable %v", src, tok.Value)
		}
	}
	return &Expression{src: src, expr: expr}, nil
}

func (e *Expression) String() string { return e.src }

// Eval evaluates the expression for a sample at (col, row).
func (e *Expression) Eval(col, row int, v float32) (float32, error) {
	res, err := e.expr.Evaluate(map[string]interface{}{
		"value": float64(v),
		"col":   float64(col),
		"row":   float64(row),
	})
	if err != nil {
		return 0, err
	}
	f, ok := res.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q: non-numeric result %v", e.src, res)
	}
	return float32(f), nil
}

func expressionFunctions() map[string]govaluate.ExpressionFunction {
	unary := func(name string, fn func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%s expects 1 argument", name)
			}
			v, ok := args[0].(float64)
			if !ok {
				return nil, errors.New(name + " expects a numeric argument")
			}
			return fn(v), nil
		}
	}
	return map[string]govaluate.ExpressionFunction{
		"celsius": unary("celsius", func(k float64) float64 { return k - kelvinOffset }),
		"kelvin":  unary("kelvin", func(c float64) float64 { return c + kelvinOffset }),
		"abs":     unary("abs", math.Abs),
		"round":   unary("round", math.Round),
	}
}
