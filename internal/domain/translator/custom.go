package translator

import (
	"fmt"
	"math"
	"strings"

	"github.com/Knetic/govaluate"
)

// calibrated applies a formula in x to numeric results of another decoder.
type calibrated struct {
	inner Decoder
	expr  *govaluate.EvaluableExpression
}

// Calibrate wraps d so float results pass through formula, e.g. "x - 0.5".
// An empty formula returns d unchanged. Non-numeric and NaN results are not
// touched.
func Calibrate(d Decoder, formula string) (Decoder, error) {
	if strings.TrimSpace(formula) == "" {
		return d, nil
	}
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("invalid formula %q: %w", formula, err)
	}
	return &calibrated{inner: d, expr: expr}, nil
}

func (c *calibrated) Decode(in Input) (interface{}, error) {
	v, err := c.inner.Decode(in)
	if err != nil {
		return nil, err
	}
	x, ok := v.(float64)
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
		return v, nil
	}
	return c.evaluate(x), nil
}

func (c *calibrated) evaluate(x float64) float64 {
	parameters := make(map[string]interface{}, 1)
	parameters["x"] = x

	result, err := c.expr.Evaluate(parameters)
	if err != nil {
		return x
	}
	if val, ok := result.(float64); ok {
		return val
	}
	return x
}
