package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// CoercionError reports a value that the column's transformer cannot accept.
type CoercionError struct {
	Column string
	Value  any
	Want   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %q: cannot convert %s to %s", e.Column, describe(e.Value), e.Want)
}

func (e *CoercionError) Unwrap() error {
	return ErrTypeCoercion
}

// PredictProba scores every row. Rows are independent; the first failing
// row aborts the whole frame.
func (p *Pipeline) PredictProba(_ context.Context, frame Frame) ([][]float64, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}

	out := make([][]float64, len(frame))
	for i, row := range frame {
		logit, err := p.decision(row)
		if err != nil {
			return nil, err
		}
		p1 := sigmoid(logit)
		out[i] = []float64{1 - p1, p1}
	}
	return out, nil
}

func (p *Pipeline) decision(row Row) (float64, error) {
	var missing []string
	for _, c := range p.Columns {
		if _, ok := row[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return 0, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	logit := p.Intercept
	for _, c := range p.Columns {
		v := row[c.Name]
		switch c.Kind {
		case KindNumeric:
			x, err := toFloat(v)
			if err != nil {
				return 0, &CoercionError{Column: c.Name, Value: v, Want: "float"}
			}
			logit += c.Weight * (x - c.Mean) / c.Scale
		case KindCategorical:
			s, ok := v.(string)
			if !ok {
				return 0, &CoercionError{Column: c.Name, Value: v, Want: "category"}
			}
			// Unknown categories encode to all zeros.
			logit += c.Weights[s]
		}
	}
	return logit, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %v", f)
	}
	return f, nil
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case json.Number:
		return x.String()
	default:
		return fmt.Sprintf("%v (%T)", x, x)
	}
}
