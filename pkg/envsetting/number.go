package envsetting

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Number is the resolved value of a number setting. It holds either an
// integer or a floating-point value, depending on whether the raw string
// contained a decimal point.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{i: v}
}

// Float returns a floating-point Number.
func Float(v float64) Number {
	return Number{f: v, isFloat: true}
}

// IsFloat reports whether n was parsed or constructed as a float.
func (n Number) IsFloat() bool {
	return n.isFloat
}

// Int64 returns n as an int64, truncating a float toward zero.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// String formats n so that parsing the result yields the same kind of
// Number: floats always carry a decimal point.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(n.f, 0) && !math.IsNaN(n.f) {
		s += ".0"
	}
	return s
}

// LogValue implements slog.LogValuer.
func (n Number) LogValue() slog.Value {
	if n.isFloat {
		return slog.Float64Value(n.f)
	}
	return slog.Int64Value(n.i)
}

// parseNumber parses a float when raw contains a decimal point and a
// base-10 integer otherwise. The returned error never echoes raw.
func parseNumber(raw string) (Number, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Number{}, numError(err)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Number{}, numError(err)
	}
	return Int(i), nil
}

// numError strips the input from a strconv error.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
