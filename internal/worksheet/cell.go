package worksheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Null is the value of an empty cell.
func Null() cty.Value {
	return cty.NullVal(cty.DynamicPseudoType)
}

// IsEmpty reports whether a cell is null or a blank string.
func IsEmpty(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return true
	}
	if v.Type() == cty.String {
		return strings.TrimSpace(v.AsString()) == ""
	}
	return false
}

// IsNumber reports whether a cell holds a numeric value, as opposed to text
// that happens to look like a number.
func IsNumber(v cty.Value) bool {
	return !v.IsNull() && v.IsKnown() && v.Type() == cty.Number
}

// String renders a cell as text. Integral numbers print without a decimal
// point; empty cells render as "".
func String(v cty.Value) string {
	if v.IsNull() || !v.IsKnown() {
		return ""
	}
	if v.Type() == cty.String {
		return v.AsString()
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || s.IsNull() {
		return ""
	}
	return s.AsString()
}

// Number returns the numeric value of a cell. Text cells are parsed, so
// "1500" typed as text counts as a number. Infinities and NaN are not numbers.
func Number(v cty.Value) (float64, bool) {
	if v.IsNull() || !v.IsKnown() {
		return 0, false
	}
	var f float64
	switch v.Type() {
	case cty.Number:
		f, _ = v.AsBigFloat().Float64()
	case cty.String:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return f, Finite(f)
}

// Finite reports whether f is neither infinite nor NaN.
func Finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// FromGo converts a Go value (string, number, bool or nil) into a cell.
func FromGo(v any) (cty.Value, error) {
	if v == nil {
		return Null(), nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported cell value %v: %w", v, err)
	}
	if !ty.IsPrimitiveType() {
		return cty.NilVal, fmt.Errorf("unsupported cell value %v: not a primitive", v)
	}
	return gocty.ToCtyValue(v, ty)
}
