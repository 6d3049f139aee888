package indicators

import "math"

// Value is an optional indicator reading. A windowed computation yields an
// invalid Value for the positions where it is not yet computable, so a
// missing reading can never be mistaken for a numeric zero.
type Value struct {
	Float64 float64
	Valid   bool
}

// Defined wraps v as a valid reading. Non-finite inputs (degenerate series,
// zero ranges) collapse to the undefined marker instead of propagating
// NaN/Inf downstream.
func Defined(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{Float64: v, Valid: true}
}

// Undefined is the "not yet computable" marker.
func Undefined() Value {
	return Value{}
}

// Or returns the reading when valid, def otherwise.
func (v Value) Or(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.Float64
}
