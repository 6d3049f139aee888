package indicators

// emaSeries returns the exponential moving average of values.
//
// Seeding choice: the first defined EMA is the SMA of the first window,
// at position window-1; the standard recursion
// EMA[i] = value[i]*alpha + EMA[i-1]*(1-alpha), alpha = 2/(window+1),
// runs from there. Seeding from the SMA (rather than the first raw value)
// keeps the uniform rule that the first window-1 positions of every
// windowed column are undefined.
func emaSeries(values []float64, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += values[i]
	}
	prev := sum / float64(window)
	out[window-1] = Defined(prev)

	alpha := 2.0 / float64(window+1)
	for i := window; i < len(values); i++ {
		prev = values[i]*alpha + prev*(1-alpha)
		out[i] = Defined(prev)
	}
	return out
}

// emaOfSeries runs the same recursion over an optional series, seeding from
// the SMA of the first window defined positions.
func emaOfSeries(values []Value, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 {
		return out
	}

	// Find the first run of `window` consecutive defined values.
	start := -1
	for i := range values {
		if !values[i].Valid {
			start = -1
			continue
		}
		if start == -1 {
			start = i
		}
		if i-start+1 == window {
			sum := 0.0
			for j := start; j <= i; j++ {
				sum += values[j].Float64
			}
			prev := sum / float64(window)
			out[i] = Defined(prev)

			alpha := 2.0 / float64(window+1)
			for k := i + 1; k < len(values); k++ {
				if !values[k].Valid {
					return out
				}
				prev = values[k].Float64*alpha + prev*(1-alpha)
				out[k] = Defined(prev)
			}
			return out
		}
	}
	return out
}
