package indicators

import "math"

// smaSeries returns the simple moving average of values over the given
// window. The first window-1 positions are undefined.
func smaSeries(values []float64, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = Defined(sum / float64(window))
		}
	}
	return out
}

// rollingStd returns the population standard deviation over the window.
func rollingStd(values []float64, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out[i] = Defined(math.Sqrt(variance / float64(window)))
	}
	return out
}

// rollingMax returns the highest value over the trailing window.
func rollingMax(values []float64, window int) []Value {
	out := make([]Value, len(values))
	for i := window - 1; i < len(values); i++ {
		max := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = Defined(max)
	}
	return out
}

// rollingMin returns the lowest value over the trailing window.
func rollingMin(values []float64, window int) []Value {
	out := make([]Value, len(values))
	for i := window - 1; i < len(values); i++ {
		min := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = Defined(min)
	}
	return out
}

// smaOfSeries applies a simple moving average to an already-optional
// series; a position is defined only when the whole window behind it is.
func smaOfSeries(values []Value, window int) []Value {
	out := make([]Value, len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if !values[j].Valid {
				ok = false
				break
			}
			sum += values[j].Float64
		}
		if ok {
			out[i] = Defined(sum / float64(window))
		}
	}
	return out
}

// rocSeries is the percent rate of change versus the value k bars back.
func rocSeries(values []float64, k int) []Value {
	out := make([]Value, len(values))
	for i := k; i < len(values); i++ {
		base := values[i-k]
		if base == 0 {
			continue
		}
		out[i] = Defined((values[i] - base) / base * 100)
	}
	return out
}
