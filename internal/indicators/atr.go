package indicators

import (
	"math"

	"github.com/twquant/daytrade-core/pkg/types"
)

// trueRangeSeries computes the true range for each bar:
// max(high-low, |high-prevClose|, |low-prevClose|).
// The first bar has no previous close and uses its own high-low range.
func trueRangeSeries(bars []types.PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		if i == 0 {
			out[i] = b.High - b.Low
			continue
		}
		prevClose := bars[i-1].Close
		out[i] = math.Max(b.High-b.Low,
			math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}
	return out
}

// atrSeries computes the Average True Range with Wilder smoothing: the
// first value is the SMA of the first window true ranges, then
// ATR[i] = (ATR[i-1]*(window-1) + TR[i]) / window.
func atrSeries(bars []types.PriceBar, window int) []Value {
	out := make([]Value, len(bars))
	if window <= 0 || len(bars) < window {
		return out
	}

	tr := trueRangeSeries(bars)

	sum := 0.0
	for i := 0; i < window; i++ {
		sum += tr[i]
	}
	prev := sum / float64(window)
	out[window-1] = Defined(prev)

	for i := window; i < len(bars); i++ {
		prev = (prev*float64(window-1) + tr[i]) / float64(window)
		out[i] = Defined(prev)
	}
	return out
}
