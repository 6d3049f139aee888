package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// stochasticSeries computes the KD oscillator:
// %K = 100 * (close - lowestLow(window)) / (highestHigh(window) - lowestLow(window))
// %D = smooth-period SMA of %K.
// A flat window (highest == lowest) leaves both undefined.
func stochasticSeries(bars []types.PriceBar, window, smooth int) (k, d []Value) {
	n := len(bars)
	k = make([]Value, n)

	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}
	hh := rollingMax(highs, window)
	ll := rollingMin(lows, window)

	for i := window - 1; i < n; i++ {
		spread := hh[i].Float64 - ll[i].Float64
		if !hh[i].Valid || !ll[i].Valid || spread == 0 {
			continue
		}
		k[i] = Defined(100 * (bars[i].Close - ll[i].Float64) / spread)
	}

	d = smaOfSeries(k, smooth)
	return k, d
}

// williamsRSeries computes Williams %R over the window:
// -100 * (highestHigh - close) / (highestHigh - lowestLow), range -100..0.
func williamsRSeries(bars []types.PriceBar, window int) []Value {
	n := len(bars)
	out := make([]Value, n)

	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}
	hh := rollingMax(highs, window)
	ll := rollingMin(lows, window)

	for i := window - 1; i < n; i++ {
		spread := hh[i].Float64 - ll[i].Float64
		if !hh[i].Valid || !ll[i].Valid || spread == 0 {
			continue
		}
		out[i] = Defined(-100 * (hh[i].Float64 - bars[i].Close) / spread)
	}
	return out
}
