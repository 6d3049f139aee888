package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// cciSeries computes the Commodity Channel Index over the window:
// (typicalPrice - SMA(typicalPrice)) / (factor * meanAbsDev(typicalPrice)),
// with the conventional scaling factor 0.015.
func cciSeries(bars []types.PriceBar, window int, factor float64) []Value {
	out := make([]Value, len(bars))
	if window <= 0 || len(bars) < window {
		return out
	}

	tp := make([]float64, len(bars))
	for i, b := range bars {
		tp[i] = b.TypicalPrice()
	}

	for i := window - 1; i < len(bars); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += tp[j]
		}
		mean /= float64(window)

		mad := 0.0
		for j := i - window + 1; j <= i; j++ {
			mad += abs(tp[j] - mean)
		}
		mad /= float64(window)

		if mad == 0 {
			continue
		}
		out[i] = Defined((tp[i] - mean) / (factor * mad))
	}
	return out
}
