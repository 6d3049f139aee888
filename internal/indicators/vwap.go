package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// vwapSeries computes the volume-weighted average price as
// cumulative(typicalPrice*volume) / cumulative(volume), with the cumulative
// sums reset at each calendar-day boundary. VWAP is conventionally an
// intraday measure; with one bar per day each group is a single bar and
// VWAP degenerates to that bar's typical price. The day-reset rule is kept
// so the same engine serves intraday series unchanged.
func vwapSeries(bars []types.PriceBar) []Value {
	out := make([]Value, len(bars))

	var cumTPV, cumVol float64
	var day string
	for i, b := range bars {
		d := b.Date.Format("2006-01-02")
		if d != day {
			day = d
			cumTPV, cumVol = 0, 0
		}
		cumTPV += b.TypicalPrice() * b.Volume
		cumVol += b.Volume
		if cumVol > 0 {
			out[i] = Defined(cumTPV / cumVol)
		}
	}
	return out
}
