package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// obvSeries computes On-Balance Volume:
//   - Close[i] > Close[i-1]: OBV[i] = OBV[i-1] + Volume[i]
//   - Close[i] < Close[i-1]: OBV[i] = OBV[i-1] - Volume[i]
//   - unchanged close contributes nothing.
//
// The line starts at zero on the first bar.
func obvSeries(bars []types.PriceBar) []Value {
	out := make([]Value, len(bars))
	if len(bars) == 0 {
		return out
	}

	obv := 0.0
	out[0] = Defined(obv)
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
		out[i] = Defined(obv)
	}
	return out
}
