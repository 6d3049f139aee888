package indicators

import (
	"math"

	"github.com/twquant/daytrade-core/pkg/types"
)

// sarSeries computes the Parabolic SAR with the standard reversal rule.
// The trend seeds from the direction of the second close versus the first;
// the acceleration factor starts at step, grows by step whenever a new
// extreme point prints, and caps at max. SAR is defined from the second bar.
func sarSeries(bars []types.PriceBar, step, max float64) []Value {
	n := len(bars)
	out := make([]Value, n)
	if n < 2 {
		return out
	}

	rising := bars[1].Close >= bars[0].Close
	var sar, ep float64
	if rising {
		sar = bars[0].Low
		ep = bars[1].High
	} else {
		sar = bars[0].High
		ep = bars[1].Low
	}
	af := step
	out[1] = Defined(sar)

	for i := 2; i < n; i++ {
		sar = sar + af*(ep-sar)

		if rising {
			// SAR may not enter the range of the prior two bars.
			sar = math.Min(sar, math.Min(bars[i-1].Low, bars[i-2].Low))
			if bars[i].Low < sar {
				// Reversal: flip to a falling trend anchored at the
				// old extreme point.
				rising = false
				sar = ep
				ep = bars[i].Low
				af = step
			} else if bars[i].High > ep {
				ep = bars[i].High
				af = math.Min(af+step, max)
			}
		} else {
			sar = math.Max(sar, math.Max(bars[i-1].High, bars[i-2].High))
			if bars[i].High > sar {
				rising = true
				sar = ep
				ep = bars[i].High
				af = step
			} else if bars[i].Low < ep {
				ep = bars[i].Low
				af = math.Min(af+step, max)
			}
		}
		out[i] = Defined(sar)
	}
	return out
}
