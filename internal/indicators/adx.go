package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// adxSeries computes ADX and the directional indicators with Wilder's
// directional-movement method.
//
// +DM[i] = high[i]-high[i-1] when that move exceeds low[i-1]-low[i] and is
// positive, else 0; -DM mirrored. TR, +DM and -DM are Wilder-smoothed over
// the window, giving +DI and -DI from index window. DX is the scaled
// |+DI - -DI| / (+DI + -DI); ADX is the Wilder-smoothed DX, first defined
// at index 2*window-1.
func adxSeries(bars []types.PriceBar, window int) (adx, plusDI, minusDI []Value) {
	n := len(bars)
	adx = make([]Value, n)
	plusDI = make([]Value, n)
	minusDI = make([]Value, n)
	if window <= 0 || n < window+1 {
		return adx, plusDI, minusDI
	}

	tr := trueRangeSeries(bars)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	// Seed the smoothed sums with the first window of values (changes
	// start at index 1).
	var trS, plusS, minusS float64
	for i := 1; i <= window; i++ {
		trS += tr[i]
		plusS += plusDM[i]
		minusS += minusDM[i]
	}

	dx := make([]Value, n)
	record := func(i int) {
		if trS == 0 {
			return
		}
		pdi := 100 * plusS / trS
		mdi := 100 * minusS / trS
		plusDI[i] = Defined(pdi)
		minusDI[i] = Defined(mdi)
		if pdi+mdi > 0 {
			dx[i] = Defined(100 * abs(pdi-mdi) / (pdi + mdi))
		}
	}
	record(window)

	for i := window + 1; i < n; i++ {
		trS = trS - trS/float64(window) + tr[i]
		plusS = plusS - plusS/float64(window) + plusDM[i]
		minusS = minusS - minusS/float64(window) + minusDM[i]
		record(i)
	}

	// ADX: mean of the first window DX values, then Wilder recursion.
	if n < 2*window {
		return adx, plusDI, minusDI
	}
	sum := 0.0
	count := 0
	for i := window; i < 2*window; i++ {
		if !dx[i].Valid {
			return adx, plusDI, minusDI
		}
		sum += dx[i].Float64
		count++
	}
	prev := sum / float64(count)
	adx[2*window-1] = Defined(prev)
	for i := 2 * window; i < n; i++ {
		if !dx[i].Valid {
			continue
		}
		prev = (prev*float64(window-1) + dx[i].Float64) / float64(window)
		adx[i] = Defined(prev)
	}
	return adx, plusDI, minusDI
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
