package indicators

import "math"

// rsiSeries computes RSI with Wilder smoothing: the first average gain and
// loss are plain means over the window, then
// avg[i] = (avg[i-1]*(window-1) + current) / window.
// RSI needs window price changes, so the first defined position is index
// window (one past the usual window-1, since changes start at index 1).
func rsiSeries(closes []float64, window int) []Value {
	out := make([]Value, len(closes))
	if window <= 0 || len(closes) < window+1 {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += math.Abs(change)
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = rsiFromAverages(avgGain, avgLoss)

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = math.Abs(change)
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) Value {
	if avgLoss == 0 {
		return Defined(100)
	}
	rs := avgGain / avgLoss
	return Defined(100 - 100/(1+rs))
}
