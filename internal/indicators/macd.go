package indicators

// macdSeries computes the MACD line (fast EMA - slow EMA), its signal line
// (EMA of the MACD line) and the histogram (MACD - signal).
func macdSeries(closes []float64, fast, slow, signal int) (macd, sig, hist []Value) {
	n := len(closes)
	macd = make([]Value, n)
	hist = make([]Value, n)

	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)
	for i := 0; i < n; i++ {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			macd[i] = Defined(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}

	sig = emaOfSeries(macd, signal)
	for i := 0; i < n; i++ {
		if macd[i].Valid && sig[i].Valid {
			hist[i] = Defined(macd[i].Float64 - sig[i].Float64)
		}
	}
	return macd, sig, hist
}
