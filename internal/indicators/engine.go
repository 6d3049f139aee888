package indicators

import (
	"github.com/twquant/daytrade-core/internal/errors"
	"github.com/twquant/daytrade-core/pkg/types"
)

// Engine turns a date-ascending PriceBar series into the same-length series
// of Snapshots. It is pure: no I/O, no hidden state between calls.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates an engine with the standard parameter set.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// Compute derives every indicator column for the series. An empty input
// yields an empty output; a malformed bar fails the whole computation, since
// downstream trading decisions depend on numeric correctness. Columns whose
// window exceeds the available history stay undefined, never zero.
func (e *Engine) Compute(bars []types.PriceBar) ([]Snapshot, error) {
	if len(bars) == 0 {
		return nil, nil
	}
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorCategoryValidation, "indicators", "compute")
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return nil, errors.New(errors.ErrorCategoryValidation, "indicators", "compute",
				"bars not strictly ascending by date at "+b.Date.Format("2006-01-02"))
		}
	}

	n := len(bars)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	ma5 := smaSeries(closes, e.cfg.SMAWindows[0])
	ma10 := smaSeries(closes, e.cfg.SMAWindows[1])
	ma20 := smaSeries(closes, e.cfg.SMAWindows[2])
	ma60 := smaSeries(closes, e.cfg.SMAWindows[3])

	ema12 := emaSeries(closes, e.cfg.EMAFast)
	ema26 := emaSeries(closes, e.cfg.EMASlow)

	bbMiddle := smaSeries(closes, e.cfg.BollingerWindow)
	bbStd := rollingStd(closes, e.cfg.BollingerWindow)

	macd, macdSig, macdHist := macdSeries(closes, e.cfg.EMAFast, e.cfg.EMASlow, e.cfg.MACDSignal)

	rsi := rsiSeries(closes, e.cfg.RSIWindow)
	rsi6 := rsiSeries(closes, e.cfg.RSIFast)
	rsi24 := rsiSeries(closes, e.cfg.RSISlow)

	stochK, stochD := stochasticSeries(bars, e.cfg.StochWindow, e.cfg.StochSmooth)
	williams := williamsRSeries(bars, e.cfg.WilliamsRWindow)

	atr := atrSeries(bars, e.cfg.ATRWindow)

	obv := obvSeries(bars)
	obvMA := smaOfSeries(obv, e.cfg.OBVSMAWindow)

	adx, diPlus, diMinus := adxSeries(bars, e.cfg.ADXWindow)
	cci := cciSeries(bars, e.cfg.CCIWindow, e.cfg.CCIScalingFactor)
	sar := sarSeries(bars, e.cfg.SARStep, e.cfg.SARMax)
	vwap := vwapSeries(bars)

	volMA5 := smaSeries(volumes, e.cfg.VolumeFast)
	volMA20 := smaSeries(volumes, e.cfg.VolumeSlow)

	roc5 := rocSeries(closes, e.cfg.ROCFast)
	roc10 := rocSeries(closes, e.cfg.ROCSlow)

	tr := trueRangeSeries(bars)

	snaps := make([]Snapshot, n)
	for i := range bars {
		s := Snapshot{PriceBar: bars[i]}

		s.MA5, s.MA10, s.MA20, s.MA60 = ma5[i], ma10[i], ma20[i], ma60[i]
		s.EMA12, s.EMA26 = ema12[i], ema26[i]

		s.BBMiddle = bbMiddle[i]
		if bbMiddle[i].Valid && bbStd[i].Valid {
			upper := bbMiddle[i].Float64 + e.cfg.BollingerStdDev*bbStd[i].Float64
			lower := bbMiddle[i].Float64 - e.cfg.BollingerStdDev*bbStd[i].Float64
			s.BBUpper = Defined(upper)
			s.BBLower = Defined(lower)
			if bbMiddle[i].Float64 != 0 {
				s.BBWidth = Defined((upper - lower) / bbMiddle[i].Float64)
			}
			if upper != lower {
				s.BBPercent = Defined((bars[i].Close - lower) / (upper - lower))
			}
		}

		s.MACD, s.MACDSignal, s.MACDHist = macd[i], macdSig[i], macdHist[i]
		s.RSI, s.RSI6, s.RSI24 = rsi[i], rsi6[i], rsi24[i]
		s.StochK, s.StochD = stochK[i], stochD[i]
		s.WilliamsR = williams[i]

		s.ATR = atr[i]
		if atr[i].Valid && bars[i].Close != 0 {
			s.ATRPercent = Defined(atr[i].Float64 / bars[i].Close * 100)
		}

		s.OBV, s.OBVMA5 = obv[i], obvMA[i]
		s.ADX, s.DIPlus, s.DIMinus = adx[i], diPlus[i], diMinus[i]
		s.CCI = cci[i]
		s.SAR = sar[i]
		s.VWAP = vwap[i]

		s.Bias5 = biasRatio(bars[i].Close, ma5[i])
		s.Bias10 = biasRatio(bars[i].Close, ma10[i])
		s.Bias20 = biasRatio(bars[i].Close, ma20[i])

		s.VolumeMA5, s.VolumeMA20 = volMA5[i], volMA20[i]
		if volMA20[i].Valid && volMA20[i].Float64 != 0 {
			s.VolumeRatio = Defined(bars[i].Volume / volMA20[i].Float64 * 100)
		}

		s.ROC5, s.ROC10 = roc5[i], roc10[i]

		s.TrueRange = Defined(tr[i])
		if bars[i].Close != 0 {
			s.TRPercent = Defined(tr[i] / bars[i].Close * 100)
		}

		snaps[i] = s
	}
	return snaps, nil
}

// biasRatio is the percent distance of close from its moving average.
func biasRatio(close float64, ma Value) Value {
	if !ma.Valid || ma.Float64 == 0 {
		return Undefined()
	}
	return Defined((close - ma.Float64) / ma.Float64 * 100)
}
