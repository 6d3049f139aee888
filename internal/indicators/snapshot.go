package indicators

import "github.com/twquant/daytrade-core/pkg/types"

// Snapshot is a PriceBar extended with every derived column the engine
// computes. Fields are optional Values: a reading is invalid until its
// window has enough history behind it.
type Snapshot struct {
	types.PriceBar

	// Moving averages over close.
	MA5  Value
	MA10 Value
	MA20 Value
	MA60 Value

	EMA12 Value
	EMA26 Value

	// Bollinger Bands.
	BBUpper   Value
	BBMiddle  Value
	BBLower   Value
	BBWidth   Value
	BBPercent Value

	MACD       Value
	MACDSignal Value
	MACDHist   Value

	RSI   Value
	RSI6  Value
	RSI24 Value

	// Stochastic oscillator (KD).
	StochK Value
	StochD Value

	WilliamsR Value

	ATR        Value
	ATRPercent Value

	OBV    Value
	OBVMA5 Value

	ADX     Value
	DIPlus  Value
	DIMinus Value

	CCI Value

	SAR Value

	VWAP Value

	// Bias ratios: distance from the moving average in percent.
	Bias5  Value
	Bias10 Value
	Bias20 Value

	VolumeMA5   Value
	VolumeMA20  Value
	VolumeRatio Value

	ROC5  Value
	ROC10 Value

	TrueRange Value
	TRPercent Value
}
