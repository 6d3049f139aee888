package indicators

// Config holds every window size and coefficient used by the engine.
// Zero values are not valid; start from DefaultConfig and override.
type Config struct {
	// Simple moving averages over close (short to long term).
	SMAWindows [4]int

	// EMA / MACD.
	EMAFast    int
	EMASlow    int
	MACDSignal int

	// Bollinger Bands.
	BollingerWindow int
	BollingerStdDev float64

	// RSI main window plus fast/slow variants.
	RSIWindow int
	RSIFast   int
	RSISlow   int

	// Stochastic %K window and %D smoothing.
	StochWindow int
	StochSmooth int

	WilliamsRWindow int

	ATRWindow int

	// SMA window applied to the OBV line.
	OBVSMAWindow int

	ADXWindow int

	CCIWindow        int
	CCIScalingFactor float64

	// Parabolic SAR acceleration.
	SARStep float64
	SARMax  float64

	// Volume moving averages; the slow one is the base of the volume ratio.
	VolumeFast int
	VolumeSlow int

	// Rate-of-change lookbacks.
	ROCFast int
	ROCSlow int
}

// DefaultConfig returns the standard day-trading parameter set.
func DefaultConfig() Config {
	return Config{
		SMAWindows:       [4]int{5, 10, 20, 60},
		EMAFast:          12,
		EMASlow:          26,
		MACDSignal:       9,
		BollingerWindow:  20,
		BollingerStdDev:  2.0,
		RSIWindow:        14,
		RSIFast:          6,
		RSISlow:          24,
		StochWindow:      14,
		StochSmooth:      3,
		WilliamsRWindow:  14,
		ATRWindow:        14,
		OBVSMAWindow:     5,
		ADXWindow:        14,
		CCIWindow:        20,
		CCIScalingFactor: 0.015,
		SARStep:          0.02,
		SARMax:           0.2,
		VolumeFast:       5,
		VolumeSlow:       20,
		ROCFast:          5,
		ROCSlow:          10,
	}
}
