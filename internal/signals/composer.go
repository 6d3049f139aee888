// Package signals turns the two most recent indicator snapshots into a
// bounded composite score and a discrete day-trading recommendation.
package signals

import (
	"time"

	"github.com/twquant/daytrade-core/internal/indicators"
)

// Recommendation is the discrete reading derived from the composite score.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// Triggered is one fired rule with its directional contribution.
type Triggered struct {
	Rule         string
	Contribution int
}

// Report is the outcome of composing all rules over the latest snapshots.
// Score is clamped to [-100, 100]. NoSignal marks series too short to
// evaluate (fewer than two snapshots); it is a result, not an error, since
// the recommendation is best-effort advisory output.
type Report struct {
	Timestamp      time.Time
	Price          float64
	Score          int
	Recommendation Recommendation
	Triggered      []Triggered
	NoSignal       bool
}

// Composer evaluates the rule set. Rules fire independently and their
// integer contributions add; a rule whose inputs are undefined is skipped
// rather than read as a neutral zero.
type Composer struct{}

// NewComposer creates a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose evaluates the rule set over the last two snapshots of the series.
func (c *Composer) Compose(snaps []indicators.Snapshot) Report {
	if len(snaps) < 2 {
		return Report{Recommendation: Hold, NoSignal: true}
	}

	latest := snaps[len(snaps)-1]
	prev := snaps[len(snaps)-2]

	r := Report{
		Timestamp:      latest.Date,
		Price:          latest.Close,
		Recommendation: Hold,
	}
	score := 0
	fire := func(rule string, contribution int) {
		r.Triggered = append(r.Triggered, Triggered{Rule: rule, Contribution: contribution})
		score += contribution
	}

	// 1. MACD line versus its signal line.
	if cross := crossing(prev.MACD, prev.MACDSignal, latest.MACD, latest.MACDSignal); cross > 0 {
		fire("MACD golden cross", 15)
	} else if cross < 0 {
		fire("MACD death cross", -15)
	}

	// 2. KD oscillator, weighted up when the cross happens at an extreme.
	if cross := crossing(prev.StochK, prev.StochD, latest.StochK, latest.StochD); cross > 0 {
		if latest.StochK.Float64 < 30 {
			fire("KD golden cross oversold", 20)
		} else {
			fire("KD golden cross", 10)
		}
	} else if cross < 0 {
		if latest.StochK.Float64 > 70 {
			fire("KD death cross overbought", -20)
		} else {
			fire("KD death cross", -10)
		}
	}

	// 3. RSI extremes.
	if latest.RSI.Valid {
		if latest.RSI.Float64 < 30 {
			fire("RSI oversold", 15)
		} else if latest.RSI.Float64 > 70 {
			fire("RSI overbought", -15)
		}
	}

	// 4. Williams %R extremes.
	if latest.WilliamsR.Valid {
		if latest.WilliamsR.Float64 > -20 {
			fire("Williams %R overbought", -10)
		} else if latest.WilliamsR.Float64 < -80 {
			fire("Williams %R oversold", 10)
		}
	}

	// 5. ADX trend strength with direction from the DI pair.
	if latest.ADX.Valid && latest.DIPlus.Valid && latest.DIMinus.Valid && latest.ADX.Float64 > 25 {
		if latest.DIPlus.Float64 > latest.DIMinus.Float64 {
			fire("ADX strong uptrend", 10)
		} else if latest.DIMinus.Float64 > latest.DIPlus.Float64 {
			fire("ADX strong downtrend", -10)
		}
	}

	// 6. CCI extremes.
	if latest.CCI.Valid {
		if latest.CCI.Float64 > 100 {
			fire("CCI overbought", -10)
		} else if latest.CCI.Float64 < -100 {
			fire("CCI oversold", 10)
		}
	}

	// 7. OBV divergence against price over the last five bars.
	if len(snaps) >= 5 {
		base := snaps[len(snaps)-5]
		if latest.OBV.Valid && base.OBV.Valid {
			priceUp := latest.Close > base.Close
			obvUp := latest.OBV.Float64 > base.OBV.Float64
			if priceUp && !obvUp {
				fire("OBV bearish divergence", -15)
			} else if !priceUp && obvUp {
				fire("OBV bullish divergence", 15)
			}
		}
	}

	// 8. Bollinger band breaks.
	if latest.BBUpper.Valid && latest.Close > latest.BBUpper.Float64 {
		fire("Bollinger upper break", 5)
	} else if latest.BBLower.Valid && latest.Close < latest.BBLower.Float64 {
		fire("Bollinger lower break", -5)
	}

	// 9. Volume surge over the 20-day average. An attention flag rather
	// than a directional call, but it still nudges the score.
	if latest.VolumeRatio.Valid && latest.VolumeRatio.Float64 > 150 {
		fire("volume surge", 5)
	}

	// 10. Short-term momentum.
	if latest.ROC5.Valid {
		if latest.ROC5.Float64 > 5 {
			fire("strong 5-bar momentum", 10)
		} else if latest.ROC5.Float64 < -5 {
			fire("weak 5-bar momentum", -10)
		}
	}

	r.Score = clamp(score, -100, 100)
	r.Recommendation = recommend(r.Score)
	return r
}

// crossing detects a cross between two lines across consecutive bars:
// +1 when the previous spread (a-b) was <= 0 and the current is > 0
// (golden cross), -1 for the mirror (death cross), 0 otherwise or when any
// input is undefined.
func crossing(prevA, prevB, curA, curB indicators.Value) int {
	if !prevA.Valid || !prevB.Valid || !curA.Valid || !curB.Valid {
		return 0
	}
	prevSpread := prevA.Float64 - prevB.Float64
	curSpread := curA.Float64 - curB.Float64
	switch {
	case prevSpread <= 0 && curSpread > 0:
		return 1
	case prevSpread >= 0 && curSpread < 0:
		return -1
	}
	return 0
}

func recommend(score int) Recommendation {
	switch {
	case score >= 30:
		return StrongBuy
	case score >= 15:
		return Buy
	case score <= -30:
		return StrongSell
	case score <= -15:
		return Sell
	}
	return Hold
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
