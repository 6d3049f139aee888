package signals

import "math"

// RiskPlan is an ATR-derived stop-loss/take-profit quad around an entry
// price, with the risk and reward amounts spelled out.
type RiskPlan struct {
	StopLoss         float64
	TakeProfit       float64
	ConservativeStop float64
	AggressiveStop   float64
	RiskAmount       float64
	RewardAmount     float64
	RiskRewardRatio  float64
}

// DefaultRiskRewardRatio is used when the caller passes a non-positive one.
const DefaultRiskRewardRatio = 2.0

// StopLossTakeProfit derives the standard ATR risk plan:
// stop = price - 2*ATR, target = price + 2*ATR*ratio, with conservative
// (1.5*ATR) and aggressive (2.5*ATR) stop variants. Values are rounded to
// two decimals, matching price tick display.
func StopLossTakeProfit(price, atr, riskRewardRatio float64) RiskPlan {
	if riskRewardRatio <= 0 {
		riskRewardRatio = DefaultRiskRewardRatio
	}

	stop := round2(price - 2*atr)
	target := round2(price + 2*atr*riskRewardRatio)

	return RiskPlan{
		StopLoss:         stop,
		TakeProfit:       target,
		ConservativeStop: round2(price - 1.5*atr),
		AggressiveStop:   round2(price - 2.5*atr),
		RiskAmount:       round2(price - stop),
		RewardAmount:     round2(target - price),
		RiskRewardRatio:  riskRewardRatio,
	}
}

// PositionSize returns the share count whose loss at the stop equals the
// risk budget: floor(riskAmount / (entry - stop)). Zero when the stop is
// not below the entry.
func PositionSize(entryPrice, stopLoss, riskAmount float64) int {
	if entryPrice <= stopLoss {
		return 0
	}
	return int(riskAmount / (entryPrice - stopLoss))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
