package types

import (
	"fmt"
	"time"
)

// PriceBar is one end-of-day OHLCV observation for a single symbol.
// Bars are immutable once stored; a series is ordered by ascending date
// with market holidays simply absent.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks the OHLC ordering invariant and volume sign.
func (b PriceBar) Validate() error {
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %f", b.Date.Format("2006-01-02"), b.Volume)
	}
	hi, lo := b.Open, b.Close
	if hi < lo {
		hi, lo = lo, hi
	}
	if b.High < hi || b.Low > lo || b.Low < 0 {
		return fmt.Errorf("bar %s: OHLC ordering violated (o=%f h=%f l=%f c=%f)",
			b.Date.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close)
	}
	return nil
}

// TypicalPrice is (high + low + close) / 3, the base of VWAP and CCI.
func (b PriceBar) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// InstitutionalFlow is one day of three-institutional-investor net buy/sell
// figures for a symbol, already mapped from vendor labels to the fixed
// canonical shape.
type InstitutionalFlow struct {
	Date            time.Time
	ForeignInvestor float64
	InvestmentTrust float64
	DealerSelf      float64
	DealerHedging   float64
	DealerTotal     float64
	Total           float64
}

// Normalize fills DealerTotal from its components when the upstream source
// omits it and recomputes Total as the sum of the three categories.
func (f *InstitutionalFlow) Normalize() {
	if f.DealerTotal == 0 && (f.DealerSelf != 0 || f.DealerHedging != 0) {
		f.DealerTotal = f.DealerSelf + f.DealerHedging
	}
	f.Total = f.ForeignInvestor + f.InvestmentTrust + f.DealerTotal
}
