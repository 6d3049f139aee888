// Package levels derives support and resistance price levels from an
// indicator-augmented series plus the recent local extrema of raw bars.
package levels

import (
	"fmt"
	"sort"

	"github.com/twquant/daytrade-core/internal/indicators"
)

// Class tells whether a level sits below (support) or above (resistance)
// the current price.
type Class string

const (
	Support    Class = "support"
	Resistance Class = "resistance"
)

// Level is one support or resistance candidate with its provenance.
type Level struct {
	Price float64
	Label string
	Class Class
}

// Result is the ordered, deduplicated level set around the current price.
// Support is descending by price, resistance ascending; both are capped to
// the configured maximum.
type Result struct {
	Support      []Level
	Resistance   []Level
	CurrentPrice float64
}

// Config controls the level search.
type Config struct {
	// MaxLevels caps each class after merging.
	MaxLevels int
	// MergeTolerance is the relative price distance below which a later
	// candidate collapses into the previously kept one.
	MergeTolerance float64
	// Lookback is how many trailing bars the local-extrema scan covers.
	Lookback int
	// ATRMultiple scales the volatility band added around the close.
	ATRMultiple float64
}

// DefaultConfig returns the standard level-search parameters.
func DefaultConfig() Config {
	return Config{
		MaxLevels:      3,
		MergeTolerance: 0.005,
		Lookback:       20,
		ATRMultiple:    2.0,
	}
}

// Finder locates support/resistance levels.
type Finder struct {
	cfg Config
}

// NewFinder creates a Finder with the given configuration.
func NewFinder(cfg Config) *Finder {
	return &Finder{cfg: cfg}
}

// NewDefaultFinder creates a Finder with DefaultConfig.
func NewDefaultFinder() *Finder {
	return NewFinder(DefaultConfig())
}

// Find derives levels from the snapshot series. Only the last snapshot and
// the trailing lookback window of raw highs/lows are consulted. An empty
// series yields an empty result.
func (f *Finder) Find(snaps []indicators.Snapshot) Result {
	if len(snaps) == 0 {
		return Result{}
	}

	latest := snaps[len(snaps)-1]
	price := latest.Close

	var support, resistance []Level
	add := func(class Class, p float64, label string) {
		if class == Support {
			support = append(support, Level{Price: p, Label: label, Class: Support})
		} else {
			resistance = append(resistance, Level{Price: p, Label: label, Class: Resistance})
		}
	}

	// 1. Moving averages, classified by which side of the close they sit on.
	mas := []struct {
		name  string
		value indicators.Value
	}{
		{"MA5", latest.MA5},
		{"MA10", latest.MA10},
		{"MA20", latest.MA20},
		{"MA60", latest.MA60},
	}
	for _, ma := range mas {
		if !ma.value.Valid || ma.value.Float64 <= 0 {
			continue
		}
		if ma.value.Float64 < price {
			add(Support, ma.value.Float64, ma.name+" support")
		} else if ma.value.Float64 > price {
			add(Resistance, ma.value.Float64, ma.name+" resistance")
		}
	}

	// 2. Bollinger Bands.
	if latest.BBUpper.Valid && latest.BBUpper.Float64 > price {
		add(Resistance, latest.BBUpper.Float64, "Bollinger upper")
	}
	if latest.BBLower.Valid && latest.BBLower.Float64 < price {
		add(Support, latest.BBLower.Float64, "Bollinger lower")
	}

	// 3. Parabolic SAR.
	if latest.SAR.Valid && latest.SAR.Float64 > 0 {
		if latest.SAR.Float64 < price {
			add(Support, latest.SAR.Float64, "SAR trailing stop")
		} else {
			add(Resistance, latest.SAR.Float64, "SAR resistance")
		}
	}

	// 4. VWAP.
	if latest.VWAP.Valid && latest.VWAP.Float64 > 0 {
		if latest.VWAP.Float64 < price {
			add(Support, latest.VWAP.Float64, "VWAP support")
		} else {
			add(Resistance, latest.VWAP.Float64, "VWAP resistance")
		}
	}

	// 5. Local extrema over the trailing window. Needs strict interior
	// neighbors, so the scan is skipped outright on series shorter than 2.
	if len(snaps) >= 2 {
		start := len(snaps) - f.cfg.Lookback
		if start < 0 {
			start = 0
		}
		recent := snaps[start:]
		for i := 1; i < len(recent)-1; i++ {
			if recent[i].High > recent[i-1].High && recent[i].High > recent[i+1].High &&
				recent[i].High > price {
				add(Resistance, recent[i].High,
					fmt.Sprintf("recent high (%s)", recent[i].Date.Format("01/02")))
			}
		}
		for i := 1; i < len(recent)-1; i++ {
			if recent[i].Low < recent[i-1].Low && recent[i].Low < recent[i+1].Low &&
				recent[i].Low < price {
				add(Support, recent[i].Low,
					fmt.Sprintf("recent low (%s)", recent[i].Date.Format("01/02")))
			}
		}
	}

	// 6. ATR volatility band, added on both sides regardless of the close.
	if latest.ATR.Valid && latest.ATR.Float64 > 0 {
		add(Support, price-f.cfg.ATRMultiple*latest.ATR.Float64, "ATR stop")
		add(Resistance, price+f.cfg.ATRMultiple*latest.ATR.Float64, "ATR target")
	}

	sort.SliceStable(support, func(i, j int) bool { return support[i].Price > support[j].Price })
	sort.SliceStable(resistance, func(i, j int) bool { return resistance[i].Price < resistance[j].Price })

	support = f.mergeClose(support)
	resistance = f.mergeClose(resistance)

	if len(support) > f.cfg.MaxLevels {
		support = support[:f.cfg.MaxLevels]
	}
	if len(resistance) > f.cfg.MaxLevels {
		resistance = resistance[:f.cfg.MaxLevels]
	}

	return Result{Support: support, Resistance: resistance, CurrentPrice: price}
}

// mergeClose drops candidates within the merge tolerance of the previously
// kept level; first seen in sort order wins.
func (f *Finder) mergeClose(sorted []Level) []Level {
	if len(sorted) == 0 {
		return nil
	}
	kept := []Level{sorted[0]}
	for _, l := range sorted[1:] {
		last := kept[len(kept)-1]
		if abs(l.Price-last.Price)/last.Price > f.cfg.MergeTolerance {
			kept = append(kept, l)
		}
	}
	return kept
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
