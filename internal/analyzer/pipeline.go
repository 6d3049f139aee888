// Package analyzer wires the cache, indicator engine, level finder and
// signal composer into the per-symbol analysis pipeline. All I/O happens
// here at the boundary; the computations it calls are pure.
package analyzer

import (
	"fmt"
	"log"
	"time"

	"github.com/twquant/daytrade-core/internal/cache"
	"github.com/twquant/daytrade-core/internal/errors"
	"github.com/twquant/daytrade-core/internal/indicators"
	"github.com/twquant/daytrade-core/internal/levels"
	"github.com/twquant/daytrade-core/internal/monitoring"
	"github.com/twquant/daytrade-core/internal/signals"
	"github.com/twquant/daytrade-core/pkg/data"
	"github.com/twquant/daytrade-core/pkg/types"
)

// Analysis is the full payload handed to the presentation collaborator:
// the augmented series, the level set, the signal report and the ATR risk
// plan. Nothing else crosses the boundary.
type Analysis struct {
	Symbol    string
	Snapshots []indicators.Snapshot
	Levels    levels.Result
	Signal    signals.Report
	RiskPlan  *signals.RiskPlan
}

// Pipeline runs analyses. The cache store is injected explicitly; there is
// no package-level singleton.
type Pipeline struct {
	store    *cache.Store
	provider data.BarProvider
	engine   *indicators.Engine
	finder   *levels.Finder
	composer *signals.Composer

	riskRewardRatio float64
}

// New creates a pipeline. store may be nil (cache disabled); provider may
// be nil when callers always analyze pre-fetched bars via AnalyzeBars.
func New(store *cache.Store, provider data.BarProvider,
	engine *indicators.Engine, finder *levels.Finder, riskRewardRatio float64) *Pipeline {
	return &Pipeline{
		store:           store,
		provider:        provider,
		engine:          engine,
		finder:          finder,
		composer:        signals.NewComposer(),
		riskRewardRatio: riskRewardRatio,
	}
}

// Analyze loads the symbol's bars cache-first and computes the full
// analysis. With forceRefresh the cache read is skipped and the provider's
// bars overwrite whatever was stored.
func (p *Pipeline) Analyze(symbol string, start, end time.Time, forceRefresh bool) (*Analysis, error) {
	bars, err := p.loadBars(symbol, start, end, forceRefresh)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrorCategoryData, "analyzer", "analyze",
			fmt.Sprintf("no bars for %s in [%s, %s]", symbol,
				start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	return p.AnalyzeBars(symbol, bars)
}

// AnalyzeBars computes the full analysis over an already-materialized,
// date-ascending series.
func (p *Pipeline) AnalyzeBars(symbol string, bars []types.PriceBar) (*Analysis, error) {
	snaps, err := p.engine.Compute(bars)
	if err != nil {
		monitoring.RecordError(string(errors.ErrorCategoryValidation))
		return nil, err
	}

	a := &Analysis{
		Symbol:    symbol,
		Snapshots: snaps,
		Levels:    p.finder.Find(snaps),
		Signal:    p.composer.Compose(snaps),
	}

	if n := len(snaps); n > 0 && snaps[n-1].ATR.Valid {
		plan := signals.StopLossTakeProfit(snaps[n-1].Close, snaps[n-1].ATR.Float64, p.riskRewardRatio)
		a.RiskPlan = &plan
	}

	monitoring.RecordAnalysis(symbol, a.Signal.Score)
	return a, nil
}

// loadBars reads from the cache first and falls back to the provider,
// writing fetched bars back. Cache faults already read as misses inside
// the store, so this path only distinguishes hit from miss.
func (p *Pipeline) loadBars(symbol string, start, end time.Time, forceRefresh bool) ([]types.PriceBar, error) {
	if p.store != nil {
		p.store.LogQuery(symbol, "price")
	}

	if p.store != nil && !forceRefresh {
		if bars := p.store.GetPriceRange(symbol, start, end); len(bars) > 0 {
			monitoring.RecordCacheLookup("price", true)
			log.Printf("[INFO] %s: %d bars from cache", symbol, len(bars))
			return bars, nil
		}
		monitoring.RecordCacheLookup("price", false)
	}

	if p.provider == nil {
		return nil, nil
	}

	bars, err := p.provider.LoadBars(symbol, start, end)
	if err != nil {
		monitoring.RecordError(string(errors.ErrorCategoryExternal))
		return nil, errors.Wrap(err, errors.ErrorCategoryExternal, "analyzer", "load bars")
	}
	log.Printf("[INFO] %s: %d bars from %s", symbol, len(bars), p.provider.GetName())

	if p.store != nil {
		p.store.PutPrices(symbol, bars)
	}
	return bars, nil
}
