package data

import (
	"time"

	"github.com/twquant/daytrade-core/pkg/types"
)

// BarProvider loads a daily PriceBar series for a symbol over a date range.
// Implementations sit at the pipeline boundary; the core never cares
// whether bars came from the cache, a file, or a live fetch.
type BarProvider interface {
	// LoadBars returns bars ascending by date within [start, end].
	LoadBars(symbol string, start, end time.Time) ([]types.PriceBar, error)

	// GetName returns the provider name for logging.
	GetName() string
}
