package levels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twquant/daytrade-core/internal/indicators"
	"github.com/twquant/daytrade-core/pkg/types"
)

func snapshotAt(day int, close float64) indicators.Snapshot {
	return indicators.Snapshot{
		PriceBar: types.PriceBar{
			Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000,
		},
	}
}

func TestFind_EmptySeries(t *testing.T) {
	res := NewDefaultFinder().Find(nil)
	assert.Empty(t, res.Support)
	assert.Empty(t, res.Resistance)
	assert.Zero(t, res.CurrentPrice)
}

func TestFind_MovingAveragesClassifiedBySide(t *testing.T) {
	s := snapshotAt(0, 100)
	s.MA5 = indicators.Defined(98)   // below close: support
	s.MA20 = indicators.Defined(104) // above close: resistance
	s.MA60 = indicators.Defined(110)

	res := NewDefaultFinder().Find([]indicators.Snapshot{s})

	require.Len(t, res.Support, 1)
	assert.Equal(t, 98.0, res.Support[0].Price)
	assert.Equal(t, "MA5 support", res.Support[0].Label)
	assert.Equal(t, Support, res.Support[0].Class)

	require.Len(t, res.Resistance, 2)
	assert.Equal(t, 104.0, res.Resistance[0].Price)
	assert.Equal(t, 110.0, res.Resistance[1].Price)
}

func TestFind_OrderingAndTruncation(t *testing.T) {
	s := snapshotAt(0, 100)
	s.MA5 = indicators.Defined(99)
	s.MA10 = indicators.Defined(95)
	s.MA20 = indicators.Defined(90)
	s.MA60 = indicators.Defined(85)
	s.BBLower = indicators.Defined(80)

	res := NewDefaultFinder().Find([]indicators.Snapshot{s})

	// Support descending, capped to the default three.
	require.Len(t, res.Support, 3)
	assert.Equal(t, []float64{99, 95, 90}, []float64{
		res.Support[0].Price, res.Support[1].Price, res.Support[2].Price})
}

func TestFind_MergesLevelsWithinHalfPercent(t *testing.T) {
	s := snapshotAt(0, 105)
	s.MA5 = indicators.Defined(100.00)
	s.MA10 = indicators.Defined(100.30)
	s.MA20 = indicators.Defined(101.00)

	res := NewDefaultFinder().Find([]indicators.Snapshot{s})

	require.Len(t, res.Support, 2)
	// Sort order is descending, so 101.00 is seen first and kept; 100.30
	// is 0.69% away and kept; 100.00 is 0.3% from 100.30 and merged out.
	assert.Equal(t, 101.00, res.Support[0].Price)
	assert.Equal(t, 100.30, res.Support[1].Price)
}

func TestMergeClose_FirstSeenWins(t *testing.T) {
	f := NewDefaultFinder()
	kept := f.mergeClose([]Level{
		{Price: 100.00, Label: "a"},
		{Price: 100.30, Label: "b"},
	})
	require.Len(t, kept, 1)
	assert.Equal(t, "a", kept[0].Label)

	kept = f.mergeClose([]Level{
		{Price: 100.00, Label: "a"},
		{Price: 101.00, Label: "b"},
	})
	assert.Len(t, kept, 2)
}

func TestFind_ATRBandsAlwaysAddedWhenDefined(t *testing.T) {
	s := snapshotAt(0, 100)
	s.ATR = indicators.Defined(2)

	res := NewDefaultFinder().Find([]indicators.Snapshot{s})

	require.Len(t, res.Support, 1)
	assert.Equal(t, 96.0, res.Support[0].Price)
	assert.Equal(t, "ATR stop", res.Support[0].Label)
	require.Len(t, res.Resistance, 1)
	assert.Equal(t, 104.0, res.Resistance[0].Price)
	assert.Equal(t, "ATR target", res.Resistance[0].Label)
}

func TestFind_LocalExtremaOverTrailingWindow(t *testing.T) {
	// A spike high above the final close becomes resistance; a dip low
	// below it becomes support. Boundary bars are never extrema.
	closes := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100}
	snaps := make([]indicators.Snapshot, len(closes))
	for i, c := range closes {
		snaps[i] = snapshotAt(i, c)
	}
	snaps[4].High = 120 // interior spike
	snaps[6].Low = 90   // interior dip

	res := NewDefaultFinder().Find(snaps)

	require.Len(t, res.Resistance, 1)
	assert.Equal(t, 120.0, res.Resistance[0].Price)
	assert.Contains(t, res.Resistance[0].Label, "recent high")
	require.Len(t, res.Support, 1)
	assert.Equal(t, 90.0, res.Support[0].Price)
	assert.Contains(t, res.Support[0].Label, "recent low")
}

func TestFind_SingleBarSkipsExtremaScan(t *testing.T) {
	s := snapshotAt(0, 100)
	s.SAR = indicators.Defined(97)

	res := NewDefaultFinder().Find([]indicators.Snapshot{s})

	require.Len(t, res.Support, 1)
	assert.Equal(t, "SAR trailing stop", res.Support[0].Label)
}

func TestFind_UndefinedFieldsSkipped(t *testing.T) {
	// Nothing defined: no levels, no phantom zeros.
	res := NewDefaultFinder().Find([]indicators.Snapshot{snapshotAt(0, 100)})
	assert.Empty(t, res.Support)
	assert.Empty(t, res.Resistance)
	assert.Equal(t, 100.0, res.CurrentPrice)
}
