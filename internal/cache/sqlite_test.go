package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twquant/daytrade-core/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func bar(date time.Time, close float64) types.PriceBar {
	return types.PriceBar{
		Date: date, Open: close, High: close + 1, Low: close - 1,
		Close: close, Volume: 1000,
	}
}

func TestStore_PriceRoundTripSortedByDate(t *testing.T) {
	s := openTestStore(t)

	// Insert out of order; reads come back ascending.
	s.PutPrices("2330", []types.PriceBar{
		bar(day(2024, 6, 3), 102),
		bar(day(2024, 6, 1), 100),
		bar(day(2024, 6, 2), 101),
	})

	got := s.GetPriceRange("2330", day(2024, 6, 1), day(2024, 6, 3))
	require.Len(t, got, 3)
	assert.Equal(t, 100.0, got[0].Close)
	assert.Equal(t, 101.0, got[1].Close)
	assert.Equal(t, 102.0, got[2].Close)
	assert.True(t, got[0].Date.Equal(day(2024, 6, 1)))
}

func TestStore_PriceRangeIsInclusive(t *testing.T) {
	s := openTestStore(t)
	s.PutPrices("2330", []types.PriceBar{
		bar(day(2024, 6, 1), 100),
		bar(day(2024, 6, 2), 101),
		bar(day(2024, 6, 3), 102),
	})

	got := s.GetPriceRange("2330", day(2024, 6, 2), day(2024, 6, 2))
	require.Len(t, got, 1)
	assert.Equal(t, 101.0, got[0].Close)
}

func TestStore_PutPricesUpsertsSameKey(t *testing.T) {
	s := openTestStore(t)
	d := day(2024, 6, 1)

	s.PutPrices("2330", []types.PriceBar{bar(d, 100)})
	s.PutPrices("2330", []types.PriceBar{bar(d, 105)})

	got := s.GetPriceRange("2330", d, d)
	require.Len(t, got, 1)
	assert.Equal(t, 105.0, got[0].Close)
}

func TestStore_PricesIsolatedBySymbol(t *testing.T) {
	s := openTestStore(t)
	d := day(2024, 6, 1)

	s.PutPrices("2330", []types.PriceBar{bar(d, 100)})
	s.PutPrices("2317", []types.PriceBar{bar(d, 200)})

	got := s.GetPriceRange("2330", d, d)
	require.Len(t, got, 1)
	assert.Equal(t, 100.0, got[0].Close)
	assert.Empty(t, s.GetPriceRange("2454", d, d))
}

func TestStore_InstitutionalRoundTrip(t *testing.T) {
	s := openTestStore(t)
	d := day(2024, 6, 1)

	s.PutInstitutional("2330", []types.InstitutionalFlow{{
		Date:            d,
		ForeignInvestor: 5000,
		InvestmentTrust: 1200,
		DealerSelf:      300,
		DealerHedging:   -100,
		DealerTotal:     200,
		Total:           6400,
	}})

	got := s.GetInstitutionalRange("2330", d, d)
	require.Len(t, got, 1)
	assert.Equal(t, 5000.0, got[0].ForeignInvestor)
	assert.Equal(t, 1200.0, got[0].InvestmentTrust)
	assert.Equal(t, 200.0, got[0].DealerTotal)
	assert.Equal(t, 6400.0, got[0].Total)
}

func TestStore_InstitutionalUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	d := day(2024, 6, 1)

	s.PutInstitutional("2330", []types.InstitutionalFlow{{Date: d, Total: 100}})
	s.PutInstitutional("2330", []types.InstitutionalFlow{{Date: d, Total: 250}})

	got := s.GetInstitutionalRange("2330", d, d)
	require.Len(t, got, 1)
	assert.Equal(t, 250.0, got[0].Total)
}

func TestStore_NewsTTL(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	s.PutNews("2330", "earnings beat expectations", 24*time.Hour)

	got, ok := s.GetNews("2330")
	require.True(t, ok)
	assert.Equal(t, "earnings beat expectations", got)

	// Still valid just inside the window.
	s.now = func() time.Time { return base.Add(23*time.Hour + 59*time.Minute) }
	_, ok = s.GetNews("2330")
	assert.True(t, ok)

	// Expired just past it.
	s.now = func() time.Time { return base.Add(24*time.Hour + 1*time.Minute) }
	_, ok = s.GetNews("2330")
	assert.False(t, ok)
}

func TestStore_NewsLatestEntryWins(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	s.PutNews("2330", "old story", time.Hour)
	s.now = func() time.Time { return base.Add(time.Minute) }
	s.PutNews("2330", "new story", time.Hour)

	got, ok := s.GetNews("2330")
	require.True(t, ok)
	assert.Equal(t, "new story", got)
}

func TestStore_NewsMissForUnknownSymbol(t *testing.T) {
	s := openTestStore(t)
	_, ok := s.GetNews("9999")
	assert.False(t, ok)
}

func TestStore_QueryStatsAggregates(t *testing.T) {
	s := openTestStore(t)

	s.LogQuery("2330", "price")
	s.LogQuery("2330", "price")
	s.LogQuery("2330", "institutional")
	s.LogQuery("2317", "price")

	stats := s.QueryStats(7)
	require.Len(t, stats, 3)
	// Ordered by count descending; the (2330, price) bucket leads.
	assert.Equal(t, QueryStat{Symbol: "2330", Kind: "price", Count: 2}, stats[0])
}

func TestStore_QueryStatsWindowExcludesOldRows(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base.AddDate(0, 0, -10) }
	s.LogQuery("2330", "price")
	s.now = func() time.Time { return base }
	s.LogQuery("2330", "price")

	stats := s.QueryStats(7)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Count)
}

func TestStore_CleanupDropsStaleRows(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	old := base.AddDate(0, 0, -120)
	s.PutPrices("2330", []types.PriceBar{bar(old, 90), bar(base, 100)})
	s.PutInstitutional("2330", []types.InstitutionalFlow{
		{Date: old, Total: 1}, {Date: base, Total: 2},
	})
	s.PutNews("2330", "stale", -time.Hour) // already expired
	s.PutNews("2330", "fresh", time.Hour)

	require.NoError(t, s.Cleanup(90))

	bars := s.GetPriceRange("2330", old, base)
	require.Len(t, bars, 1)
	assert.Equal(t, 100.0, bars[0].Close)

	flows := s.GetInstitutionalRange("2330", old, base)
	require.Len(t, flows, 1)
	assert.Equal(t, 2.0, flows[0].Total)

	got, ok := s.GetNews("2330")
	require.True(t, ok)
	assert.Equal(t, "fresh", got)

	st, err := s.DatabaseStats()
	require.NoError(t, err)
	assert.Equal(t, 1, st.PriceRows)
	assert.Equal(t, 1, st.InstitutionalRows)
	assert.Equal(t, 1, st.ActiveNewsRows)
}

func TestStore_DatabaseStatsCountsRows(t *testing.T) {
	s := openTestStore(t)

	s.PutPrices("2330", []types.PriceBar{
		bar(day(2024, 6, 1), 100), bar(day(2024, 6, 2), 101),
	})
	s.PutInstitutional("2330", []types.InstitutionalFlow{{Date: day(2024, 6, 1)}})
	s.PutNews("2330", "x", time.Hour)
	s.LogQuery("2330", "price")
	s.LogQuery("2330", "news")

	st, err := s.DatabaseStats()
	require.NoError(t, err)
	assert.Equal(t, Stats{
		PriceRows:         2,
		InstitutionalRows: 1,
		ActiveNewsRows:    1,
		QueryLogRows:      2,
	}, st)
}

func TestStore_EmptyPutIsNoOp(t *testing.T) {
	s := openTestStore(t)
	s.PutPrices("2330", nil)
	s.PutInstitutional("2330", nil)

	st, err := s.DatabaseStats()
	require.NoError(t, err)
	assert.Zero(t, st.PriceRows)
	assert.Zero(t, st.InstitutionalRows)
}
