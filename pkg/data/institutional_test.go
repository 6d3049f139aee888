package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twquant/daytrade-core/pkg/types"
)

func TestPivotInstitutional_MapsVendorLabels(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	flows := PivotInstitutional([]VendorFlowRow{
		{Date: d, Label: "外資及陸資", Net: 5000},
		{Date: d, Label: "投信", Net: 1200},
		{Date: d, Label: "自營商(自行買賣)", Net: 300},
		{Date: d, Label: "自營商(避險)", Net: -100},
	})

	require.Len(t, flows, 1)
	f := flows[0]
	assert.Equal(t, 5000.0, f.ForeignInvestor)
	assert.Equal(t, 1200.0, f.InvestmentTrust)
	assert.Equal(t, 300.0, f.DealerSelf)
	assert.Equal(t, -100.0, f.DealerHedging)
	// Aggregate row absent, so the dealer total is derived from components.
	assert.Equal(t, 200.0, f.DealerTotal)
	assert.Equal(t, 6400.0, f.Total)
}

func TestPivotInstitutional_VendorDealerAggregateWins(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	flows := PivotInstitutional([]VendorFlowRow{
		{Date: d, Label: "外資及陸資", Net: 1000},
		{Date: d, Label: "自營商", Net: 500},
	})

	require.Len(t, flows, 1)
	assert.Equal(t, 500.0, flows[0].DealerTotal)
	assert.Equal(t, 1500.0, flows[0].Total)
}

func TestPivotInstitutional_ForeignDealerFoldsIntoForeign(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	flows := PivotInstitutional([]VendorFlowRow{
		{Date: d, Label: "外資及陸資", Net: 1000},
		{Date: d, Label: "外資自營商", Net: 50},
	})

	require.Len(t, flows, 1)
	assert.Equal(t, 1050.0, flows[0].ForeignInvestor)
}

func TestPivotInstitutional_UnknownLabelsDropped(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	flows := PivotInstitutional([]VendorFlowRow{
		{Date: d, Label: "合計", Net: 9999},
		{Date: d, Label: "投信", Net: 700},
	})

	require.Len(t, flows, 1)
	assert.Equal(t, 700.0, flows[0].InvestmentTrust)
	assert.Equal(t, 700.0, flows[0].Total)
}

func TestPivotInstitutional_GroupsAndSortsByDate(t *testing.T) {
	d1 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	flows := PivotInstitutional([]VendorFlowRow{
		{Date: d2, Label: "投信", Net: 200},
		{Date: d1, Label: "投信", Net: 100},
	})

	require.Len(t, flows, 2)
	assert.True(t, flows[0].Date.Equal(d1))
	assert.Equal(t, 100.0, flows[0].InvestmentTrust)
	assert.Equal(t, 200.0, flows[1].InvestmentTrust)
}

func TestPivotInstitutional_Empty(t *testing.T) {
	assert.Empty(t, PivotInstitutional(nil))
}

func TestValidateInstitutional(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	good := []types.InstitutionalFlow{{
		Date: d, ForeignInvestor: 1000, InvestmentTrust: 200, DealerTotal: 300, Total: 1500,
	}}
	assert.NoError(t, ValidateInstitutional(good))

	bad := []types.InstitutionalFlow{{
		Date: d, ForeignInvestor: 1000, Total: 900,
	}}
	err := ValidateInstitutional(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-06-03")
}

func TestInstitutionalFlowNormalize(t *testing.T) {
	f := types.InstitutionalFlow{DealerSelf: 300, DealerHedging: -100}
	f.Normalize()
	assert.Equal(t, 200.0, f.DealerTotal)

	// A vendor-supplied aggregate is kept even when components disagree.
	f = types.InstitutionalFlow{DealerSelf: 300, DealerHedging: -100, DealerTotal: 250}
	f.Normalize()
	assert.Equal(t, 250.0, f.DealerTotal)
	assert.Equal(t, 250.0, f.Total)
}
