package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/twquant/daytrade-core/pkg/types"
)

// The vendor reports institutional flows long-format, one row per investor
// category per day, labeled in Chinese. This fixed table maps each vendor
// label to its canonical field; anything unlisted is dropped at the
// boundary instead of leaking a dynamic column into the core.
var vendorLabelFields = map[string]func(*types.InstitutionalFlow, float64){
	"外資及陸資":     func(f *types.InstitutionalFlow, v float64) { f.ForeignInvestor += v },
	"外資自營商":     func(f *types.InstitutionalFlow, v float64) { f.ForeignInvestor += v },
	"投信":        func(f *types.InstitutionalFlow, v float64) { f.InvestmentTrust += v },
	"自營商(自行買賣)": func(f *types.InstitutionalFlow, v float64) { f.DealerSelf += v },
	"自營商(避險)":   func(f *types.InstitutionalFlow, v float64) { f.DealerHedging += v },
	"自營商":       func(f *types.InstitutionalFlow, v float64) { f.DealerTotal += v },
}

// VendorFlowRow is one long-format row as the vendor serves it: a date, an
// investor-category label, and the day's net figure for that category.
type VendorFlowRow struct {
	Date  time.Time
	Label string
	Net   float64
}

// PivotInstitutional folds long-format vendor rows into one fixed-shape
// InstitutionalFlow per date, ascending by date. DealerTotal falls back to
// dealer_self + dealer_hedging when the vendor omits the aggregate row, and
// Total is always recomputed as the sum of the three categories.
func PivotInstitutional(rows []VendorFlowRow) []types.InstitutionalFlow {
	byDate := make(map[string]*types.InstitutionalFlow)
	for _, row := range rows {
		apply, ok := vendorLabelFields[row.Label]
		if !ok {
			continue
		}
		key := row.Date.Format("2006-01-02")
		f, ok := byDate[key]
		if !ok {
			f = &types.InstitutionalFlow{Date: row.Date}
			byDate[key] = f
		}
		apply(f, row.Net)
	}

	flows := make([]types.InstitutionalFlow, 0, len(byDate))
	for _, f := range byDate {
		f.Normalize()
		flows = append(flows, *f)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Date.Before(flows[j].Date) })
	return flows
}

// ValidateInstitutional checks the fixed-shape invariant before rows enter
// the core: total must equal the sum of the three categories.
func ValidateInstitutional(flows []types.InstitutionalFlow) error {
	const epsilon = 1e-6
	for _, f := range flows {
		want := f.ForeignInvestor + f.InvestmentTrust + f.DealerTotal
		if diff := f.Total - want; diff > epsilon || diff < -epsilon {
			return fmt.Errorf("institutional row %s: total %f != sum of categories %f",
				f.Date.Format("2006-01-02"), f.Total, want)
		}
	}
	return nil
}
