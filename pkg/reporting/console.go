// Package reporting renders an Analysis for humans: rounded console tables
// and an Excel workbook of the full indicator series.
package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/twquant/daytrade-core/internal/analyzer"
)

// ConsoleReporter prints an analysis to stdout.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// Print renders the signal summary, triggered rules, levels and risk plan.
func (r *ConsoleReporter) Print(a *analyzer.Analysis) {
	r.printSignal(a)
	r.printLevels(a)
	r.printRiskPlan(a)
}

func (r *ConsoleReporter) printSignal(a *analyzer.Analysis) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("SIGNAL %s", a.Symbol))
	t.SetStyle(table.StyleRounded)

	if a.Signal.NoSignal {
		t.AppendRow(table.Row{"Recommendation", "no signal (series too short)"})
		t.Render()
		fmt.Println()
		return
	}

	t.AppendRows([]table.Row{
		{"Date", a.Signal.Timestamp.Format("2006-01-02")},
		{"Price", fmt.Sprintf("%.2f", a.Signal.Price)},
		{"Score", fmt.Sprintf("%+d", a.Signal.Score)},
		{"Recommendation", string(a.Signal.Recommendation)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, Align: text.AlignLeft},
	})
	t.Render()

	if len(a.Signal.Triggered) > 0 {
		rules := table.NewWriter()
		rules.SetOutputMirror(os.Stdout)
		rules.SetTitle("TRIGGERED RULES")
		rules.SetStyle(table.StyleRounded)
		rules.AppendHeader(table.Row{"Rule", "Contribution"})
		for _, tr := range a.Signal.Triggered {
			rules.AppendRow(table.Row{tr.Rule, fmt.Sprintf("%+d", tr.Contribution)})
		}
		rules.Render()
	}
	fmt.Println()
}

func (r *ConsoleReporter) printLevels(a *analyzer.Analysis) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("LEVELS (close %.2f)", a.Levels.CurrentPrice))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Class", "Price", "Source"})
	for _, l := range a.Levels.Resistance {
		t.AppendRow(table.Row{"resistance", fmt.Sprintf("%.2f", l.Price), l.Label})
	}
	for _, l := range a.Levels.Support {
		t.AppendRow(table.Row{"support", fmt.Sprintf("%.2f", l.Price), l.Label})
	}
	t.Render()
	fmt.Println()
}

func (r *ConsoleReporter) printRiskPlan(a *analyzer.Analysis) {
	if a.RiskPlan == nil {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("ATR RISK PLAN")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Stop loss", fmt.Sprintf("%.2f", a.RiskPlan.StopLoss)},
		{"Take profit", fmt.Sprintf("%.2f", a.RiskPlan.TakeProfit)},
		{"Conservative stop", fmt.Sprintf("%.2f", a.RiskPlan.ConservativeStop)},
		{"Aggressive stop", fmt.Sprintf("%.2f", a.RiskPlan.AggressiveStop)},
		{"Risk / reward", fmt.Sprintf("%.2f / %.2f", a.RiskPlan.RiskAmount, a.RiskPlan.RewardAmount)},
	})
	t.Render()
	fmt.Println()
}
