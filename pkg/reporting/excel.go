package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/twquant/daytrade-core/internal/analyzer"
	"github.com/twquant/daytrade-core/internal/indicators"
)

// ExcelReporter exports an analysis to an .xlsx workbook: one sheet with
// the full indicator series, one with levels and the risk plan.
type ExcelReporter struct{}

// NewExcelReporter creates an Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// Export writes the workbook to path.
func (r *ExcelReporter) Export(a *analyzer.Analysis, path string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	const snapSheet = "Indicators"
	const levelSheet = "Levels"
	fx.SetSheetName(fx.GetSheetName(0), snapSheet)
	fx.NewSheet(levelSheet)

	headStyle, _ := fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	headers := []string{
		"Date", "Open", "High", "Low", "Close", "Volume",
		"MA5", "MA10", "MA20", "MA60", "EMA12", "EMA26",
		"BB upper", "BB middle", "BB lower", "BB width", "BB %b",
		"MACD", "Signal", "Histogram",
		"RSI", "RSI6", "RSI24", "K", "D", "Williams %R",
		"ATR", "ATR %", "OBV", "OBV MA5",
		"ADX", "+DI", "-DI", "CCI", "SAR", "VWAP",
		"Bias5", "Bias10", "Bias20",
		"Vol MA5", "Vol MA20", "Vol ratio", "ROC5", "ROC10",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(snapSheet, cell, h)
		fx.SetCellStyle(snapSheet, cell, cell, headStyle)
	}

	for rowIdx, s := range a.Snapshots {
		values := []interface{}{
			s.Date.Format("2006-01-02"), s.Open, s.High, s.Low, s.Close, s.Volume,
			cellValue(s.MA5), cellValue(s.MA10), cellValue(s.MA20), cellValue(s.MA60),
			cellValue(s.EMA12), cellValue(s.EMA26),
			cellValue(s.BBUpper), cellValue(s.BBMiddle), cellValue(s.BBLower),
			cellValue(s.BBWidth), cellValue(s.BBPercent),
			cellValue(s.MACD), cellValue(s.MACDSignal), cellValue(s.MACDHist),
			cellValue(s.RSI), cellValue(s.RSI6), cellValue(s.RSI24),
			cellValue(s.StochK), cellValue(s.StochD), cellValue(s.WilliamsR),
			cellValue(s.ATR), cellValue(s.ATRPercent), cellValue(s.OBV), cellValue(s.OBVMA5),
			cellValue(s.ADX), cellValue(s.DIPlus), cellValue(s.DIMinus),
			cellValue(s.CCI), cellValue(s.SAR), cellValue(s.VWAP),
			cellValue(s.Bias5), cellValue(s.Bias10), cellValue(s.Bias20),
			cellValue(s.VolumeMA5), cellValue(s.VolumeMA20), cellValue(s.VolumeRatio),
			cellValue(s.ROC5), cellValue(s.ROC10),
		}
		for i, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			fx.SetCellValue(snapSheet, cell, v)
		}
	}

	levelHeaders := []string{"Class", "Price", "Source"}
	for i, h := range levelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(levelSheet, cell, h)
		fx.SetCellStyle(levelSheet, cell, cell, headStyle)
	}
	row := 2
	for _, l := range a.Levels.Resistance {
		writeRow(fx, levelSheet, row, "resistance", l.Price, l.Label)
		row++
	}
	for _, l := range a.Levels.Support {
		writeRow(fx, levelSheet, row, "support", l.Price, l.Label)
		row++
	}
	if a.RiskPlan != nil {
		row++
		writeRow(fx, levelSheet, row, "stop loss", a.RiskPlan.StopLoss, "")
		writeRow(fx, levelSheet, row+1, "take profit", a.RiskPlan.TakeProfit, "")
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRow(fx *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		fx.SetCellValue(sheet, cell, v)
	}
}

// cellValue maps an undefined reading to an empty cell, never a zero.
func cellValue(v indicators.Value) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Float64
}
