package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/twquant/daytrade-core/pkg/types"
)

// CSVColumnMapping describes which CSV column holds which bar field.
type CSVColumnMapping struct {
	DateCol    int
	OpenCol    int
	HighCol    int
	LowCol     int
	CloseCol   int
	VolumeCol  int
	MinColumns int
	DateFormat string
}

// DefaultCSVFormat matches "date,open,high,low,close,volume" with ISO dates.
var DefaultCSVFormat = CSVColumnMapping{
	DateCol:    0,
	OpenCol:    1,
	HighCol:    2,
	LowCol:     3,
	CloseCol:   4,
	VolumeCol:  5,
	MinColumns: 6,
	DateFormat: "2006-01-02",
}

// CSVProvider implements BarProvider for local CSV files. The source it
// opens is "<dir>/<symbol>.csv".
type CSVProvider struct {
	dir    string
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV provider reading from dir with the default
// column layout.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir, format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV provider with a custom layout.
func NewCSVProviderWithFormat(dir string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{dir: dir, format: format}
}

// GetName returns the provider name.
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadBars reads the symbol's file, keeps rows within [start, end] and
// returns them ascending by date. Unparseable rows are skipped with a
// warning rather than failing the whole load.
func (p *CSVProvider) LoadBars(symbol string, start, end time.Time) ([]types.PriceBar, error) {
	filename := fmt.Sprintf("%s/%s.csv", p.dir, symbol)
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil { // header
		return nil, fmt.Errorf("read header of %s: %w", filename, err)
	}

	var bars []types.PriceBar
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", filename, lineNum, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("[WARN] %s line %d: %d columns, want %d; skipping",
				filename, lineNum, len(record), p.format.MinColumns)
			continue
		}

		date, err := time.Parse(p.format.DateFormat, record[p.format.DateCol])
		if err != nil {
			log.Printf("[WARN] %s line %d: bad date %q; skipping", filename, lineNum, record[p.format.DateCol])
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}

		bar := types.PriceBar{Date: date}
		fields := []struct {
			col int
			dst *float64
		}{
			{p.format.OpenCol, &bar.Open},
			{p.format.HighCol, &bar.High},
			{p.format.LowCol, &bar.Low},
			{p.format.CloseCol, &bar.Close},
			{p.format.VolumeCol, &bar.Volume},
		}
		ok := true
		for _, f := range fields {
			v, err := strconv.ParseFloat(record[f.col], 64)
			if err != nil {
				log.Printf("[WARN] %s line %d: bad number %q; skipping", filename, lineNum, record[f.col])
				ok = false
				break
			}
			*f.dst = v
		}
		if !ok {
			continue
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
