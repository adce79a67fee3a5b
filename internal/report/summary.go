// Package report renders charts from persisted summary tables and pool
// files. It never talks to the API: everything is read from disk.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"defi-data/internal/model"
)

// LoadSummary reads a chain summary CSV back into rows. Columns are resolved
// by header name; the chain-qualified TVL column (TVL_on_Ethereum) is
// recognized by prefix.
func LoadSummary(path string) ([]model.SummaryRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read summary %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("summary %s is empty", path)
	}

	idx := make(map[string]int, len(records[0]))
	tvlCol := -1
	chain := ""
	for i, name := range records[0] {
		idx[name] = i
		if name == "TVL" || strings.HasPrefix(name, "TVL_on_") {
			tvlCol = i
			chain = strings.ReplaceAll(strings.TrimPrefix(name, "TVL_on_"), "_", " ")
		}
	}

	col := func(rec []string, name string) float64 {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return 0
		}
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return 0
		}
		return v
	}
	str := func(rec []string, name string) string {
		if i, ok := idx[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	rows := make([]model.SummaryRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := model.SummaryRow{
			Protocol:    str(rec, "Protocol"),
			Slug:        str(rec, "Slug"),
			Chain:       chain,
			Volume24h:   col(rec, "Volume_24h"),
			Volume7d:    col(rec, "Volume_7d"),
			Volume30d:   col(rec, "Volume_30d"),
			VolumeTotal: col(rec, "Volume_Total"),
			Fees24h:     col(rec, "Fees_24h"),
			Fees7d:      col(rec, "Fees_7d"),
			Fees30d:     col(rec, "Fees_30d"),
			Revenue24h:  col(rec, "Revenue_24h"),
			Revenue7d:   col(rec, "Revenue_7d"),
			Revenue30d:  col(rec, "Revenue_30d"),
		}
		if tvlCol >= 0 && tvlCol < len(rec) {
			if v, err := strconv.ParseFloat(rec[tvlCol], 64); err == nil {
				row.TVL = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
