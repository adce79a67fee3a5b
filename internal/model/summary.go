package model

import (
	"strconv"
	"strings"
)

// SummaryRow is the denormalized per-protocol line of a chain summary table:
// protocol identity plus every extracted metric, numeric-only. One row per
// successfully processed protocol.
type SummaryRow struct {
	Protocol    string  `json:"protocol" parquet:"protocol"`
	Slug        string  `json:"slug" parquet:"slug"`
	Chain       string  `json:"chain" parquet:"chain"`
	TVL         float64 `json:"tvl" parquet:"tvl"`
	Volume24h   float64 `json:"volume_24h" parquet:"volume_24h"`
	Volume7d    float64 `json:"volume_7d" parquet:"volume_7d"`
	Volume30d   float64 `json:"volume_30d" parquet:"volume_30d"`
	VolumeTotal float64 `json:"volume_total" parquet:"volume_total"`
	Fees24h     float64 `json:"fees_24h" parquet:"fees_24h"`
	Fees7d      float64 `json:"fees_7d" parquet:"fees_7d"`
	Fees30d     float64 `json:"fees_30d" parquet:"fees_30d"`
	Revenue24h  float64 `json:"revenue_24h" parquet:"revenue_24h"`
	Revenue7d   float64 `json:"revenue_7d" parquet:"revenue_7d"`
	Revenue30d  float64 `json:"revenue_30d" parquet:"revenue_30d"`
}

// Header returns CSV column names. The TVL column is chain-qualified
// (TVL_on_Ethereum) so per-chain tables stay self-describing.
func (r SummaryRow) Header() []string {
	return []string{
		"Protocol", "Slug", "TVL_on_" + strings.ReplaceAll(r.Chain, " ", "_"),
		"Volume_24h", "Volume_7d", "Volume_30d", "Volume_Total",
		"Fees_24h", "Fees_7d", "Fees_30d",
		"Revenue_24h", "Revenue_7d", "Revenue_30d",
	}
}

// Record returns the CSV field values in Header order.
func (r SummaryRow) Record() []string {
	return []string{
		r.Protocol, r.Slug, floatStr(r.TVL),
		floatStr(r.Volume24h), floatStr(r.Volume7d), floatStr(r.Volume30d), floatStr(r.VolumeTotal),
		floatStr(r.Fees24h), floatStr(r.Fees7d), floatStr(r.Fees30d),
		floatStr(r.Revenue24h), floatStr(r.Revenue7d), floatStr(r.Revenue30d),
	}
}

// LendingRow is the summary line of a lending run. Borrows and market counts
// are not exposed by the catalog endpoints, so deposits mirror TVL.
type LendingRow struct {
	Protocol      string  `json:"protocol" parquet:"protocol"`
	Slug          string  `json:"slug" parquet:"slug"`
	TVL           float64 `json:"tvl" parquet:"tvl"`
	TVLOnChain    float64 `json:"tvl_on_chain" parquet:"tvl_on_chain"`
	TotalBorrows  float64 `json:"total_borrows" parquet:"total_borrows"`
	TotalDeposits float64 `json:"total_deposits" parquet:"total_deposits"`
	MarketsCount  int64   `json:"markets_count" parquet:"markets_count"`
}

func (r LendingRow) Header() []string {
	return []string{"Protocol", "Slug", "TVL", "TVL_on_Chain", "Total_Borrows", "Total_Deposits", "Markets_Count"}
}

func (r LendingRow) Record() []string {
	return []string{
		r.Protocol, r.Slug, floatStr(r.TVL), floatStr(r.TVLOnChain),
		floatStr(r.TotalBorrows), floatStr(r.TotalDeposits), strconv.FormatInt(r.MarketsCount, 10),
	}
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
