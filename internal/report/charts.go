package report

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"defi-data/internal/model"
)

const barWidth = vg.Length(18)

// Generate renders every chart for one chain directory. The summary CSV must
// exist (run a collection first); missing pool files only skip the pool chart.
func Generate(dir, chain string, topN int) error {
	summaryPath := filepath.Join(dir, chain+"_protocols_summary.csv")
	rows, err := LoadSummary(summaryPath)
	if err != nil {
		return fmt.Errorf("load summary (run a collection first): %w", err)
	}
	slog.Info("loaded summary", "chain", chain, "protocols", len(rows))

	if err := TopTVLChart(rows, topN, filepath.Join(dir, "top_protocols_by_tvl.png")); err != nil {
		return err
	}
	if err := VolumeComparisonChart(rows, topN, filepath.Join(dir, "volume_comparison.png")); err != nil {
		return err
	}
	if err := FeeRatioChart(rows, filepath.Join(dir, "fee_to_volume_ratio.png")); err != nil {
		return err
	}
	pools := LoadPools(dir)
	if len(pools) == 0 {
		slog.Info("no pool files, skipping pool chart", "dir", dir)
		return nil
	}
	return TopPoolsChart(pools, 20, filepath.Join(dir, "top_pools_by_tvl.png"))
}

// TopTVLChart renders the top-n protocols ranked by TVL.
func TopTVLChart(rows []model.SummaryRow, n int, path string) error {
	rows = topBy(rows, n, func(r model.SummaryRow) float64 { return r.TVL })
	if len(rows) == 0 {
		slog.Info("no rows for TVL chart")
		return nil
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d protocols by TVL (USD)", len(rows))
	p.Y.Label.Text = "TVL (USD)"

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.TVL
		names[i] = r.Protocol
	}
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	return save(p, path)
}

// VolumeComparisonChart renders grouped 24h/7d/30d volume bars for the top-n
// protocols by 24h volume.
func VolumeComparisonChart(rows []model.SummaryRow, n int, path string) error {
	rows = topBy(rows, n, func(r model.SummaryRow) float64 { return r.Volume24h })
	if len(rows) == 0 {
		slog.Info("no rows for volume chart")
		return nil
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trading volume comparison, top %d protocols", len(rows))
	p.Y.Label.Text = "Volume (USD)"
	p.Legend.Top = true

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Protocol
	}
	horizons := []struct {
		label string
		pick  func(model.SummaryRow) float64
	}{
		{"24h", func(r model.SummaryRow) float64 { return r.Volume24h }},
		{"7d", func(r model.SummaryRow) float64 { return r.Volume7d }},
		{"30d", func(r model.SummaryRow) float64 { return r.Volume30d }},
	}
	for i, h := range horizons {
		values := make(plotter.Values, len(rows))
		for j, r := range rows {
			values[j] = h.pick(r)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(i-1) * barWidth
		p.Add(bars)
		p.Legend.Add(h.label, bars)
	}
	p.NominalX(names...)
	return save(p, path)
}

// FeeRatioChart renders fees as a percentage of 24h volume. Protocols with
// no 24h volume are excluded.
func FeeRatioChart(rows []model.SummaryRow, path string) error {
	type ratio struct {
		name string
		pct  float64
	}
	var ratios []ratio
	for _, r := range rows {
		if r.Volume24h > 0 {
			ratios = append(ratios, ratio{r.Protocol, r.Fees24h / r.Volume24h * 100})
		}
	}
	if len(ratios) == 0 {
		slog.Info("no rows with volume for fee ratio chart")
		return nil
	}
	sort.SliceStable(ratios, func(i, j int) bool { return ratios[i].pct < ratios[j].pct })
	if len(ratios) > 15 {
		ratios = ratios[:15]
	}

	p := plot.New()
	p.Title.Text = "Fees as percentage of 24h trading volume"
	p.Y.Label.Text = "Fee percentage (%)"

	values := make(plotter.Values, len(ratios))
	names := make([]string, len(ratios))
	for i, r := range ratios {
		values[i] = r.pct
		names[i] = r.name
	}
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(2)
	p.Add(bars)
	p.NominalX(names...)
	return save(p, path)
}

// TopPoolsChart renders the top-n liquidity pools by TVL across protocols.
func TopPoolsChart(pools []model.Pool, n int, path string) error {
	sort.SliceStable(pools, func(i, j int) bool { return pools[i].TVLUSD > pools[j].TVLUSD })
	if n > 0 && len(pools) > n {
		pools = pools[:n]
	}
	if len(pools) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d liquidity pools by TVL (USD)", len(pools))
	p.Y.Label.Text = "TVL (USD)"

	values := make(plotter.Values, len(pools))
	names := make([]string, len(pools))
	for i, pool := range pools {
		values[i] = pool.TVLUSD
		names[i] = poolLabel(pool)
	}
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(3)
	p.Add(bars)
	p.NominalX(names...)
	return save(p, path)
}

func poolLabel(p model.Pool) string {
	if p.Symbol != "" {
		return p.Project + " " + p.Symbol
	}
	return p.PoolID
}

func topBy(rows []model.SummaryRow, n int, key func(model.SummaryRow) float64) []model.SummaryRow {
	sorted := make([]model.SummaryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return key(sorted[i]) > key(sorted[j]) })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	slog.Info("chart saved", "path", path)
	return nil
}
