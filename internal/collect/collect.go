// Package collect runs the per-chain collection pipeline: filter the protocol
// catalog, fetch per-protocol metrics, persist raw documents and the summary
// table.
package collect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"defi-data/internal/catalog"
	"defi-data/internal/extract"
	"defi-data/internal/model"
	"defi-data/internal/provider/llama"
	"defi-data/internal/saver"
)

// Run describes one collection pass over a single chain. It is built by the
// caller from configuration; the collector holds no chain state of its own.
type Run struct {
	Chain         string
	ChainAliases  []string
	CategoryTerms []string
	OutputDir     string
	Limit         int           // max protocols per run, 0 = no limit
	TopPools      int           // pools kept per protocol
	Delay         time.Duration // pause between protocols, API courtesy
	Fallback      []model.Protocol
}

func (r Run) selector() catalog.Selector {
	return catalog.Selector{
		Chain:         r.Chain,
		ChainAliases:  r.ChainAliases,
		CategoryTerms: r.CategoryTerms,
	}
}

// Collector drives runs against a DeFiLlama client and persists results
// through the configured table saver. Protocols are processed strictly
// sequentially; a failure in one protocol drops it from the summary and the
// run continues.
type Collector struct {
	client       *llama.Client
	summarySaver saver.TableSaver[model.SummaryRow]
	lendingSaver saver.TableSaver[model.LendingRow]
}

// New creates a Collector. Returns an error if format is not a supported
// table format (csv, json, parquet).
func New(client *llama.Client, format string) (*Collector, error) {
	ss := saver.NewTableSaver[model.SummaryRow](format)
	ls := saver.NewTableSaver[model.LendingRow](format)
	if ss == nil || ls == nil {
		return nil, fmt.Errorf("unsupported save format %q (use: csv, json, parquet)", format)
	}
	return &Collector{client: client, summarySaver: ss, lendingSaver: ls}, nil
}

// CollectDEX runs one DEX collection pass for run.Chain.
func (c *Collector) CollectDEX(run Run) error {
	matched, err := c.selectProtocols(run)
	if err != nil || len(matched) == 0 {
		return err
	}
	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	listPath := filepath.Join(run.OutputDir, run.Chain+"_protocols_list.json")
	if err := saver.WriteJSON(listPath, matched); err != nil {
		return fmt.Errorf("write protocol list: %w", err)
	}

	// One pools fetch per run; every protocol filters the same snapshot.
	pools, err := c.client.Pools()
	if err != nil {
		slog.Warn("no pool data for this run", "chain", run.Chain, "error", err)
		pools = nil
	}

	report := newRunReport(run.Chain)
	sel := run.selector()
	var rows []model.SummaryRow
	for i, p := range matched {
		if i > 0 {
			time.Sleep(run.Delay)
		}
		if p.Slug == "" {
			continue
		}
		slog.Info("processing protocol", "chain", run.Chain, "protocol", p.Name, "n", i+1, "total", len(matched))
		row, err := c.processProtocol(run, sel, p, pools)
		if err != nil {
			slog.Error("protocol dropped", "slug", p.Slug, "error", err)
			report.addFailure(p.Slug, err)
			continue
		}
		rows = append(rows, row)
		report.addSuccess(p.Slug)
	}

	if len(rows) > 0 {
		path := filepath.Join(run.OutputDir, run.Chain+"_protocols_summary."+c.summarySaver.Extension())
		if err := c.summarySaver.Save(rows, path); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		slog.Info("summary saved", "path", path, "rows", len(rows))
	}
	report.write(run.OutputDir)
	return nil
}

// selectProtocols fetches the catalog and applies the run's selector, limit
// and fallback list.
func (c *Collector) selectProtocols(run Run) ([]model.Protocol, error) {
	protocols, err := c.client.Protocols()
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	matched := catalog.Filter(protocols, run.selector())
	if len(matched) == 0 && len(run.Fallback) > 0 {
		slog.Info("no catalog match, using fallback list", "chain", run.Chain, "protocols", len(run.Fallback))
		matched = run.Fallback
	}
	if run.Limit > 0 && len(matched) > run.Limit {
		matched = matched[:run.Limit]
	}
	if len(matched) == 0 {
		slog.Info("no protocols matched", "chain", run.Chain)
	} else {
		slog.Info("protocols selected", "chain", run.Chain, "count", len(matched))
	}
	return matched, nil
}

// processProtocol fetches all metric documents for one protocol, persists
// them, and builds the summary row. Endpoint failures degrade to zeros;
// only persistence failures drop the protocol.
func (c *Collector) processProtocol(run Run, sel catalog.Selector, p model.Protocol, pools []model.Pool) (model.SummaryRow, error) {
	row := model.SummaryRow{Protocol: p.Name, Slug: p.Slug, Chain: run.Chain}

	detail, err := c.client.ProtocolDetail(p.Slug)
	if err != nil {
		slog.Warn("no detail data", "slug", p.Slug, "error", err)
	} else if err := saver.WriteJSON(filepath.Join(run.OutputDir, p.Slug+"_tvl.json"), detail); err != nil {
		return row, fmt.Errorf("write tvl document: %w", err)
	}
	tvl := extract.TVL(detail, extract.TVLRules(run.Chain, run.ChainAliases))
	logDegraded(p.Slug, "tvl", tvl)
	row.TVL = tvl.Value

	volumes, err := c.client.VolumeSummary(p.Slug)
	if err != nil {
		slog.Warn("no volume data", "slug", p.Slug, "error", err)
	} else if err := saver.WriteJSON(filepath.Join(run.OutputDir, p.Slug+"_volumes.json"), volumes); err != nil {
		return row, fmt.Errorf("write volume document: %w", err)
	}
	row.Volume24h = c.field(p.Slug, "volume_24h", volumes, "total24h")
	row.Volume7d = c.field(p.Slug, "volume_7d", volumes, "total7d")
	row.Volume30d = c.field(p.Slug, "volume_30d", volumes, "total30d")
	row.VolumeTotal = c.field(p.Slug, "volume_total", volumes, "totalVolume")

	fees, err := c.client.FeeSummary(p.Slug)
	if err != nil {
		slog.Warn("no fee data", "slug", p.Slug, "error", err)
	} else if err := saver.WriteJSON(filepath.Join(run.OutputDir, p.Slug+"_fees.json"), fees); err != nil {
		return row, fmt.Errorf("write fee document: %w", err)
	}
	row.Fees24h = c.field(p.Slug, "fees_24h", fees, "total24h")
	row.Fees7d = c.field(p.Slug, "fees_7d", fees, "total7d")
	row.Fees30d = c.field(p.Slug, "fees_30d", fees, "total30d")
	row.Revenue24h = c.field(p.Slug, "revenue_24h", fees, "totalRevenue24h", "revenue24h")
	row.Revenue7d = c.field(p.Slug, "revenue_7d", fees, "totalRevenue7d", "revenue7d")
	row.Revenue30d = c.field(p.Slug, "revenue_30d", fees, "totalRevenue30d", "revenue30d")

	top := TopPools(pools, p.Slug, sel, run.TopPools)
	if len(top) > 0 {
		if err := saver.WriteJSON(filepath.Join(run.OutputDir, p.Slug+"_top_pools.json"), top); err != nil {
			return row, fmt.Errorf("write pools document: %w", err)
		}
	}
	return row, nil
}

func (c *Collector) field(slug, metric string, doc map[string]any, keys ...string) float64 {
	res := extract.Field(doc, keys...)
	logDegraded(slug, metric, res)
	return res.Value
}

func logDegraded(slug, metric string, res extract.Result) {
	if res.Degraded {
		slog.Debug("metric degraded to zero", "slug", slug, "metric", metric, "reason", res.Reason)
	}
}
