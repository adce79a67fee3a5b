package collect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"defi-data/internal/extract"
	"defi-data/internal/model"
	"defi-data/internal/saver"
)

// CollectLending runs one lending collection pass. An empty run.Chain means
// the cross-chain aggregate run: no chain filter, per-protocol TVL is the
// aggregate figure. Lending runs fetch TVL only; the volume and fee
// summaries do not apply to lending protocols.
func (c *Collector) CollectLending(run Run) error {
	matched, err := c.selectProtocols(run)
	if err != nil || len(matched) == 0 {
		return err
	}
	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	listName := "lending_protocols_list.json"
	if run.Chain != "" {
		listName = run.Chain + "_" + listName
	}
	if err := saver.WriteJSON(filepath.Join(run.OutputDir, listName), matched); err != nil {
		return fmt.Errorf("write protocol list: %w", err)
	}

	report := newRunReport(run.Chain)
	var rows []model.LendingRow
	for i, p := range matched {
		if i > 0 {
			time.Sleep(run.Delay)
		}
		if p.Slug == "" {
			continue
		}
		slog.Info("processing protocol", "chain", run.Chain, "protocol", p.Name, "n", i+1, "total", len(matched))
		row, err := c.processLendingProtocol(run, p)
		if err != nil {
			slog.Error("protocol dropped", "slug", p.Slug, "error", err)
			report.addFailure(p.Slug, err)
			continue
		}
		rows = append(rows, row)
		report.addSuccess(p.Slug)
	}

	if len(rows) > 0 {
		name := "lending_protocols_summary." + c.lendingSaver.Extension()
		if run.Chain != "" {
			name = run.Chain + "_" + name
		}
		path := filepath.Join(run.OutputDir, name)
		if err := c.lendingSaver.Save(rows, path); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		slog.Info("summary saved", "path", path, "rows", len(rows))
	}
	report.write(run.OutputDir)
	return nil
}

func (c *Collector) processLendingProtocol(run Run, p model.Protocol) (model.LendingRow, error) {
	row := model.LendingRow{Protocol: p.Name, Slug: p.Slug}

	detail, err := c.client.ProtocolDetail(p.Slug)
	if err != nil {
		slog.Warn("no detail data", "slug", p.Slug, "error", err)
	} else if err := saver.WriteJSON(filepath.Join(run.OutputDir, p.Slug+"_tvl.json"), detail); err != nil {
		return row, fmt.Errorf("write tvl document: %w", err)
	}

	total := extract.TVL(detail, extract.TVLRules("", nil))
	logDegraded(p.Slug, "tvl", total)
	row.TVL = total.Value
	row.TVLOnChain = total.Value
	if run.Chain != "" {
		onChain := extract.TVL(detail, extract.TVLRules(run.Chain, run.ChainAliases))
		logDegraded(p.Slug, "tvl_on_chain", onChain)
		row.TVLOnChain = onChain.Value
	}
	// Borrow and market breakdowns are not in the catalog endpoints; TVL
	// stands in for deposits.
	row.TotalDeposits = row.TVLOnChain
	return row, nil
}
