package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"defi-data/internal/app"
	"defi-data/internal/report"
	"defi-data/internal/slogx"
)

// dexCmd collects DEX protocol metrics for the configured chains.
type dexCmd struct {
	chain string
}

func (*dexCmd) Name() string     { return "dex" }
func (*dexCmd) Synopsis() string { return "collect DEX protocol metrics per chain" }
func (*dexCmd) Usage() string {
	return `dex [-chain name]:
  Fetch DEX protocols from the catalog for each configured chain, collect
  TVL/volume/fee/revenue metrics and write per-chain summaries.
`
}

func (c *dexCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.chain, "chain", "", "collect a single chain instead of the configured list")
}

func (c *dexCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer a.Provider.Close()
	slog.SetDefault(slogx.NewDefault(a.Config.LogLevel))
	slog.Info("using data provider", "provider", a.Provider.GetName())

	chains := a.Config.Chains
	if c.chain != "" {
		chains = []string{c.chain}
	}
	slog.Info("collecting DEX metrics", "chains", chains, "format", a.Config.SaveFormat, "dir", a.Config.DataDir)

	app.RunFlow(a.Config, func() {
		for _, chain := range chains {
			if err := a.Collector.CollectDEX(a.Config.DEXRun(chain)); err != nil {
				slog.Error("chain run failed", "chain", chain, "error", err)
			}
		}
	})
	return subcommands.ExitSuccess
}

// lendingCmd collects lending protocol TVL, aggregate first and then per chain.
type lendingCmd struct {
	chain string
}

func (*lendingCmd) Name() string     { return "lending" }
func (*lendingCmd) Synopsis() string { return "collect lending protocol TVL" }
func (*lendingCmd) Usage() string {
	return `lending [-chain name]:
  Fetch lending protocols from the catalog, collect TVL for the cross-chain
  aggregate and for each configured chain.
`
}

func (c *lendingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.chain, "chain", "", "collect a single chain (skips the aggregate run)")
}

func (c *lendingCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer a.Provider.Close()
	slog.SetDefault(slogx.NewDefault(a.Config.LogLevel))

	chains := a.Config.Chains
	if c.chain != "" {
		chains = []string{c.chain}
	} else {
		// The aggregate pass runs first, as chain "".
		chains = append([]string{""}, chains...)
	}
	for _, chain := range chains {
		if err := a.Collector.CollectLending(a.Config.LendingRun(chain)); err != nil {
			slog.Error("lending run failed", "chain", chain, "error", err)
		}
	}
	return subcommands.ExitSuccess
}

// reportCmd renders charts from persisted summaries.
type reportCmd struct {
	chain string
	topN  int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render charts from collected summaries" }
func (*reportCmd) Usage() string {
	return `report [-chain name] [-top n]:
  Read persisted summary tables and pool files, render PNG comparison
  charts into each chain directory.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.chain, "chain", "", "report a single chain instead of the configured list")
	f.IntVar(&c.topN, "top", 10, "number of protocols per ranked chart")
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return subcommands.ExitFailure
	}
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel))

	chains := cfg.Chains
	if c.chain != "" {
		chains = []string{c.chain}
	}
	status := subcommands.ExitSuccess
	for _, chain := range chains {
		if err := report.Generate(cfg.ChainDir(chain), chain, c.topN); err != nil {
			slog.Error("report failed", "chain", chain, "error", err)
			status = subcommands.ExitFailure
		}
	}
	return status
}
