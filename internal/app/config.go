package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"defi-data/internal/collect"
	"defi-data/internal/model"
	"defi-data/internal/provider/llama"
)

// Config holds application configuration from env. Chain lists, alias tables
// and category terms live here so runs can be built against injected values
// instead of package constants.
type Config struct {
	DataDir       string        `validate:"required"`
	Chains        []string      `validate:"min=1,dive,required"`
	SaveFormat    string        `validate:"oneof=csv json parquet"`
	LogLevel      string        // debug | info | warn | error
	ProtocolLimit int           `validate:"min=1"`
	TopPoolsLimit int           `validate:"min=1"`
	RequestDelay  time.Duration // pause between protocols
	APIBaseURL    string        `validate:"url"`
	YieldsBaseURL string        `validate:"url"`
	RunAt         string        // "HH:MM" UTC for the daily loop, empty = run once

	ChainAliases map[string][]string
	DEXTerms     []string
	LendingTerms []string
	FallbackDEXs map[string][]model.Protocol
}

// LoadConfig reads config from environment and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DataDir:       getEnv("DATA_DIR", "defillama_data"),
		Chains:        splitList(getEnv("CHAINS", "Ethereum,BSC,Solana,Arbitrum,Polygon,Berachain")),
		SaveFormat:    getEnv("SAVE_FORMAT", "csv"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ProtocolLimit: 5,
		TopPoolsLimit: 20,
		RequestDelay:  time.Second,
		APIBaseURL:    getEnv("LLAMA_API_URL", llama.DefaultAPIBaseURL),
		YieldsBaseURL: getEnv("LLAMA_YIELDS_URL", llama.DefaultYieldsBaseURL),
		RunAt:         os.Getenv("RUN_AT"),
		ChainAliases: map[string][]string{
			"BSC": {"bsc", "binance", "binancesmartchain", "bnb chain", "bnb"},
		},
		DEXTerms:     []string{"dexes", "dex", "exchange"},
		LendingTerms: []string{"lending"},
		FallbackDEXs: map[string][]model.Protocol{
			// Known BSC DEXes, used when the catalog filter comes back empty.
			"BSC": {
				{Name: "PancakeSwap", Slug: "pancakeswap"},
				{Name: "BiSwap", Slug: "biswap"},
				{Name: "MDEX", Slug: "mdex"},
				{Name: "BabySwap", Slug: "babyswap"},
				{Name: "ApeSwap", Slug: "apeswap"},
				{Name: "PancakeBunny", Slug: "pancakebunny"},
			},
		},
	}
	if v := os.Getenv("PROTOCOL_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProtocolLimit = n
		}
	}
	if v := os.Getenv("TOP_POOLS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopPoolsLimit = n
		}
	}
	if v := os.Getenv("REQUEST_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RequestDelay = time.Duration(n) * time.Millisecond
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ChainDir returns the output directory for one chain's DEX run.
func (c *Config) ChainDir(chain string) string {
	return filepath.Join(c.DataDir, chain)
}

// LendingDir returns the output directory for a lending run. An empty chain
// is the cross-chain aggregate run.
func (c *Config) LendingDir(chain string) string {
	if chain == "" {
		return filepath.Join(c.DataDir, "lending")
	}
	return filepath.Join(c.DataDir, "lending", chain)
}

// AliasesFor returns the alias spellings for a chain, if any.
func (c *Config) AliasesFor(chain string) []string {
	for name, aliases := range c.ChainAliases {
		if strings.EqualFold(name, chain) {
			return aliases
		}
	}
	return nil
}

// DEXRun builds the collect.Run for one chain's DEX pass.
func (c *Config) DEXRun(chain string) collect.Run {
	return collect.Run{
		Chain:         chain,
		ChainAliases:  c.AliasesFor(chain),
		CategoryTerms: c.DEXTerms,
		OutputDir:     c.ChainDir(chain),
		Limit:         c.ProtocolLimit,
		TopPools:      c.TopPoolsLimit,
		Delay:         c.RequestDelay,
		Fallback:      c.FallbackDEXs[chain],
	}
}

// LendingRun builds the collect.Run for one lending pass.
func (c *Config) LendingRun(chain string) collect.Run {
	return collect.Run{
		Chain:         chain,
		ChainAliases:  c.AliasesFor(chain),
		CategoryTerms: c.LendingTerms,
		OutputDir:     c.LendingDir(chain),
		Limit:         c.ProtocolLimit,
		Delay:         c.RequestDelay,
	}
}
