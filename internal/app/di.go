package app

import (
	"defi-data/internal/collect"
	"defi-data/internal/provider"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideProvider creates the DeFiLlama-backed provider from config (for Wire).
// Caller must call p.Close() when shutting down.
func ProvideProvider(cfg *Config) *provider.LlamaProvider {
	return provider.NewLlamaProvider(cfg.APIBaseURL, cfg.YieldsBaseURL)
}

// ProvideCollector creates the Collector wired to the provider's client and
// the configured table format (for Wire).
func ProvideCollector(cfg *Config, p *provider.LlamaProvider) (*collect.Collector, error) {
	return collect.New(p.Client, cfg.SaveFormat)
}
