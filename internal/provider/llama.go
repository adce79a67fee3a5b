package provider

import (
	"defi-data/internal/provider/llama"
)

// LlamaProvider is a DataProvider implementation backed by the DeFiLlama API.
// It embeds *llama.Client to expose fetch capabilities with minimal boilerplate.
type LlamaProvider struct {
	*llama.Client
}

var _ DataProvider = (*LlamaProvider)(nil)

// NewLlamaProvider creates a new DeFiLlama-backed DataProvider.
func NewLlamaProvider(apiBase, yieldsBase string) *LlamaProvider {
	return &LlamaProvider{
		Client: llama.NewClientWithBaseURLs(apiBase, yieldsBase),
	}
}

// GetName returns provider name
func (p *LlamaProvider) GetName() string {
	return "DeFiLlama"
}
