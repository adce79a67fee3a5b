package model

// Protocol is one entry of the DeFiLlama protocol catalog (/protocols).
// Identity is the slug; the catalog snapshot is immutable for a run.
type Protocol struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Symbol   string   `json:"symbol,omitempty"`
	URL      string   `json:"url,omitempty"`
	Category string   `json:"category"`
	Chains   []string `json:"chains"`
	TVL      float64  `json:"tvl,omitempty"`
}
