package model

// Pool is one liquidity pool from the yields catalog (yields.llama.fi/pools).
// Dùng chung cho collect, saver và report (json serialization).
type Pool struct {
	PoolID  string  `json:"pool"`
	Project string  `json:"project"`
	Chain   string  `json:"chain"`
	Symbol  string  `json:"symbol,omitempty"`
	TVLUSD  float64 `json:"tvlUsd"`
	APY     float64 `json:"apy,omitempty"`
}

// PoolsResponse is the envelope of the yields /pools endpoint.
type PoolsResponse struct {
	Status string `json:"status,omitempty"`
	Data   []Pool `json:"data"`
}
