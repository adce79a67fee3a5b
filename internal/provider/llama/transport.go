package llama

import (
	"net/http"
	"time"
)

// baseTransportConfig returns the shared HTTP transport configuration used by DeFiLlama clients.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   2,
	}
}

// newHTTPClient creates an HTTP client configured for DeFiLlama requests.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: baseTransportConfig(),
		Timeout:   30 * time.Second,
	}
}
