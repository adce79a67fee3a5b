// Package llama is a thin client for the public DeFiLlama HTTP API.
package llama

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"defi-data/internal/model"
)

const (
	// DefaultAPIBaseURL serves the protocol catalog, details and summaries.
	DefaultAPIBaseURL = "https://api.llama.fi"
	// DefaultYieldsBaseURL serves the yield-pool catalog.
	DefaultYieldsBaseURL = "https://yields.llama.fi"
)

// Client issues plain GET requests against the DeFiLlama endpoints. No auth,
// no retry: one attempt per call, failures are reported to the caller which
// treats them as "no data" for that protocol.
type Client struct {
	apiBase    string
	yieldsBase string
	client     *http.Client
}

// NewClient constructs a Client against the public DeFiLlama endpoints.
func NewClient() *Client {
	return NewClientWithBaseURLs(DefaultAPIBaseURL, DefaultYieldsBaseURL)
}

// NewClientWithBaseURLs constructs a Client against custom base URLs
// (used by tests to point at local servers).
func NewClientWithBaseURLs(apiBase, yieldsBase string) *Client {
	return &Client{
		apiBase:    apiBase,
		yieldsBase: yieldsBase,
		client:     newHTTPClient(),
	}
}

// Close closes idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Protocols fetches the full protocol catalog.
func (c *Client) Protocols() ([]model.Protocol, error) {
	var protocols []model.Protocol
	if err := c.getJSON(c.apiBase+"/protocols", &protocols); err != nil {
		return nil, fmt.Errorf("fetch protocols: %w", err)
	}
	return protocols, nil
}

// ProtocolDetail fetches the detail document for one protocol. The response
// shape varies per protocol (currentChainTvls map, tvl scalar or history
// list), so it is decoded into a generic document for the extraction rules.
func (c *Client) ProtocolDetail(slug string) (map[string]any, error) {
	var doc map[string]any
	if err := c.getJSON(c.apiBase+"/protocol/"+url.PathEscape(slug), &doc); err != nil {
		return nil, fmt.Errorf("fetch protocol %s: %w", slug, err)
	}
	return doc, nil
}

// VolumeSummary fetches the DEX volume summary for one protocol.
func (c *Client) VolumeSummary(slug string) (map[string]any, error) {
	u, err := url.Parse(c.apiBase + "/summary/dexs/" + url.PathEscape(slug))
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	q := u.Query()
	q.Set("excludeTotalDataChart", "true")
	q.Set("excludeTotalDataChartBreakdown", "true")
	q.Set("dataType", "dailyVolume")
	u.RawQuery = q.Encode()

	var doc map[string]any
	if err := c.getJSON(u.String(), &doc); err != nil {
		return nil, fmt.Errorf("fetch volumes %s: %w", slug, err)
	}
	return doc, nil
}

// FeeSummary fetches the fee and revenue summary for one protocol.
func (c *Client) FeeSummary(slug string) (map[string]any, error) {
	var doc map[string]any
	if err := c.getJSON(c.apiBase+"/summary/fees/"+url.PathEscape(slug), &doc); err != nil {
		return nil, fmt.Errorf("fetch fees %s: %w", slug, err)
	}
	return doc, nil
}

// Pools fetches the global yield-pool catalog.
func (c *Client) Pools() ([]model.Pool, error) {
	var resp model.PoolsResponse
	if err := c.getJSON(c.yieldsBase+"/pools", &resp); err != nil {
		return nil, fmt.Errorf("fetch pools: %w", err)
	}
	return resp.Data, nil
}

// getJSON runs one GET and decodes the body into out. Non-200 statuses are
// logged with the body and returned as errors; there is no retry.
func (c *Client) getJSON(rawURL string, out any) error {
	resp, err := c.client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Warn("API request failed", "url", rawURL, "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("API status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}
