// Package catalog selects protocols from the DeFiLlama catalog snapshot.
package catalog

import (
	"strings"

	"defi-data/internal/model"
)

// Selector describes which protocols a run cares about. CategoryTerms are
// matched as case-insensitive substrings of the protocol category; Chain is
// matched case-insensitively against the protocol's chain list, with
// ChainAliases as additional substring candidates (BNB Chain, binance, ...).
// An empty Chain matches every protocol of a matching category.
type Selector struct {
	Chain         string
	ChainAliases  []string
	CategoryTerms []string
}

// Filter returns the protocols matching sel, preserving catalog order.
func Filter(protocols []model.Protocol, sel Selector) []model.Protocol {
	var matched []model.Protocol
	for _, p := range protocols {
		if sel.Match(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Match reports whether one protocol satisfies the selector.
func (s Selector) Match(p model.Protocol) bool {
	return s.matchCategory(p.Category) && s.matchChain(p.Chains)
}

func (s Selector) matchCategory(category string) bool {
	category = strings.ToLower(category)
	for _, term := range s.CategoryTerms {
		if strings.Contains(category, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func (s Selector) matchChain(chains []string) bool {
	if s.Chain == "" {
		return true
	}
	target := strings.ToLower(s.Chain)
	for _, chain := range chains {
		chain = strings.ToLower(chain)
		if chain == target {
			return true
		}
		for _, alias := range s.ChainAliases {
			if strings.Contains(chain, strings.ToLower(alias)) {
				return true
			}
		}
	}
	return false
}

// MatchChainName reports whether a single chain label (e.g. a pool's chain
// field) refers to the selector's target chain.
func (s Selector) MatchChainName(chain string) bool {
	if s.Chain == "" {
		return true
	}
	chain = strings.ToLower(chain)
	if chain == strings.ToLower(s.Chain) {
		return true
	}
	for _, alias := range s.ChainAliases {
		if strings.Contains(chain, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}
