package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"defi-data/internal/model"
)

func dexSelector(chain string, aliases ...string) Selector {
	return Selector{
		Chain:         chain,
		ChainAliases:  aliases,
		CategoryTerms: []string{"dexes", "dex", "exchange"},
	}
}

func TestFilterMatchesCategoryAndChain(t *testing.T) {
	protocols := []model.Protocol{
		{Slug: "uni", Category: "Dexes", Chains: []string{"Ethereum", "Polygon"}},
		{Slug: "lend", Category: "Lending", Chains: []string{"Ethereum"}},
		{Slug: "cex", Category: "Exchange", Chains: []string{"Solana"}},
		{Slug: "sushi", Category: "dexes", Chains: []string{"ethereum"}},
		{Slug: "empty", Category: "", Chains: []string{"Ethereum"}},
		{Slug: "nochain", Category: "Dexes", Chains: nil},
	}
	matched := Filter(protocols, dexSelector("Ethereum"))

	slugs := make([]string, len(matched))
	for i, p := range matched {
		slugs[i] = p.Slug
	}
	// both conditions must hold, order preserved
	assert.Equal(t, []string{"uni", "sushi"}, slugs)
}

func TestFilterIffProperty(t *testing.T) {
	protocols := []model.Protocol{
		{Slug: "a", Category: "Dexes", Chains: []string{"Ethereum"}},
		{Slug: "b", Category: "Derivatives", Chains: []string{"Ethereum"}},
		{Slug: "c", Category: "Dexes", Chains: []string{"Solana"}},
	}
	sel := dexSelector("Ethereum")
	matched := Filter(protocols, sel)
	inResult := make(map[string]bool)
	for _, p := range matched {
		inResult[p.Slug] = true
	}
	for _, p := range protocols {
		assert.Equal(t, sel.Match(p), inResult[p.Slug], "slug %s", p.Slug)
	}
}

func TestFilterChainAliases(t *testing.T) {
	protocols := []model.Protocol{
		{Slug: "cake", Category: "Dexes", Chains: []string{"BNB Chain"}},
		{Slug: "bin", Category: "Dexes", Chains: []string{"Binance"}},
		{Slug: "uni", Category: "Dexes", Chains: []string{"Ethereum"}},
	}
	matched := Filter(protocols, dexSelector("BSC", "bsc", "binance", "bnb chain", "bnb"))
	assert.Len(t, matched, 2)
	assert.Equal(t, "cake", matched[0].Slug)
	assert.Equal(t, "bin", matched[1].Slug)
}

func TestFilterEmptyChainMatchesAll(t *testing.T) {
	protocols := []model.Protocol{
		{Slug: "a", Category: "Lending", Chains: []string{"Ethereum"}},
		{Slug: "b", Category: "Lending", Chains: []string{"Solana"}},
		{Slug: "c", Category: "Dexes", Chains: []string{"Solana"}},
	}
	sel := Selector{CategoryTerms: []string{"lending"}}
	matched := Filter(protocols, sel)
	assert.Len(t, matched, 2)
}

func TestMatchChainName(t *testing.T) {
	sel := dexSelector("BSC", "bsc", "binance")
	assert.True(t, sel.MatchChainName("bsc"))
	assert.True(t, sel.MatchChainName("Binance"))
	assert.False(t, sel.MatchChainName("Ethereum"))

	exact := dexSelector("Ethereum")
	assert.True(t, exact.MatchChainName("ethereum"))
	assert.False(t, exact.MatchChainName("Ethereum Classic"))
}
