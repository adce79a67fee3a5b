package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTVLChainSpecificWinsOverAggregate(t *testing.T) {
	doc := map[string]any{
		"currentChainTvls": map[string]any{"Ethereum": 100.0},
		"tvl":              50.0,
	}
	res := TVL(doc, TVLRules("Ethereum", nil))
	assert.Equal(t, 100.0, res.Value)
	assert.Equal(t, "currentChainTvls", res.Source)
	assert.False(t, res.Degraded)
}

func TestTVLChainMatchIsCaseInsensitive(t *testing.T) {
	doc := map[string]any{
		"currentChainTvls": map[string]any{"ethereum": 77.0},
	}
	res := TVL(doc, TVLRules("Ethereum", nil))
	assert.Equal(t, 77.0, res.Value)
}

func TestTVLAliasMatchesBySubstring(t *testing.T) {
	doc := map[string]any{
		"currentChainTvls": map[string]any{"BNB Chain": 250.0},
	}
	aliases := []string{"bsc", "binance", "bnb chain", "bnb"}
	res := TVL(doc, TVLRules("BSC", aliases))
	assert.Equal(t, 250.0, res.Value)
}

func TestTVLZeroChainValueFallsBackToAggregate(t *testing.T) {
	doc := map[string]any{
		"currentChainTvls": map[string]any{"Ethereum": 0.0},
		"tvl":              42.0,
	}
	res := TVL(doc, TVLRules("Ethereum", nil))
	assert.Equal(t, 42.0, res.Value)
	assert.Equal(t, "tvl", res.Source)
}

func TestTVLAggregateHistoryTakesLastPoint(t *testing.T) {
	doc := map[string]any{
		"tvl": []any{
			map[string]any{"date": 1.0, "totalLiquidityUSD": 10.0},
			map[string]any{"date": 2.0, "totalLiquidityUSD": 20.0},
			map[string]any{"date": 3.0, "totalLiquidityUSD": 30.0},
		},
	}
	res := TVL(doc, TVLRules("Ethereum", nil))
	assert.Equal(t, 30.0, res.Value)
}

func TestTVLAggregateScalar(t *testing.T) {
	doc := map[string]any{"tvl": 12.5}
	res := TVL(doc, TVLRules("", nil))
	assert.Equal(t, 12.5, res.Value)
}

func TestTVLAggregateListOfNumbers(t *testing.T) {
	doc := map[string]any{"tvl": []any{1.0, 2.0, 3.0}}
	res := TVL(doc, TVLRules("", nil))
	assert.Equal(t, 3.0, res.Value)
}

func TestTVLNilDocDegrades(t *testing.T) {
	res := TVL(nil, TVLRules("Ethereum", nil))
	assert.Zero(t, res.Value)
	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Reason)
}

func TestTVLNoCandidateDegrades(t *testing.T) {
	doc := map[string]any{"name": "foo"}
	res := TVL(doc, TVLRules("Ethereum", nil))
	assert.Zero(t, res.Value)
	assert.True(t, res.Degraded)
}

func TestFieldFirstPresentKeyWins(t *testing.T) {
	doc := map[string]any{
		"totalRevenue24h": 5.0,
		"revenue24h":      99.0,
	}
	res := Field(doc, "totalRevenue24h", "revenue24h")
	assert.Equal(t, 5.0, res.Value)
	assert.Equal(t, "totalRevenue24h", res.Source)
}

func TestFieldFallsBackOnAbsence(t *testing.T) {
	doc := map[string]any{"revenue24h": 99.0}
	res := Field(doc, "totalRevenue24h", "revenue24h")
	assert.Equal(t, 99.0, res.Value)
	assert.Equal(t, "revenue24h", res.Source)
}

func TestFieldPresenceBeatsShape(t *testing.T) {
	// The preferred key is present but unusable: it still wins, degraded to 0.
	doc := map[string]any{
		"totalRevenue24h": "n/a",
		"revenue24h":      99.0,
	}
	res := Field(doc, "totalRevenue24h", "revenue24h")
	assert.Zero(t, res.Value)
}

func TestFieldMissingDegrades(t *testing.T) {
	res := Field(map[string]any{}, "total24h")
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Reason, "total24h")

	res = Field(nil, "total24h")
	assert.True(t, res.Degraded)
}
