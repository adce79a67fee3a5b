package extract

import (
	"sort"
	"strings"
)

// TVLRule is one candidate way of pulling a current-TVL figure out of a
// protocol detail document. Rules run in order; the first non-zero hit wins.
type TVLRule struct {
	Name string
	Pick func(doc map[string]any) (float64, bool)
}

// TVLRules builds the fallback chain for one chain: the chain-specific entry
// of currentChainTvls (matched against the chain name and its aliases),
// then the protocol's aggregate tvl field.
func TVLRules(chain string, aliases []string) []TVLRule {
	keys := make([]string, 0, len(aliases)+1)
	if chain != "" {
		keys = append(keys, chain)
	}
	keys = append(keys, aliases...)
	return []TVLRule{
		{Name: "currentChainTvls", Pick: pickChainTVL(keys)},
		{Name: "tvl", Pick: pickAggregateTVL},
	}
}

// TVL evaluates rules against doc and returns a typed result. A nil doc
// (endpoint failure) and a chain with no usable candidate both degrade to 0.
func TVL(doc map[string]any, rules []TVLRule) Result {
	if doc == nil {
		return Zero("no detail document")
	}
	for _, r := range rules {
		if v, ok := r.Pick(doc); ok && v != 0 {
			return Result{Value: v, Source: r.Name}
		}
	}
	return Zero("no tvl candidate matched")
}

// pickChainTVL matches currentChainTvls keys case-insensitively against the
// chain name, or by substring against its aliases. Candidates are tried in
// order and map keys in sorted order, so the pick is deterministic.
func pickChainTVL(candidates []string) func(map[string]any) (float64, bool) {
	return func(doc map[string]any) (float64, bool) {
		chainTvls, ok := doc["currentChainTvls"].(map[string]any)
		if !ok {
			return 0, false
		}
		mapKeys := make([]string, 0, len(chainTvls))
		for k := range chainTvls {
			mapKeys = append(mapKeys, k)
		}
		sort.Strings(mapKeys)
		for i, cand := range candidates {
			cand = strings.ToLower(cand)
			for _, mk := range mapKeys {
				lower := strings.ToLower(mk)
				// first candidate is the exact chain name, the rest are aliases
				if (i == 0 && lower == cand) || (i > 0 && strings.Contains(lower, cand)) {
					return Numeric(chainTvls[mk]), true
				}
			}
		}
		return 0, false
	}
}

// pickAggregateTVL reads the aggregate tvl field: a list of historical points
// yields the last element's totalLiquidityUSD, a bare number yields itself.
func pickAggregateTVL(doc map[string]any) (float64, bool) {
	raw, ok := doc["tvl"]
	if !ok {
		return 0, false
	}
	if points, isList := raw.([]any); isList {
		if len(points) == 0 {
			return 0, false
		}
		last := points[len(points)-1]
		if record, isMap := last.(map[string]any); isMap {
			return Numeric(record["totalLiquidityUSD"]), true
		}
		return Numeric(last), true
	}
	return Numeric(raw), true
}

// Field reads the first key present in doc, normalized to a number. Presence
// decides the fallback (totalRevenue24h before revenue24h), not the value.
func Field(doc map[string]any, keys ...string) Result {
	if doc == nil {
		return Zero("no document")
	}
	for _, k := range keys {
		if v, ok := doc[k]; ok {
			return Result{Value: Numeric(v), Source: k}
		}
	}
	return Zero("missing: " + strings.Join(keys, ", "))
}
