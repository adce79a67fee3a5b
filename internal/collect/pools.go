package collect

import (
	"sort"
	"strings"

	"defi-data/internal/catalog"
	"defi-data/internal/model"
)

// TopPools returns the pools belonging to slug on the selector's chain,
// sorted by TVL descending, limited to n. Input order breaks ties.
func TopPools(pools []model.Pool, slug string, sel catalog.Selector, n int) []model.Pool {
	var out []model.Pool
	for _, p := range pools {
		if strings.EqualFold(p.Project, slug) && sel.MatchChainName(p.Chain) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TVLUSD > out[j].TVLUSD })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
