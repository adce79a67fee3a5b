package report

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"defi-data/internal/model"
)

// LoadPools reads every *_top_pools.json file in dir into one flat list.
// Unreadable files are logged and skipped.
func LoadPools(dir string) []model.Pool {
	paths, err := filepath.Glob(filepath.Join(dir, "*_top_pools.json"))
	if err != nil {
		slog.Warn("pool glob failed", "dir", dir, "error", err)
		return nil
	}
	var all []model.Pool
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("could not read pool file", "path", p, "error", err)
			continue
		}
		var pools []model.Pool
		if err := json.Unmarshal(data, &pools); err != nil {
			slog.Warn("could not parse pool file", "path", p, "error", err)
			continue
		}
		all = append(all, pools...)
	}
	return all
}
