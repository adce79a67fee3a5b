package collect

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type failedEntry struct {
	Slug   string `json:"slug"`
	Reason string `json:"reason"`
}

// runReport records what one run did: which protocols made it into the
// summary and which were dropped. Written as a dot-file next to the data.
type runReport struct {
	RunID      string        `json:"run_id"`
	Chain      string        `json:"chain,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Success    []string      `json:"success,omitempty"`
	Failed     []failedEntry `json:"failed,omitempty"`
}

func newRunReport(chain string) *runReport {
	return &runReport{
		RunID:     uuid.NewString(),
		Chain:     chain,
		StartedAt: time.Now().UTC(),
	}
}

func (r *runReport) addSuccess(slug string) {
	r.Success = append(r.Success, slug)
}

func (r *runReport) addFailure(slug string, err error) {
	r.Failed = append(r.Failed, failedEntry{Slug: slug, Reason: err.Error()})
}

func (r *runReport) write(dir string) {
	r.FinishedAt = time.Now().UTC()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		slog.Warn("could not marshal run report", "error", err)
		return
	}
	p := filepath.Join(dir, ".lastrun.json")
	if err := os.WriteFile(p, data, 0644); err != nil {
		slog.Warn("could not write run report", "path", p, "error", err)
		return
	}
	slog.Info("run report saved", "path", p, "success", len(r.Success), "failed", len(r.Failed))
}
