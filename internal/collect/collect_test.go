package collect

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defi-data/internal/model"
	"defi-data/internal/provider/llama"
	"defi-data/internal/report"
)

// testAPI fakes the catalog, detail, summary and pools endpoints on one mux.
type testAPI struct {
	detailStatus int
}

func (a testAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeBody := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
	mux.HandleFunc("/protocols", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `[{"name":"Foo","slug":"foo","category":"Dexes","chains":["Ethereum"]}]`)
	})
	mux.HandleFunc("/protocol/foo", func(w http.ResponseWriter, r *http.Request) {
		if a.detailStatus != 0 {
			http.Error(w, "boom", a.detailStatus)
			return
		}
		writeBody(w, `{"currentChainTvls":{"Ethereum":100},"tvl":50}`)
	})
	mux.HandleFunc("/summary/dexs/foo", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"total24h":10,"total7d":50,"total30d":200,"totalVolume":1000}`)
	})
	mux.HandleFunc("/summary/fees/foo", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"total24h":2,"total7d":9,"total30d":31,"totalRevenue24h":1,"revenue24h":99}`)
	})
	mux.HandleFunc("/pools", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, `{"status":"success","data":[
			{"pool":"p1","project":"foo","chain":"Ethereum","symbol":"FOO-ETH","tvlUsd":123},
			{"pool":"p2","project":"foo","chain":"Solana","symbol":"FOO-SOL","tvlUsd":999},
			{"pool":"p3","project":"bar","chain":"Ethereum","symbol":"BAR-ETH","tvlUsd":777}
		]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCollector(t *testing.T, srv *httptest.Server) *Collector {
	t.Helper()
	client := llama.NewClientWithBaseURLs(srv.URL, srv.URL)
	t.Cleanup(func() { _ = client.Close() })
	c, err := New(client, "csv")
	require.NoError(t, err)
	return c
}

func dexRun(dir string) Run {
	return Run{
		Chain:         "Ethereum",
		CategoryTerms: []string{"dexes", "dex", "exchange"},
		OutputDir:     dir,
		Limit:         5,
		TopPools:      20,
	}
}

func TestCollectDEXEndToEnd(t *testing.T) {
	srv := testAPI{}.server(t)
	c := newTestCollector(t, srv)
	dir := t.TempDir()

	require.NoError(t, c.CollectDEX(dexRun(dir)))

	rows, err := report.LoadSummary(filepath.Join(dir, "Ethereum_protocols_summary.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Foo", row.Protocol)
	assert.Equal(t, "foo", row.Slug)
	// chain-specific TVL wins over the aggregate
	assert.Equal(t, 100.0, row.TVL)
	assert.Equal(t, 10.0, row.Volume24h)
	assert.Equal(t, 50.0, row.Volume7d)
	assert.Equal(t, 200.0, row.Volume30d)
	assert.Equal(t, 1000.0, row.VolumeTotal)
	assert.Equal(t, 2.0, row.Fees24h)
	// totalRevenue24h preferred over revenue24h
	assert.Equal(t, 1.0, row.Revenue24h)

	for _, name := range []string{
		"Ethereum_protocols_list.json",
		"foo_tvl.json", "foo_volumes.json", "foo_fees.json", "foo_top_pools.json",
		".lastrun.json",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	// only the protocol's pools on the target chain, sorted by TVL
	pools := report.LoadPools(dir)
	require.Len(t, pools, 1)
	assert.Equal(t, "p1", pools[0].PoolID)
}

func TestCollectDEXDetailFailureDegradesTVL(t *testing.T) {
	srv := testAPI{detailStatus: http.StatusInternalServerError}.server(t)
	c := newTestCollector(t, srv)
	dir := t.TempDir()

	require.NoError(t, c.CollectDEX(dexRun(dir)))

	rows, err := report.LoadSummary(filepath.Join(dir, "Ethereum_protocols_summary.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// the protocol still appears, TVL degraded to zero, other metrics intact
	assert.Zero(t, rows[0].TVL)
	assert.Equal(t, 10.0, rows[0].Volume24h)
	assert.NoFileExists(t, filepath.Join(dir, "foo_tvl.json"))
}

func TestCollectDEXIdempotent(t *testing.T) {
	srv := testAPI{}.server(t)
	c := newTestCollector(t, srv)
	dir := t.TempDir()

	require.NoError(t, c.CollectDEX(dexRun(dir)))
	first := snapshotDataFiles(t, dir)
	require.NoError(t, c.CollectDEX(dexRun(dir)))
	second := snapshotDataFiles(t, dir)

	assert.Equal(t, first, second)
}

// snapshotDataFiles reads every data file in dir. The run report carries a
// run id and timestamps, so it is excluded.
func snapshotDataFiles(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || e.Name() == ".lastrun.json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)
	}
	require.NotEmpty(t, files)
	return files
}

func TestCollectDEXFallbackList(t *testing.T) {
	srv := testAPI{}.server(t)
	c := newTestCollector(t, srv)
	dir := t.TempDir()

	run := dexRun(dir)
	run.Chain = "BSC" // nothing in the catalog is on BSC
	run.ChainAliases = []string{"bsc", "binance"}
	run.Fallback = []model.Protocol{{Name: "Foo", Slug: "foo"}}

	require.NoError(t, c.CollectDEX(run))
	assert.FileExists(t, filepath.Join(dir, "BSC_protocols_summary.csv"))
}

func TestCollectLending(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/protocols", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Lendy","slug":"lendy","category":"Lending","chains":["Ethereum","Solana"]}]`))
	})
	mux.HandleFunc("/protocol/lendy", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"currentChainTvls":{"Ethereum":40,"Solana":60},
			"tvl":[{"date":1,"totalLiquidityUSD":90},{"date":2,"totalLiquidityUSD":100}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newTestCollector(t, srv)

	// cross-chain aggregate run
	aggDir := t.TempDir()
	require.NoError(t, c.CollectLending(Run{
		CategoryTerms: []string{"lending"},
		OutputDir:     aggDir,
		Limit:         5,
	}))
	assert.FileExists(t, filepath.Join(aggDir, "lending_protocols_list.json"))
	agg := readCSV(t, filepath.Join(aggDir, "lending_protocols_summary.csv"))
	require.Len(t, agg, 2)
	// aggregate TVL comes from the last history point
	assert.Equal(t, []string{"Lendy", "lendy", "100", "100", "0", "100", "0"}, agg[1])

	// per-chain run
	chainDir := t.TempDir()
	require.NoError(t, c.CollectLending(Run{
		Chain:         "Ethereum",
		CategoryTerms: []string{"lending"},
		OutputDir:     chainDir,
		Limit:         5,
	}))
	rows := readCSV(t, filepath.Join(chainDir, "Ethereum_lending_protocols_summary.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "100", rows[1][2]) // total TVL
	assert.Equal(t, "40", rows[1][3])  // TVL on Ethereum
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
