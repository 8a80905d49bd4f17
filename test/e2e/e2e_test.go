package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hyperjump/aimai/internal/config"
	"github.com/hyperjump/aimai/internal/dataset"
	"github.com/hyperjump/aimai/internal/fuzzy"
	"github.com/hyperjump/aimai/internal/models"
	"github.com/hyperjump/aimai/internal/server"
	"github.com/hyperjump/aimai/pkg/metrics"
)

const e2eSearchLimit = 30

func startServer(t *testing.T, records []models.Record) *httptest.Server {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Dataset.Keys = []string{"name", "email"}

	engine := fuzzy.NewEngine(dataset.Keys(cfg.Dataset.Keys))
	engine.AddAll(records)

	srv := server.NewServer(engine, cfg, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestE2E_SearchReturnsCorrectResults(t *testing.T) {
	corpus := BuildCorpus()
	ts := startServer(t, corpus.Records)

	for _, tc := range corpus.TestCases {
		t.Run(tc.Description, func(t *testing.T) {
			payload := map[string]any{
				"query": tc.Query,
				"limit": e2eSearchLimit,
			}
			if tc.Preset != "" {
				payload["preset"] = tc.Preset
			}
			if tc.Threshold > 0 {
				payload["threshold"] = tc.Threshold
			}
			body, _ := json.Marshal(payload)
			resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status: got %d", resp.StatusCode)
			}

			var out models.SearchResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}

			got := make(map[string]bool, len(out.Results))
			for _, r := range out.Results {
				got[r.Record.ID()] = true
			}
			found := false
			for _, id := range tc.ExpectedIDs {
				if got[id] {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("query %q: expected one of %v in results, got %d results", tc.Query, tc.ExpectedIDs, out.Total)
			}
		})
	}
}

func TestE2E_ScoresAreOrderedAndBounded(t *testing.T) {
	corpus := BuildCorpus()
	ts := startServer(t, corpus.Records)

	body, _ := json.Marshal(map[string]any{"query": "jonathn smith", "limit": e2eSearchLimit, "threshold": 0.6})
	resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total == 0 {
		t.Fatal("expected results for a near-miss query")
	}
	for i, r := range out.Results {
		if r.Score < 0 || r.Score > 0.6 {
			t.Errorf("result %d score %v outside [0, threshold]", i, r.Score)
		}
		if i > 0 && r.Score < out.Results[i-1].Score {
			t.Errorf("results not sorted ascending at %d", i)
		}
		if r.Rank != i+1 {
			t.Errorf("result %d rank = %d", i, r.Rank)
		}
	}
}

func TestE2E_BatchSearch(t *testing.T) {
	corpus := BuildCorpus()
	ts := startServer(t, corpus.Records)

	queries := make([]string, 0, len(corpus.TestCases))
	for _, tc := range corpus.TestCases {
		if tc.Preset == "" && tc.Threshold == 0 {
			queries = append(queries, tc.Query)
		}
	}
	body, _ := json.Marshal(map[string]any{"queries": queries, "limit": e2eSearchLimit})
	resp, err := http.Post(ts.URL+"/api/v1/search/batch", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}

	var out struct {
		Responses []*models.SearchResponse `json:"responses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Responses) != len(queries) {
		t.Fatalf("expected %d responses, got %d", len(queries), len(out.Responses))
	}
	for i, r := range out.Responses {
		if r.Query != queries[i] {
			t.Errorf("response %d echoes %q, want %q", i, r.Query, queries[i])
		}
	}
}
