// Package integration exercises the full path from dataset file to HTTP
// search response.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
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

const sampleDataset = `
- id: "1"
  name: Jon Smith
  email: jon.smith@gmail.com
- id: "2"
  name: Jane Doe
  email: jane.doe@example.org
- id: "3"
  name: John Smyth
  email: john.smyth@example.org
`

func setup(t *testing.T) (*config.Config, *fuzzy.Engine[models.Record]) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "records.yaml")
	if err := os.WriteFile(path, []byte(sampleDataset), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Dataset: config.DatasetConfig{Path: path, Keys: []string{"name", "email"}},
	}
	config.ApplyDefaults(cfg)
	cfg.Dataset.Keys = []string{"name", "email"}

	records, err := dataset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	engine := fuzzy.NewEngine(dataset.Keys(cfg.Dataset.Keys), cfg.Engine.Options()...)
	engine.AddAll(records)
	return cfg, engine
}

func TestIntegration_SearchOverHTTP(t *testing.T) {
	cfg, engine := setup(t)
	srv := server.NewServer(engine, cfg, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body, _ := json.Marshal(map[string]any{"query": "jon smit", "threshold": 0.5})
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
	if out.Total < 1 {
		t.Fatalf("expected at least 1 result, got %d", out.Total)
	}
	if out.Results[0].Record.ID() != "1" {
		t.Errorf("expected Jon Smith first, got %v", out.Results[0].Record)
	}
}

func TestIntegration_PresetTypo(t *testing.T) {
	cfg, engine := setup(t)
	srv := server.NewServer(engine, cfg, zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body, _ := json.Marshal(map[string]any{"query": "Jnoh Smyth", "preset": "typo"})
	resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total < 1 || out.Results[0].Record.ID() != "3" {
		t.Errorf("expected John Smyth via the typo preset, got %+v", out)
	}
}

func TestIntegration_DatasetReloadSwapsResults(t *testing.T) {
	cfg, engine := setup(t)
	srv := server.NewServer(engine, cfg, zap.NewNop(), metrics.New(prometheus.NewRegistry()))

	// Simulate the watcher callback: rewrite the file, rebuild, swap.
	replacement := "- id: \"9\"\n  name: Alice Brown\n  email: alice@example.org\n"
	if err := os.WriteFile(cfg.Dataset.Path, []byte(replacement), 0600); err != nil {
		t.Fatal(err)
	}
	records, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		t.Fatal(err)
	}
	reloaded := fuzzy.NewEngine(dataset.Keys(cfg.Dataset.Keys))
	reloaded.AddAll(records)
	srv.SetEngine(reloaded)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body, _ := json.Marshal(map[string]string{"query": "Alice Brown"})
	resp, err := http.Post(ts.URL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 1 || out.Results[0].Record.ID() != "9" {
		t.Errorf("expected the reloaded dataset to serve, got %+v", out)
	}
}
