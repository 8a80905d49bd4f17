// Package main is the Aimai CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/aimai/internal/cli"
	"github.com/hyperjump/aimai/internal/config"
	"github.com/hyperjump/aimai/internal/dataset"
	"github.com/hyperjump/aimai/internal/fuzzy"
	"github.com/hyperjump/aimai/internal/models"
	"github.com/hyperjump/aimai/internal/server"
	"github.com/hyperjump/aimai/internal/watcher"
	"github.com/hyperjump/aimai/pkg/metrics"
	"github.com/hyperjump/aimai/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/aimai/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("aimai version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildEngine loads the dataset and constructs a ready-to-search engine.
func buildEngine(cfg *config.Config) (*fuzzy.Engine[models.Record], error) {
	records, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	engine := fuzzy.NewEngine(dataset.Keys(cfg.Dataset.Keys), cfg.Engine.Options()...)
	engine.AddAll(records)
	return engine, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (dataset reloads, search requests, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	engine, err := buildEngine(cfg)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("dataset loaded",
		zap.String("path", cfg.Dataset.Path),
		zap.Int("records", engine.Len()),
	)

	m := metrics.New(nil)
	m.RecordsLoaded.Set(float64(engine.Len()))
	srv := server.NewServer(engine, cfg, logger, m)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if cfg.Watch.EnabledOrDefault() {
		watchOpts := []watcher.WatcherOption{
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond),
		}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(cfg.Dataset.Path, func(path string) {
			reloaded, err := buildEngine(cfg)
			if err != nil {
				logger.Warn("dataset reload failed", zap.String("path", path), zap.Error(err))
				m.DatasetReloadsTotal.WithLabelValues("error").Inc()
				return
			}
			srv.SetEngine(reloaded)
			m.DatasetReloadsTotal.WithLabelValues("ok").Inc()
			logger.Info("dataset reloaded", zap.String("path", path), zap.Int("records", reloaded.Len()))
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
	}

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage and matching hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: aimai search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Scores are normalized distances: 0 is exact, lower is closer. --threshold
keeps only results at or below the given distance.
  • Use --preset typo for misspellings and transposed characters.
  • Use --preset partial for substring and fragment matches.
  • Use --preset hybrid for the best of both.
  • Or pick algorithms directly: --algorithms levenshtein,jaro-winkler --strategy min

Examples:
  aimai search jon smith
  aimai search "jon smith"                        # same as above
  aimai search --preset typo recieve
  aimai search --algorithms smith-waterman gmail
  aimai search --threshold 0.6 --limit 20 your query
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// splitAlgorithms parses a comma-separated algorithm list flag value.
func splitAlgorithms(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument, so "aimai search query
// -threshold 0.5" would otherwise leave -threshold unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the dataset directly)")
	threshold := fs.Float64("threshold", -1, "maximum normalized distance (default from config)")
	limit := fs.Int("limit", 0, "number of results (default from config)")
	algorithms := fs.String("algorithms", "", "comma-separated algorithm list")
	strategy := fs.String("strategy", "", "score combination strategy: min or average")
	preset := fs.String("preset", "", "algorithm preset: typo, partial, or hybrid")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
		format = cli.OutputText
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	request := &models.SearchRequest{
		Query:      queryStr,
		Limit:      *limit,
		Algorithms: splitAlgorithms(*algorithms),
		Strategy:   *strategy,
		Preset:     *preset,
	}
	if *threshold >= 0 {
		request.Threshold = threshold
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct dataset access (when server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	opts, err := cfg.Search.SearchOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid search config: %v\n", err)
		os.Exit(1)
	}
	if request.Threshold != nil {
		opts.Threshold = *request.Threshold
	}
	if request.Limit > 0 {
		opts.Limit = request.Limit
	}
	if request.Preset != "" {
		p, err := fuzzy.ParsePreset(request.Preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		opts.Algorithms = p.Algorithms
		opts.Strategy = p.Strategy
	} else if len(request.Algorithms) > 0 {
		algs := make([]fuzzy.Algorithm, 0, len(request.Algorithms))
		for _, name := range request.Algorithms {
			alg, err := fuzzy.ParseAlgorithm(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			algs = append(algs, alg)
		}
		opts.Algorithms = algs
	}
	if request.Strategy != "" {
		s, err := fuzzy.ParseStrategy(request.Strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		opts.Strategy = s
	}

	start := time.Now()
	hits := engine.Search(queryStr, opts)
	elapsed := time.Since(start)

	results := make([]*models.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = &models.SearchResult{Record: hit.Item, Score: hit.Score, Rank: i + 1}
	}
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: elapsed.Milliseconds(),
		Query:     queryStr,
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, request *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Records int            `json:"records"`
	Loaded  bool           `json:"loaded"`
	Config  map[string]any `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = load the dataset directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		records, err := dataset.Load(cfg.Dataset.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load dataset: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Records: len(records),
			Loaded:  true,
			Config: map[string]any{
				"dataset_path":      cfg.Dataset.Path,
				"keys":              cfg.Dataset.Keys,
				"default_threshold": cfg.Search.DefaultThreshold,
				"default_limit":     cfg.Search.DefaultLimit,
				"max_limit":         cfg.Search.MaxLimit,
			},
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("records:  %d   # count of searchable records\n", status.Records)
		fmt.Printf("loaded:   %t\n", status.Loaded)
		if status.Config != nil {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"dataset_path", "keys", "default_threshold", "default_limit", "max_limit"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-18s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`aimai - In-process fuzzy record search

Usage:
  aimai server [flags]            Start the HTTP server
  aimai search [flags] <query>    Search the dataset
  aimai status [flags]            Show dataset/server status
  aimai version                   Show version
  aimai help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/aimai/config.yaml)
  --debug            Enable debug logging (dataset reloads, search requests, etc.)

Search Flags:
  --config string       Config file path (for direct dataset mode)
  --server string       Server URL (default: http://localhost:8080). Use empty (--server "") to load the dataset directly.
  --threshold float     Maximum normalized distance, 0 to 1 (default from config)
  --limit int           Number of results (default from config)
  --algorithms string   Comma-separated list: levenshtein, damerau-levenshtein, smith-waterman, needleman-wunsch, jaro-winkler, hamming
  --strategy string     Score combination strategy: min or average
  --preset string       Algorithm preset: typo, partial, or hybrid
  --output string       Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for direct dataset mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct dataset access.
  --output string    Output format: text or json (default: text)

Examples:
  aimai server
  aimai search "jon smith"
  aimai search --preset typo recieve
  aimai search --output json query    # structured JSON for other apps
  aimai status --output json`)
}
