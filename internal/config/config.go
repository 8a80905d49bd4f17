// Package config provides configuration loading and structs for the Aimai server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/aimai/internal/fuzzy"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Search  SearchConfig  `yaml:"search"`
	Engine  EngineConfig  `yaml:"engine"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatasetConfig points at the record file and names the fields to search.
type DatasetConfig struct {
	Path string   `yaml:"path"`
	Keys []string `yaml:"keys"`
}

// SearchConfig holds the default search parameters applied when a request
// leaves them unset.
type SearchConfig struct {
	DefaultThreshold float64  `yaml:"default_threshold"`
	DefaultLimit     int      `yaml:"default_limit"`
	MaxLimit         int      `yaml:"max_limit"`
	Algorithms       []string `yaml:"algorithms"`
	Strategy         string   `yaml:"strategy"`
	Preset           string   `yaml:"preset"`
}

// EngineConfig toggles the engine's internal optimizations. Every field
// defaults to enabled when unset; they exist for debugging score anomalies.
type EngineConfig struct {
	BitParallelLevenshtein *bool `yaml:"bit_parallel_levenshtein"`
	SignatureFilter        *bool `yaml:"signature_filter"`
	TwoStageScoring        *bool `yaml:"two_stage_scoring"`
	PrefixSuffixTrimming   *bool `yaml:"prefix_suffix_trimming"`
	ExactMatchShortCircuit *bool `yaml:"exact_match_short_circuit"`
}

// WatchConfig holds dataset file watch settings.
type WatchConfig struct {
	Enabled        *bool `yaml:"enabled"`
	DebounceMillis int   `yaml:"debounce_millis"`
}

// EnabledOrDefault returns whether to watch the dataset; defaults to true
// when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Options converts the engine toggles into fuzzy engine options.
func (e *EngineConfig) Options() []fuzzy.Option {
	var opts []fuzzy.Option
	if e.BitParallelLevenshtein != nil {
		opts = append(opts, fuzzy.WithBitParallelLevenshtein(*e.BitParallelLevenshtein))
	}
	if e.SignatureFilter != nil {
		opts = append(opts, fuzzy.WithSignatureFilter(*e.SignatureFilter))
	}
	if e.TwoStageScoring != nil {
		opts = append(opts, fuzzy.WithTwoStageScoring(*e.TwoStageScoring))
	}
	if e.PrefixSuffixTrimming != nil {
		opts = append(opts, fuzzy.WithPrefixSuffixTrimming(*e.PrefixSuffixTrimming))
	}
	if e.ExactMatchShortCircuit != nil {
		opts = append(opts, fuzzy.WithExactMatchShortCircuit(*e.ExactMatchShortCircuit))
	}
	return opts
}

// SearchOptions resolves the configured defaults into engine search options.
// A configured preset wins over an explicit algorithm list.
func (s *SearchConfig) SearchOptions() (*fuzzy.SearchOptions, error) {
	opts := &fuzzy.SearchOptions{
		Threshold: s.DefaultThreshold,
		Limit:     s.DefaultLimit,
	}
	if s.Preset != "" {
		p, err := fuzzy.ParsePreset(s.Preset)
		if err != nil {
			return nil, err
		}
		opts.Algorithms = p.Algorithms
		opts.Strategy = p.Strategy
		return opts, nil
	}
	for _, name := range s.Algorithms {
		alg, err := fuzzy.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		opts.Algorithms = append(opts.Algorithms, alg)
	}
	strategy, err := fuzzy.ParseStrategy(s.Strategy)
	if err != nil {
		return nil, err
	}
	opts.Strategy = strategy
	return opts, nil
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed, or if the
// search section names an unknown algorithm, strategy, or preset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if _, err := cfg.Search.SearchOptions(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	configDir := filepath.Dir(path)
	cfg.Dataset.Path = expandPath(cfg.Dataset.Path, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
