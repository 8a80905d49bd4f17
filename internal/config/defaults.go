package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = "/usr/local/var/aimai/data/records.yaml"
	}
	if len(cfg.Dataset.Keys) == 0 {
		cfg.Dataset.Keys = []string{"name"}
	}
	if cfg.Search.DefaultThreshold == 0 {
		cfg.Search.DefaultThreshold = 0.4
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if len(cfg.Search.Algorithms) == 0 && cfg.Search.Preset == "" {
		cfg.Search.Algorithms = []string{"levenshtein"}
	}
	if cfg.Watch.DebounceMillis == 0 {
		cfg.Watch.DebounceMillis = 400
	}
}
