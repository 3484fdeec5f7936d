package config

import "path/filepath"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".careerbot.yml"

// DefaultCacheDir is where the sqlite cache lives unless configured.
const DefaultCacheDir = ".careerbot"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "2m",
		},
		Format: FormatConfig{
			Truncation: TruncateDeclared,
		},
		Serve: ServeConfig{
			Port: 8080,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(DefaultCacheDir, "cache.db"),
		},
		Log: LogConfig{
			Level: LogInfo,
		},
	}
}
