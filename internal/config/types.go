package config

// Truncation names how a section's body ends when another section title
// follows it.
type Truncation string

const (
	TruncateDeclared Truncation = "declared"
	TruncateNearest  Truncation = "nearest"
)

// LogLevel is the minimum level written to stderr.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level careerbot configuration, corresponding to .careerbot.yml.
type Config struct {
	API    APIConfig    `yaml:"api" koanf:"api"`
	Format FormatConfig `yaml:"format" koanf:"format"`
	Serve  ServeConfig  `yaml:"serve" koanf:"serve"`
	Cache  CacheConfig  `yaml:"cache" koanf:"cache"`
	Log    LogConfig    `yaml:"log" koanf:"log"`
}

// APIConfig locates the career-advice server.
type APIConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// Timeout is a Go duration string; "0" disables the limit.
	Timeout string `yaml:"timeout" koanf:"timeout"`
	// SessionCookie is the value of the server's "session" cookie taken
	// from a logged-in browser.
	SessionCookie string `yaml:"session_cookie,omitempty" koanf:"session_cookie"`
}

// FormatConfig holds response formatter options.
type FormatConfig struct {
	Truncation Truncation `yaml:"truncation" koanf:"truncation"`
	Markdown   bool       `yaml:"markdown" koanf:"markdown"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// CacheConfig holds local cache settings.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level LogLevel `yaml:"level" koanf:"level"`
}
