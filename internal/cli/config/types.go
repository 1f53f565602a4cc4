// Package config loads shopdash settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import "time"

// Default configuration values.
const (
	DefaultAPIURL     = "http://localhost:8000/graphql/"
	DefaultAPITimeout = 10 * time.Second
	DefaultPort       = 8765
	DefaultLocale     = "en"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "SHOPDASH_"

// ConfigFileNames are looked up, in order, in the project root.
var ConfigFileNames = []string{"shopdash.yaml", "shopdash.yml"}

// Config holds all CLI configuration options.
type Config struct {
	API          APIConfig  `koanf:"api"`
	UI           UIConfig   `koanf:"ui"`
	I18n         I18nConfig `koanf:"i18n"`
	Log          LogConfig  `koanf:"log"`
	Verbose      bool       `koanf:"verbose"`
	OutputFormat string     `koanf:"output"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory. Relative paths are resolved against it.
	ProjectRoot string `koanf:"-"`
}

// APIConfig describes the GraphQL endpoint.
type APIConfig struct {
	URL     string        `koanf:"url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// I18nConfig selects the fallback language and extra translation files.
type I18nConfig struct {
	Locale string `koanf:"locale"`
	Dir    string `koanf:"dir"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: DefaultAPITimeout,
		},
		UI: UIConfig{
			Port:     DefaultPort,
			AutoOpen: true,
			Watch:    true,
		},
		I18n:         I18nConfig{Locale: DefaultLocale},
		Log:          LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		OutputFormat: DefaultOutput,
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"api.url":      d.API.URL,
		"api.timeout":  d.API.Timeout,
		"ui.port":      d.UI.Port,
		"ui.auto_open": d.UI.AutoOpen,
		"ui.watch":     d.UI.Watch,
		"i18n.locale":  d.I18n.Locale,
		"log.level":    d.Log.Level,
		"log.format":   d.Log.Format,
		"verbose":      false,
		"output":       d.OutputFormat,
	}
}
