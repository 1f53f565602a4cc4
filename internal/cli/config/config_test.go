package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// rootFlags mirrors the persistent flags registered by the root command.
func rootFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("shopdash", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("api-url", "", "")
	fs.String("api-token", "", "")
	fs.Duration("api-timeout", 0, "")
	fs.String("locale", "", "")
	fs.String("translations", "", "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	want := Default()
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreFields(Config{}, "ProjectRoot")); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shopdash.yaml"), `
api:
  url: https://shop.example.com/graphql/
  token: secret
  timeout: 3s
ui:
  port: 9000
  auto_open: false
  session_secret: from-file
i18n:
  locale: pl
  dir: translations
log:
  level: debug
  format: json
`)
	// Found by searching upward from a subdirectory
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/graphql/", cfg.API.URL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.False(t, cfg.UI.AutoOpen)
	assert.True(t, cfg.UI.Watch, "unset keys keep their defaults")
	assert.Equal(t, "from-file", cfg.UI.SessionSecret)
	assert.Equal(t, "pl", cfg.I18n.Locale)
	assert.Equal(t, filepath.Join(dir, "translations"), cfg.I18n.Dir, "relative dirs resolve against the project root")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "shopdash.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "shopdash.yml")
	writeFile(t, cfgFile, `
api:
  url: https://file.example.com/graphql/
  token: file-token
  timeout: 3s
log:
  level: warn
`)

	t.Setenv("SHOPDASH_API_URL", "https://env.example.com/graphql/")
	t.Setenv("SHOPDASH_API_TIMEOUT", "7s")
	t.Setenv("SHOPDASH_UI_SESSION_SECRET", "env-secret")
	t.Setenv("SHOPDASH_VERBOSE", "true")

	flags := rootFlags()
	require.NoError(t, flags.Parse([]string{
		"--api-url", "https://flag.example.com/graphql/",
		"--locale", "de",
		"-o", "json",
	}))

	cfg, err := LoadConfig(cfgFile, flags)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com/graphql/", cfg.API.URL, "flags beat env")
	assert.Equal(t, 7*time.Second, cfg.API.Timeout, "env beats file")
	assert.Equal(t, "file-token", cfg.API.Token, "file beats defaults")
	assert.Equal(t, "env-secret", cfg.UI.SessionSecret, "section keys may contain underscores")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "de", cfg.I18n.Locale)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_UnsetFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("SHOPDASH_LOG_LEVEL", "error")

	flags := rootFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "shopdash.yaml"), "verbose: false\n")
	writeFile(t, filepath.Join(dir, ".env"), "SHOPDASH_API_TOKEN=dotenv-token\nSHOPDASH_UI_PORT=9100\n")

	require.NoError(t, os.Unsetenv("SHOPDASH_API_TOKEN"))
	t.Setenv("SHOPDASH_UI_PORT", "9200")
	t.Cleanup(func() { _ = os.Unsetenv("SHOPDASH_API_TOKEN") })

	cfg, err := LoadConfig(filepath.Join(dir, "shopdash.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, "dotenv-token", cfg.API.Token)
	assert.Equal(t, 9200, cfg.UI.Port, "real environment wins over .env")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("SHOPDASH_API_TIMEOUT", "soon")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to decode config")
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		sep  string
		want string
	}{
		{"API_URL", "_", "api.url"},
		{"UI_SESSION_SECRET", "_", "ui.session_secret"},
		{"UI_AUTO_OPEN", "_", "ui.auto_open"},
		{"VERBOSE", "_", "verbose"},
		{"I18N_DIR", "_", "i18n.dir"},
		{"log-level", "-", "log.level"},
		{"api-timeout", "-", "api.timeout"},
		{"no-browser", "-", "no_browser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyFor(tt.name, tt.sep))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.API.URL = "" },
			wantErr: []string{"api.url is required"},
		},
		{
			name:    "relative url",
			mutate:  func(c *Config) { c.API.URL = "/graphql/" },
			wantErr: []string{"absolute http(s) URL"},
		},
		{
			name: "every problem is reported",
			mutate: func(c *Config) {
				c.API.Timeout = 0
				c.UI.Port = 70000
				c.I18n.Locale = "not a locale"
				c.Log.Level = "loud"
				c.Log.Format = "xml"
				c.OutputFormat = "yaml"
			},
			wantErr: []string{"api.timeout", "ui.port", "i18n.locale", "log.level", "log.format", "output format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json format at configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"}, false)

		logger.Info("hidden")
		logger.Warn("shown", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, LogConfig{Level: "error", Format: "text"}, true)

		logger.Debug("details")
		assert.Contains(t, buf.String(), "msg=details")
	})
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "info"}, false)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
