package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsAreValid(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Feeds, 8)
	assert.Equal(t, 10, cfg.Aggregator.PerSourceLimit)
	assert.Equal(t, 20, cfg.Aggregator.BucketLimit)
	assert.Equal(t, 200, cfg.Aggregator.SummaryMaxLength)
	assert.Equal(t, 3, cfg.Aggregator.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Aggregator.Timeout())
	assert.Equal(t, time.Second, cfg.Aggregator.Backoff())
	assert.Equal(t, time.Second, cfg.Aggregator.Politeness())
	assert.Zero(t, cfg.Aggregator.Refresh())
	assert.Equal(t, "data/raw-news.json", cfg.Output.RawNews)
	assert.Equal(t, "data/smackdown-news.json", cfg.Output.SmackDownNews)
	assert.Equal(t, "data/tweets.json", cfg.Output.Posts)
	assert.Equal(t, "JesseRodPodcast", cfg.Social.Username)
	assert.Equal(t, 5, cfg.Social.MaxResults)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"logger": {"level": "debug"},
		"feeds": [{"name": "Fightful", "url": "https://www.fightful.com/rss.xml"}],
		"aggregator": {"bucket_limit": 5, "refresh_interval": "15m"},
		"social": {"username": "WWE"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv(BearerTokenEnv, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Len(t, cfg.Feeds, 1)
	assert.Equal(t, 5, cfg.Aggregator.BucketLimit)
	assert.Equal(t, 10, cfg.Aggregator.PerSourceLimit, "unset fields keep defaults")
	assert.Equal(t, 15*time.Minute, cfg.Aggregator.Refresh())
	assert.Equal(t, "WWE", cfg.Social.Username)
	assert.Equal(t, "secret", cfg.Social.BearerToken)
}

func TestLoad_TokenIgnoredInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"social": {"BearerToken": "from-file"}}`), 0o644))
	t.Setenv(BearerTokenEnv, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Social.BearerToken)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse JSON")
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, New().Feeds, cfg.Feeds)
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.json"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, New().Feeds, cfg.Feeds)
	assert.Equal(t, time.Second, cfg.Aggregator.Politeness())
	assert.Equal(t, 30*time.Minute, cfg.Aggregator.Refresh())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"no feeds", func(c *Config) { c.Feeds = nil }, "feeds must not be empty"},
		{"bad feed url", func(c *Config) { c.Feeds[0].URL = "not a url" }, "invalid url in feeds"},
		{"empty feed name", func(c *Config) { c.Feeds[0].Name = "" }, "feed name cannot be empty"},
		{"zero bucket", func(c *Config) { c.Aggregator.BucketLimit = 0 }, "bucket_limit"},
		{"zero retries", func(c *Config) { c.Aggregator.MaxRetries = 0 }, "max_retries"},
		{"bad timeout", func(c *Config) { c.Aggregator.RequestTimeout = "soon" }, "aggregator.request_timeout"},
		{"bad refresh", func(c *Config) { c.Aggregator.RefreshInterval = "-1m" }, "refresh_interval"},
		{"empty output", func(c *Config) { c.Output.Posts = "" }, "output paths"},
		{"empty username", func(c *Config) { c.Social.Username = "" }, "social.username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
