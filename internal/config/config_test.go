package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.hubapi.com", cfg.HubSpot.BaseURL)
	assert.InDelta(t, 8.0, cfg.HubSpot.RateRPS, 0.001)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 1200, cfg.Anthropic.MaxTokens)
	assert.Equal(t, 4000, cfg.Guide.MaxChars)
	assert.Equal(t, 2*time.Second, cfg.Batch.PacingInterval)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0 4 * * 1-5", cfg.Schedule.Cron)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
hubspot:
  token: test-token
  segment_id: "13121"
  rate_rps: 4
tracker:
  token: notion-token
  task_db: db-id
batch:
  pacing_interval: 5s
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.HubSpot.Token)
	assert.Equal(t, "13121", cfg.HubSpot.SegmentID)
	assert.InDelta(t, 4.0, cfg.HubSpot.RateRPS, 0.001)
	assert.True(t, cfg.Tracker.Configured())
	assert.Equal(t, 5*time.Second, cfg.Batch.PacingInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.HubSpot.Token = "tok"
	assert.Error(t, cfg.Validate())

	cfg.HubSpot.SegmentID = "13121"
	assert.NoError(t, cfg.Validate())

	cfg.Batch.PacingInterval = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestOptionalCollaborators(t *testing.T) {
	var tr TrackerConfig
	assert.False(t, tr.Configured())
	tr.Token = "tok"
	assert.False(t, tr.Configured())
	tr.TaskDB = "db"
	assert.True(t, tr.Configured())

	var ai AnthropicConfig
	assert.False(t, ai.Configured())
	ai.Key = "key"
	assert.True(t, ai.Configured())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
