package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.Run.MaxPollAttempts)
	assert.Equal(t, time.Second, cfg.Run.PollInterval())
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.False(t, cfg.Speech.Enabled)
}

func TestLoadFrom(t *testing.T) {
	t.Setenv("TEST_RECEPTIONIST_KEY", "sk-test-123")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api_key: ${TEST_RECEPTIONIST_KEY}
assistant_id: asst_abc
run:
  max_poll_attempts: 10
  poll_interval_ms: 250
speech:
  enabled: true
  voice: alloy
server:
  port: 8080
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.APIKey)
	assert.Equal(t, "asst_abc", cfg.AssistantID)
	assert.Equal(t, 10, cfg.Run.MaxPollAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Run.PollInterval())
	assert.True(t, cfg.Speech.Enabled)
	assert.Equal(t, "alloy", cfg.Speech.Voice)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("RECEPTIONIST_ASSISTANT_ID", "asst_env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "asst_env", cfg.AssistantID)
	// Zeroed poll settings fall back to defaults.
	assert.Equal(t, 30, cfg.Run.MaxPollAttempts)
	assert.Equal(t, time.Second, cfg.Run.PollInterval())
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
