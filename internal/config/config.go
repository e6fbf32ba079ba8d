// Package config loads receptionist configuration from ~/.receptionist/config.yaml
// with environment variable expansion. Secrets normally arrive through the
// environment (or a .env file loaded at startup) rather than the YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	// OpenAI credentials and assistant selection
	APIKey      string `yaml:"api_key"`      // falls back to OPENAI_API_KEY
	AssistantID string `yaml:"assistant_id"` // falls back to RECEPTIONIST_ASSISTANT_ID
	Model       string `yaml:"model"`        // chat-completion model for the proxy

	// DataDir is where synthesized audio clips are written (~/.receptionist).
	DataDir string `yaml:"data_dir"`

	Run    RunConfig    `yaml:"run"`
	Speech SpeechConfig `yaml:"speech"`
	Server ServerConfig `yaml:"server"`
}

// RunConfig bounds the run polling loop.
type RunConfig struct {
	MaxPollAttempts int `yaml:"max_poll_attempts"` // status fetches before giving up
	PollIntervalMS  int `yaml:"poll_interval_ms"`  // delay before each fetch
}

// PollInterval returns the polling delay as a duration.
func (r RunConfig) PollInterval() time.Duration {
	return time.Duration(r.PollIntervalMS) * time.Millisecond
}

// SpeechConfig controls text-to-speech of bot replies.
type SpeechConfig struct {
	Enabled bool   `yaml:"enabled"`
	Voice   string `yaml:"voice"`
}

// ServerConfig configures the proxy server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:   "gpt-4",
		DataDir: DefaultDataDir(),
		Run: RunConfig{
			MaxPollAttempts: 30,
			PollIntervalMS:  1000,
		},
		Speech: SpeechConfig{
			Enabled: false,
			Voice:   "nova",
		},
		Server: ServerConfig{
			Port: 5000,
		},
	}
}

// DefaultDataDir returns the default data directory (~/.receptionist).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".receptionist"
	}
	return filepath.Join(home, ".receptionist")
}

// Load loads config from ~/.receptionist/config.yaml. A missing file is not
// an error; defaults plus environment variables apply.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(cfg.DataDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom loads config from a specific path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv expands ${VAR} references and fills credential fields from the
// environment when the YAML left them empty.
func (c *Config) applyEnv() {
	c.APIKey = os.ExpandEnv(c.APIKey)
	c.AssistantID = os.ExpandEnv(c.AssistantID)

	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.AssistantID == "" {
		c.AssistantID = os.Getenv("RECEPTIONIST_ASSISTANT_ID")
	}
	if c.Run.MaxPollAttempts <= 0 {
		c.Run.MaxPollAttempts = 30
	}
	if c.Run.PollIntervalMS <= 0 {
		c.Run.PollIntervalMS = 1000
	}
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o700)
}
