// Package config loads the recognized options from ~/.wordwings/config.yaml,
// falling back to defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wordwings/wordwings/internal/difficulty"
)

// Config is the full configuration surface of the core.
type Config struct {
	Remote     RemoteConfig             `yaml:"remote"`
	Difficulty difficulty.Config        `yaml:"difficulty"`
	Mastery    difficulty.MasteryConfig `yaml:"mastery"`
	Match      MatchConfig              `yaml:"match"`
	Cache      CacheConfig              `yaml:"cache"`
	Sync       SyncConfig               `yaml:"sync"`
	LogLevel   string                   `yaml:"log_level"`
}

// RemoteConfig holds backend connection settings.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the bounded per-call timeout.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// MatchConfig holds answer-matching settings.
type MatchConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// CacheConfig holds content cache settings.
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TTL returns the cache time-to-live.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SyncConfig holds background drain settings.
type SyncConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// Interval returns how often the background drain runs.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Remote: RemoteConfig{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 5,
		},
		Difficulty: difficulty.DefaultConfig(),
		Mastery:    difficulty.DefaultMasteryConfig(),
		Match: MatchConfig{
			Threshold: 0.7,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
		Sync: SyncConfig{
			IntervalSeconds: 60,
		},
		LogLevel: "info",
	}
}

// Dir returns the path to ~/.wordwings.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".wordwings"), nil
}

// EnsureDir creates ~/.wordwings and its subdirectories if missing.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DBPath returns the path of the device-local SQLite database.
func DBPath(dir string) string {
	return filepath.Join(dir, "wordwings.db")
}

// Load reads config.yaml from ~/.wordwings, returning defaults when the
// file does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFromDir(dir)
}

// LoadFromDir reads config.yaml from an explicit directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
