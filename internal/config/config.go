package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	AssetsDir string `toml:"assets_dir"`
	LogDir    string `toml:"log_dir"`
	StateDir  string `toml:"state_dir"`
}

// Gemini contains connection settings for the generative API.
type Gemini struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TextModel      string `toml:"text_model"`
	ImageModel     string `toml:"image_model"`
	TTSModel       string `toml:"tts_model"`
	VideoModel     string `toml:"video_model"`
	Voice          string `toml:"voice"`
	AspectRatio    string `toml:"aspect_ratio"`
	ThinkingBudget int    `toml:"thinking_budget"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Retry contains the backoff policy applied to remote calls.
type Retry struct {
	MaxAttempts int `toml:"max_attempts"`
	BaseDelayMS int `toml:"base_delay_ms"`
	MaxDelayMS  int `toml:"max_delay_ms"`
	JitterMS    int `toml:"jitter_ms"`
	// RetryAllErrors widens the retry scope from rate-limit errors only to any
	// transport or service error. Decode failures are never retried.
	RetryAllErrors bool `toml:"retry_all_errors"`
}

// Limiter contains the shared token bucket applied across concurrent operations.
type Limiter struct {
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

// Poller contains timing for long-running media operations.
type Poller struct {
	IntervalSeconds int `toml:"interval_seconds"`
	TimeoutSeconds  int `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Studio contains defaults for content generation operations.
type Studio struct {
	DefaultPlatform string `toml:"default_platform"`
	ConceptCount    int    `toml:"concept_count"`
	PlanWeeks       int    `toml:"plan_weeks"`
}

// Config encapsulates all configuration values for Reelsmith.
//
// Configuration sections by subsystem:
//   - Paths: asset, log, and state directories
//   - Gemini: generative API connection, models, and media settings
//   - Retry: backoff policy for remote calls
//   - Limiter: shared request rate coordination across operations
//   - Poller: long-running video job polling interval and budget
//   - Logging: log format and level
//   - Studio: per-operation generation defaults
type Config struct {
	Paths   Paths   `toml:"paths"`
	Gemini  Gemini  `toml:"gemini"`
	Retry   Retry   `toml:"retry"`
	Limiter Limiter `toml:"limiter"`
	Poller  Poller  `toml:"poller"`
	Logging Logging `toml:"logging"`
	Studio  Studio  `toml:"studio"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/reelsmith/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ExpandPath resolves ~ prefixes and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}

// EnsureDirectories creates the directories the application writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.AssetsDir, c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}
