package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateRetry(); err != nil {
		return err
	}
	if err := c.validateLimiter(); err != nil {
		return err
	}
	if err := c.validatePoller(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelsmith/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GEMINI_API_KEY env var or edit %s (create with 'reelsmith config init')", defaultPath)
	}
	switch c.Gemini.AspectRatio {
	case "16:9", "9:16", "1:1", "4:3", "3:4":
	default:
		return fmt.Errorf("gemini.aspect_ratio %q is not supported", c.Gemini.AspectRatio)
	}
	if c.Gemini.ThinkingBudget < 0 {
		return errors.New("gemini.thinking_budget must not be negative")
	}
	return nil
}

func (c *Config) validateRetry() error {
	if c.Retry.MaxAttempts > 10 {
		return errors.New("retry.max_attempts must not exceed 10")
	}
	if c.Retry.MaxDelayMS < c.Retry.BaseDelayMS {
		return errors.New("retry.max_delay_ms must not be smaller than retry.base_delay_ms")
	}
	return nil
}

func (c *Config) validateLimiter() error {
	if c.Limiter.RequestsPerMinute > 600 {
		return errors.New("limiter.requests_per_minute must not exceed 600")
	}
	return nil
}

func (c *Config) validatePoller() error {
	if c.Poller.TimeoutSeconds < c.Poller.IntervalSeconds {
		return errors.New("poller.timeout_seconds must not be smaller than poller.interval_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	return nil
}
