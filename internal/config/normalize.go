package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGemini()
	c.normalizeRetry()
	c.normalizeLimiter()
	c.normalizePoller()
	c.normalizeLogging()
	c.normalizeStudio()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AssetsDir) == "" {
		c.Paths.AssetsDir = defaultAssetsDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.AssetsDir, err = ExpandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	c.Gemini.BaseURL = strings.TrimRight(strings.TrimSpace(c.Gemini.BaseURL), "/")
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(c.Gemini.TextModel) == "" {
		c.Gemini.TextModel = defaultTextModel
	}
	if strings.TrimSpace(c.Gemini.ImageModel) == "" {
		c.Gemini.ImageModel = defaultImageModel
	}
	if strings.TrimSpace(c.Gemini.TTSModel) == "" {
		c.Gemini.TTSModel = defaultTTSModel
	}
	if strings.TrimSpace(c.Gemini.VideoModel) == "" {
		c.Gemini.VideoModel = defaultVideoModel
	}
	if strings.TrimSpace(c.Gemini.Voice) == "" {
		c.Gemini.Voice = defaultVoice
	}
	if strings.TrimSpace(c.Gemini.AspectRatio) == "" {
		c.Gemini.AspectRatio = defaultAspectRatio
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = defaultHTTPTimeout
	}
}

func (c *Config) normalizeRetry() {
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = defaultRetryMaxAttempts
	}
	if c.Retry.BaseDelayMS <= 0 {
		c.Retry.BaseDelayMS = defaultRetryBaseDelayMS
	}
	if c.Retry.MaxDelayMS <= 0 {
		c.Retry.MaxDelayMS = defaultRetryMaxDelayMS
	}
	if c.Retry.JitterMS < 0 {
		c.Retry.JitterMS = defaultRetryJitterMS
	}
}

func (c *Config) normalizeLimiter() {
	if c.Limiter.RequestsPerMinute <= 0 {
		c.Limiter.RequestsPerMinute = defaultLimiterRequestsPerMinute
	}
	if c.Limiter.Burst <= 0 {
		c.Limiter.Burst = defaultLimiterBurst
	}
}

func (c *Config) normalizePoller() {
	if c.Poller.IntervalSeconds <= 0 {
		c.Poller.IntervalSeconds = defaultPollIntervalSeconds
	}
	if c.Poller.TimeoutSeconds <= 0 {
		c.Poller.TimeoutSeconds = defaultPollTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeStudio() {
	if strings.TrimSpace(c.Studio.DefaultPlatform) == "" {
		c.Studio.DefaultPlatform = defaultPlatform
	}
	if c.Studio.ConceptCount <= 0 {
		c.Studio.ConceptCount = defaultConceptCount
	}
	if c.Studio.PlanWeeks <= 0 {
		c.Studio.PlanWeeks = defaultPlanWeeks
	}
}
