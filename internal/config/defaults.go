package config

const (
	defaultAssetsDir   = "~/.local/share/reelsmith/assets"
	defaultLogDir      = "~/.local/share/reelsmith/logs"
	defaultStateDir    = "~/.local/share/reelsmith/state"
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultTextModel   = "gemini-2.5-flash"
	defaultImageModel  = "gemini-2.5-flash-image"
	defaultTTSModel    = "gemini-2.5-flash-preview-tts"
	defaultVideoModel  = "veo-3.0-generate-001"
	defaultVoice       = "Kore"
	defaultAspectRatio = "16:9"
	defaultHTTPTimeout = 120

	defaultRetryMaxAttempts = 3
	defaultRetryBaseDelayMS = 2000
	defaultRetryMaxDelayMS  = 30000
	defaultRetryJitterMS    = 750

	defaultLimiterRequestsPerMinute = 30
	defaultLimiterBurst             = 3

	defaultPollIntervalSeconds = 10
	defaultPollTimeoutSeconds  = 600

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultPlatform     = "YouTube"
	defaultConceptCount = 5
	defaultPlanWeeks    = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AssetsDir: defaultAssetsDir,
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
		},
		Gemini: Gemini{
			BaseURL:        defaultBaseURL,
			TextModel:      defaultTextModel,
			ImageModel:     defaultImageModel,
			TTSModel:       defaultTTSModel,
			VideoModel:     defaultVideoModel,
			Voice:          defaultVoice,
			AspectRatio:    defaultAspectRatio,
			TimeoutSeconds: defaultHTTPTimeout,
		},
		Retry: Retry{
			MaxAttempts: defaultRetryMaxAttempts,
			BaseDelayMS: defaultRetryBaseDelayMS,
			MaxDelayMS:  defaultRetryMaxDelayMS,
			JitterMS:    defaultRetryJitterMS,
		},
		Limiter: Limiter{
			RequestsPerMinute: defaultLimiterRequestsPerMinute,
			Burst:             defaultLimiterBurst,
		},
		Poller: Poller{
			IntervalSeconds: defaultPollIntervalSeconds,
			TimeoutSeconds:  defaultPollTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Studio: Studio{
			DefaultPlatform: defaultPlatform,
			ConceptCount:    defaultConceptCount,
			PlanWeeks:       defaultPlanWeeks,
		},
	}
}
