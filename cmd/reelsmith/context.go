package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelsmith/internal/config"
	"reelsmith/internal/history"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/services/gemini"
	"reelsmith/internal/studio"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// studioEnv bundles everything one generation command needs.
type studioEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	svc    *studio.Service
	store  *history.Store
}

func (c *commandContext) newStudioEnv() (*studioEnv, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	client := gemini.NewClient(
		gemini.Config{
			APIKey:         cfg.Gemini.APIKey,
			BaseURL:        cfg.Gemini.BaseURL,
			TimeoutSeconds: cfg.Gemini.TimeoutSeconds,
		},
		gemini.WithRetryPolicy(retryPolicyFromConfig(cfg)),
		gemini.WithRateLimit(cfg.Limiter.RequestsPerMinute, cfg.Limiter.Burst),
		gemini.WithPollInterval(time.Duration(cfg.Poller.IntervalSeconds)*time.Second),
		gemini.WithPollTimeout(time.Duration(cfg.Poller.TimeoutSeconds)*time.Second),
		gemini.WithLogger(logger),
	)

	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	return &studioEnv{
		cfg:    cfg,
		logger: logger,
		svc:    studio.NewService(client, studio.SettingsFromConfig(cfg), logger),
		store:  store,
	}, nil
}

// runContext assigns a run identifier up front so logs emitted during the
// operation and the history record share it.
func (e *studioEnv) runContext(ctx context.Context, operation string) (context.Context, string) {
	id := uuid.NewString()
	ctx = services.WithRunID(ctx, id)
	ctx = services.WithOperation(ctx, operation)
	return ctx, id
}

func (e *studioEnv) close() {
	if e == nil || e.store == nil {
		return
	}
	if err := e.store.Close(); err != nil {
		e.logger.Warn("closing history store", slog.Any("error", err))
	}
}

func retryPolicyFromConfig(cfg *config.Config) gemini.RetryPolicy {
	return gemini.RetryPolicy{
		MaxAttempts:    cfg.Retry.MaxAttempts,
		BaseDelay:      time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
		MaxDelay:       time.Duration(cfg.Retry.MaxDelayMS) * time.Millisecond,
		JitterMax:      time.Duration(cfg.Retry.JitterMS) * time.Millisecond,
		RetryAllErrors: cfg.Retry.RetryAllErrors,
	}
}
