package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"reelsmith/internal/logging"
	"reelsmith/internal/services"
)

const (
	apiVersionPath     = "/v1beta"
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultHTTPTimeout = 120 * time.Second

	defaultRequestsPerMinute = 30
	defaultBurst             = 3

	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 10 * time.Minute
)

// Config captures the runtime settings required to talk to the generative API.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client is the single entry point every logical operation goes through. It
// composes the request contract, the shared rate limiter, the retry engine,
// the self-healing decoder, and the grounding extractor.
type Client struct {
	cfg        Config
	httpClient *http.Client
	policy     RetryPolicy
	limiter    *rate.Limiter
	logger     *slog.Logger

	sleeper func(time.Duration)
	jitter  func(time.Duration) time.Duration

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy overrides the default backoff policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) {
		c.policy = policy.normalized()
	}
}

// WithRateLimit configures the token bucket shared by every remote call this
// client issues, including polls.
func WithRateLimit(requestsPerMinute, burst int) Option {
	return func(c *Client) {
		if requestsPerMinute <= 0 {
			requestsPerMinute = defaultRequestsPerMinute
		}
		if burst <= 0 {
			burst = defaultBurst
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
	}
}

// WithLogger attaches a structured logger for retry observability events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "gemini")
		}
	}
}

// WithSleeper overrides how retry and poll sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithPollInterval overrides the fixed delay between long-running operation polls.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithPollTimeout overrides the wall-clock budget for long-running operations.
func WithPollTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.pollTimeout = timeout
		}
	}
}

// NewClient constructs a generative API client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient:   &http.Client{Timeout: timeout},
		policy:       DefaultRetryPolicy(),
		limiter:      rate.NewLimiter(rate.Limit(float64(defaultRequestsPerMinute)/60.0), defaultBurst),
		logger:       logging.NewComponentLogger(nil, "gemini"),
		jitter:       defaultJitter,
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Generate issues one logical call described by desc and returns the decoded
// result. Failures are retried according to the configured policy; the raw
// response envelope is discarded once the Result is assembled.
func (c *Client) Generate(ctx context.Context, desc CallDescriptor) (*Result, error) {
	op := operationLabel(desc)
	if strings.TrimSpace(desc.Prompt) == "" {
		return nil, fmt.Errorf("%s: prompt required", op)
	}
	if strings.TrimSpace(desc.Model) == "" {
		return nil, fmt.Errorf("%s: model required", op)
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key required", op)
	}

	reqBody := buildGenerateRequest(desc)
	path := apiVersionPath + "/models/" + desc.Model + ":generateContent"

	var envelope generateContentResponse
	err := c.withRetry(ctx, op, func(ctx context.Context) error {
		envelope = generateContentResponse{}
		if err := c.postJSON(ctx, path, reqBody, &envelope); err != nil {
			return err
		}
		if envelope.Error != nil {
			return &APIError{StatusCode: envelope.Error.Code, Message: envelope.Error.Message}
		}
		if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
			return fmt.Errorf("%s: empty candidates", op)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assembleResult(op, &envelope)
}

// GenerateMedia issues a call expected to return an inline binary payload and
// fails with ProductionError when the service completes without one.
func (c *Client) GenerateMedia(ctx context.Context, desc CallDescriptor) (*MediaPart, error) {
	result, err := c.Generate(ctx, desc)
	if err != nil {
		return nil, err
	}
	if len(result.Media) == 0 {
		return nil, &ProductionError{Operation: operationLabel(desc), Message: "no media payload returned"}
	}
	media := result.Media[0]
	return &media, nil
}

// Download fetches a produced asset by its result URI. Result URIs point back
// at the API's file service and require the key header.
func (c *Client) Download(ctx context.Context, uri string) (*MediaPart, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("download: uri required")
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("download: api key required")
	}

	var media *MediaPart
	err := c.withRetry(ctx, "download", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return fmt.Errorf("gemini request: new request: %w", err)
		}
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("gemini request: http error: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("gemini request: read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
			return &APIError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(data)),
				RetryAfter: retryAfter,
			}
		}
		media = &MediaPart{MimeType: resp.Header.Get("Content-Type"), Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(media.Data) == 0 {
		return nil, &ProductionError{Operation: "download", Message: "empty asset payload"}
	}
	return media, nil
}

func operationLabel(desc CallDescriptor) string {
	if strings.TrimSpace(desc.Operation) != "" {
		return desc.Operation
	}
	return "gemini generate"
}

func buildGenerateRequest(desc CallDescriptor) generateContentRequest {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: desc.Prompt}}}},
	}
	if strings.TrimSpace(desc.System) != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: desc.System}}}
	}

	cfg := &generationConfig{}
	used := false
	if desc.Shape != nil {
		cfg.ResponseMimeType = "application/json"
		cfg.ResponseSchema = desc.Shape
		used = true
	}
	if len(desc.Modalities) > 0 {
		cfg.ResponseModalities = desc.Modalities
		used = true
	}
	if desc.Voice != "" {
		cfg.SpeechConfig = &speechConfig{
			VoiceConfig: voiceConfig{PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: desc.Voice}},
		}
		used = true
	}
	if desc.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &thinkingConfig{ThinkingBudget: desc.ThinkingBudget}
		used = true
	}
	if used {
		req.GenerationConfig = cfg
	}
	if desc.WebGrounding {
		req.Tools = []tool{{GoogleSearch: &googleSearch{}}}
	}
	return req
}

func assembleResult(op string, envelope *generateContentResponse) (*Result, error) {
	result := &Result{Sources: extractGroundingSources(envelope)}

	var text strings.Builder
	for _, p := range envelope.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
		if p.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, &ProductionError{Operation: op, Message: "inline media payload is not valid base64"}
		}
		result.Media = append(result.Media, MediaPart{MimeType: p.InlineData.MimeType, Data: data})
	}
	result.Text = strings.TrimSpace(text.String())
	return result, nil
}

// withRetry drives one logical call to resolution: success, a permanent
// failure, or retry-budget exhaustion. Every retry emits an observability
// event; the event itself can never fail the call.
func (c *Client) withRetry(ctx context.Context, op string, call func(context.Context) error) error {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, c.logger)

	state := c.policy.newState()
	attempt := 0
	var lastErr error

	for {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: limiter: %w", op, err)
		}

		err := call(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		delay, retry := c.policy.next(ctx, &state, err, c.jitter)
		if !retry {
			break
		}

		logger.Warn("retrying request",
			slog.String("operation", op),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("classification", classification(err)),
			slog.Any("error", err),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if attempt >= c.policy.MaxAttempts {
		return fmt.Errorf("%s: failed after %d attempts: %w", op, attempt, lastErr)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gemini request: encode body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded), out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("gemini request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini request: http error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gemini request: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
			RetryAfter: retryAfter,
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gemini request: decode response: %w", err)
	}
	return nil
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx == nil {
		return errors.New("gemini sleep: nil context")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		delay := time.Until(when)
		if delay < 0 {
			return 0, false
		}
		return delay, true
	}
	return 0, false
}
