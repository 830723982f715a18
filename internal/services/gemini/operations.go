package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reelsmith/internal/logging"
)

// GenerateVideo submits an asynchronous video job and polls it to completion,
// returning the terminal result URI.
//
// The poll loop runs at a fixed interval and is bounded by the configured
// wall-clock budget; exceeding it fails with ErrPollTimeout, which is distinct
// from the ProductionError raised when a job completes without a result
// reference. Transport failures during submission and polling go through the
// same retry classification as synchronous calls.
func (c *Client) GenerateVideo(ctx context.Context, desc CallDescriptor) (string, error) {
	op := operationLabel(desc)
	if strings.TrimSpace(desc.Prompt) == "" {
		return "", fmt.Errorf("%s: prompt required", op)
	}
	if strings.TrimSpace(desc.Model) == "" {
		return "", fmt.Errorf("%s: model required", op)
	}
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%s: api key required", op)
	}

	payload := predictRequest{
		Instances: []predictInstance{{Prompt: desc.Prompt}},
	}
	if desc.AspectRatio != "" {
		payload.Parameters = &predictParameters{AspectRatio: desc.AspectRatio}
	}

	var handle operationHandle
	submitPath := apiVersionPath + "/models/" + desc.Model + ":predictLongRunning"
	err := c.withRetry(ctx, op+" submit", func(ctx context.Context) error {
		handle = operationHandle{}
		return c.postJSON(ctx, submitPath, payload, &handle)
	})
	if err != nil {
		return "", err
	}
	if handle.Name == "" && !handle.Done {
		return "", &ProductionError{Operation: op, Message: "job submission returned no operation reference"}
	}

	logger := logging.WithContext(ctx, c.logger)
	started := time.Now()
	deadline := started.Add(c.pollTimeout)
	polls := 0

	for !handle.Done {
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%s: %w (waited %s over %d polls)", op, ErrPollTimeout, time.Since(started).Round(time.Second), polls)
		}
		if err := c.sleep(ctx, c.pollInterval); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		polls++
		var next operationHandle
		pollPath := apiVersionPath + "/" + strings.TrimPrefix(handle.Name, "/")
		err := c.withRetry(ctx, op+" poll", func(ctx context.Context) error {
			next = operationHandle{}
			return c.getJSON(ctx, pollPath, &next)
		})
		if err != nil {
			return "", err
		}
		if next.Name == "" {
			next.Name = handle.Name
		}
		handle = next

		logger.Debug("polled operation",
			slog.String("operation", op),
			slog.Int("poll", polls),
			slog.Bool("done", handle.Done),
		)
	}

	if handle.Error != nil {
		return "", &APIError{StatusCode: handle.Error.Code, Message: handle.Error.Message}
	}
	uri := handle.resultURI()
	if uri == "" {
		return "", &ProductionError{Operation: op, Message: "job completed without a result reference"}
	}
	return uri, nil
}

func (h *operationHandle) resultURI() string {
	if h.Response == nil {
		return ""
	}
	for _, video := range h.Response.GeneratedVideos {
		if video.Video != nil && video.Video.URI != "" {
			return video.Video.URI
		}
	}
	return ""
}
