package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelsmith/internal/history"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
)

// finishRun records the outcome in the history store and converts failures
// into user-facing errors. Diagnostic detail goes to the log; raw payload
// fragments never reach the terminal.
func (e *studioEnv) finishRun(ctx context.Context, runID, operation, input string, result any, started time.Time, runErr error) error {
	run := history.Run{
		ID:         runID,
		Operation:  operation,
		Input:      input,
		Status:     history.StatusCompleted,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = runErr.Error()
	} else if result != nil {
		encoded, err := json.Marshal(result)
		if err == nil {
			run.ResultJSON = string(encoded)
		}
	}
	logger := logging.WithContext(ctx, e.logger)
	if _, err := e.store.Save(ctx, run); err != nil {
		logger.Warn("recording run", slog.Any("error", err))
	}

	if runErr == nil {
		return nil
	}
	logger.Error("operation failed", slog.Any("error", runErr))
	return errors.New(services.UserMessage(runErr))
}

// writeAsset persists a binary payload under the assets directory with a
// timestamped name and returns the full path.
func writeAsset(assetsDir, prefix, mimeType string, data []byte) (string, error) {
	if strings.TrimSpace(assetsDir) == "" {
		return "", errors.New("assets directory is not configured")
	}
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return "", fmt.Errorf("create assets directory: %w", err)
	}
	name := fmt.Sprintf("%s-%s%s", prefix, time.Now().UTC().Format("20060102-150405"), extensionForMime(mimeType))
	path := filepath.Join(assetsDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return path, nil
}

func extensionForMime(mimeType string) string {
	base := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(base, ';'); idx >= 0 {
		base = base[:idx]
	}
	switch base {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "video/mp4":
		return ".mp4"
	default:
		if strings.HasPrefix(base, "audio/") {
			return ".pcm"
		}
		return ".bin"
	}
}

// readScriptArg resolves a script argument that may be inline text, a file
// path, or "-" for stdin.
func readScriptArg(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		data, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("read script file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return value, nil
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
