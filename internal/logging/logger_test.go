package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"reelsmith/internal/services"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger = NewComponentLogger(logger, "gemini")
	logger.Info("retrying request", slog.Int("attempt", 2), slog.String("classification", "rate-limited"))

	line := buf.String()
	if !strings.Contains(line, "INFO gemini: retrying request") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "attempt=2") || !strings.Contains(line, "classification=rate-limited") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))
	logger.Warn("decode failed", slog.String("fragment", "not json at all"))
	if !strings.Contains(buf.String(), `fragment="not json at all"`) {
		t.Fatalf("unexpected line: %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected record below level to be dropped, got %q", buf.String())
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, new(slog.LevelVar)))

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithOperation(ctx, "storyboard")

	WithContext(ctx, logger).Info("done")
	line := buf.String()
	if !strings.Contains(line, "run_id=run-1") || !strings.Contains(line, "operation=storyboard") {
		t.Fatalf("missing context fields: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must be disabled at every level.
	logger.Error("ignored")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
}
