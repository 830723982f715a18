package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks failures caused by unusable caller input.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks failures caused by missing or invalid configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrRateLimited marks failures where the remote service signalled capacity
	// exhaustion and the retry budget has run out.
	ErrRateLimited = errors.New("capacity reached")
	// ErrMalformed marks responses that could not be decoded into the expected
	// shape. The offending text stays in logs; user-facing messages for this
	// marker must never include it.
	ErrMalformed = errors.New("unreadable response")
	// ErrProduction marks media operations that completed without a usable result.
	ErrProduction = errors.New("production failure")
	// ErrTimeout marks operations that exceeded their wall-clock budget.
	ErrTimeout = errors.New("timeout")
	// ErrTransient marks any other recoverable failure.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserMessage translates an error into a short message suitable for end users.
// Diagnostic detail stays in logs; raw payload fragments are never surfaced.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "Generation capacity reached. Wait a moment and retry."
	case errors.Is(err, ErrMalformed):
		return "The service returned a response that could not be decoded. Retry the operation."
	case errors.Is(err, ErrTimeout):
		return "The operation took too long and was abandoned. Retry later."
	case errors.Is(err, ErrProduction):
		return "The service completed without producing a usable result."
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrConfiguration):
		return err.Error()
	default:
		return err.Error()
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
