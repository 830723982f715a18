package gemini

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrPollTimeout reports that a long-running operation exceeded its wall-clock
// budget before reaching a terminal state.
var ErrPollTimeout = errors.New("gemini poll: wall-clock budget exceeded")

// APIError captures a non-success HTTP response from the generative API.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Message))
}

// MalformedPayloadError reports that response text could not be recovered into
// the expected structural shape after every decoder stage. The offending
// fragment is retained for diagnostics and must never be shown raw to end
// users.
type MalformedPayloadError struct {
	Fragment string
	Err      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %v (fragment: %s)", e.Err, summarizeSnippet(e.Fragment))
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ProductionError reports a media operation that completed without a usable
// result payload or reference.
type ProductionError struct {
	Operation string
	Message   string
}

func (e *ProductionError) Error() string {
	return fmt.Sprintf("%s: production failure: %s", e.Operation, e.Message)
}

// IsRateLimited classifies an error as remote throttling or quota exhaustion.
// Matches HTTP 429 responses as well as message text the API uses for the
// same condition.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "quota", "resource_exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsMalformedPayload reports whether err is a decode failure. Decode failures
// are never retried; a fresh attempt would most likely reproduce the same
// malformed text.
func IsMalformedPayload(err error) bool {
	var malformed *MalformedPayloadError
	return errors.As(err, &malformed)
}

func summarizeSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	replacer := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	clean := strings.Join(strings.Fields(replacer.Replace(trimmed)), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
