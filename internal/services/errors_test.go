package services_test

import (
	"errors"
	"strings"
	"testing"

	"reelsmith/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrRateLimited, "gemini", "analyze-niche", "retry budget exhausted", base)
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate-limited marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "analyze-niche") {
		t.Fatalf("expected operation in message, got %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "gemini", "plan", "", errors.New("boom"))
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "studio", "analyze-niche", "niche required", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"rate limited",
			services.Wrap(services.ErrRateLimited, "gemini", "plan", "", errors.New("429")),
			"Generation capacity reached. Wait a moment and retry.",
		},
		{
			"malformed",
			services.Wrap(services.ErrMalformed, "studio", "analyze-niche", "response could not be decoded", errors.New("malformed payload: bad syntax (fragment: I cannot answer that.)")),
			"The service returned a response that could not be decoded. Retry the operation.",
		},
		{
			"timeout",
			services.Wrap(services.ErrTimeout, "gemini", "video", "", nil),
			"The operation took too long and was abandoned. Retry later.",
		},
		{
			"production",
			services.Wrap(services.ErrProduction, "gemini", "video", "no result", nil),
			"The service completed without producing a usable result.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.UserMessage(tc.err); got != tc.want {
				t.Fatalf("UserMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
