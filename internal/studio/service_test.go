package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"reelsmith/internal/services"
	"reelsmith/internal/services/gemini"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []gemini.CallDescriptor

	// results maps operation labels to canned response text.
	results map[string]string
	err     error
	media   *gemini.MediaPart
	uri     string
	sources []gemini.GroundingSource

	downloaded []string
}

func (f *fakeGenerator) record(desc gemini.CallDescriptor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, desc)
}

func (f *fakeGenerator) Generate(_ context.Context, desc gemini.CallDescriptor) (*gemini.Result, error) {
	f.record(desc)
	if f.err != nil {
		return nil, f.err
	}
	text, ok := f.results[desc.Operation]
	if !ok {
		return nil, errors.New("unexpected operation: " + desc.Operation)
	}
	return &gemini.Result{Text: text, Sources: f.sources}, nil
}

func (f *fakeGenerator) GenerateMedia(_ context.Context, desc gemini.CallDescriptor) (*gemini.MediaPart, error) {
	f.record(desc)
	if f.err != nil {
		return nil, f.err
	}
	return f.media, nil
}

func (f *fakeGenerator) GenerateVideo(_ context.Context, desc gemini.CallDescriptor) (string, error) {
	f.record(desc)
	if f.err != nil {
		return "", f.err
	}
	return f.uri, nil
}

func (f *fakeGenerator) Download(_ context.Context, uri string) (*gemini.MediaPart, error) {
	f.mu.Lock()
	f.downloaded = append(f.downloaded, uri)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.media, nil
}

func testSettings() Settings {
	return Settings{
		TextModel:    "gemini-2.5-flash",
		ImageModel:   "gemini-2.5-flash-image",
		TTSModel:     "gemini-2.5-flash-preview-tts",
		VideoModel:   "veo-3.0-generate-001",
		Voice:        "Kore",
		AspectRatio:  "16:9",
		Platform:     "YouTube",
		ConceptCount: 3,
		PlanWeeks:    4,
	}
}

func TestAnalyzeNicheDecodesAndNormalizes(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{
			"analyze niche": `{"name":"stoic philosophy","trendScore":13,"competition":"HIGH","monetization":"AdSense plus affiliate","longevity":"evergreen","platformFit":"strong"}`,
		},
		sources: []gemini.GroundingSource{{Title: "Trend report", URI: "https://example.com"}},
	}
	svc := NewService(fake, testSettings(), nil)

	analysis, err := svc.AnalyzeNiche(t.Context(), "stoic philosophy")
	if err != nil {
		t.Fatalf("AnalyzeNiche returned error: %v", err)
	}
	if analysis.TrendScore != TrendScoreMax {
		t.Fatalf("trendScore = %v, want clamped to %d", analysis.TrendScore, TrendScoreMax)
	}
	if analysis.Competition != CompetitionHigh {
		t.Fatalf("competition = %q, want %q", analysis.Competition, CompetitionHigh)
	}
	if analysis.Name != "Stoic Philosophy" {
		t.Fatalf("name = %q, want title-cased niche", analysis.Name)
	}
	if len(analysis.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(analysis.Sources))
	}

	desc := fake.calls[0]
	if !desc.WebGrounding {
		t.Fatal("analysis must request web grounding")
	}
	if desc.Shape == nil || desc.Shape.Type != gemini.TypeObject {
		t.Fatal("analysis must constrain the response shape")
	}
}

func TestAnalyzeNicheRecoversFromProseWrappedPayload(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{
			"analyze niche": "Here you go:\n```json\n{\"name\":\"ASMR\",\"trendScore\":6,\"competition\":\"low\",\"monetization\":\"m\",\"longevity\":\"l\",\"platformFit\":\"p\"}\n```",
		},
	}
	svc := NewService(fake, testSettings(), nil)

	analysis, err := svc.AnalyzeNiche(t.Context(), "ASMR")
	if err != nil {
		t.Fatalf("AnalyzeNiche returned error: %v", err)
	}
	if analysis.Competition != CompetitionLow || analysis.TrendScore != 6 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestBlankInputsFailBeforeAnyRemoteCall(t *testing.T) {
	fake := &fakeGenerator{results: map[string]string{}}
	svc := NewService(fake, testSettings(), nil)
	ctx := t.Context()

	checks := []struct {
		name string
		call func() error
	}{
		{"analyze", func() error { _, err := svc.AnalyzeNiche(ctx, "  "); return err }},
		{"plan", func() error { _, err := svc.BuildPlan(ctx, ""); return err }},
		{"concepts", func() error { _, err := svc.GenerateConcepts(ctx, "", 3); return err }},
		{"hooks", func() error { _, err := svc.ViralHooks(ctx, "", 3); return err }},
		{"script", func() error { _, err := svc.WriteScript(ctx, "", ""); return err }},
		{"storyboard", func() error { _, err := svc.Storyboard(ctx, " \n"); return err }},
		{"voiceover", func() error { _, err := svc.SynthesizeVoiceover(ctx, ""); return err }},
		{"image", func() error { _, err := svc.GenerateImage(ctx, ""); return err }},
		{"video", func() error { _, err := svc.ProduceVideo(ctx, ""); return err }},
		{"kickoff", func() error { _, err := svc.Kickoff(ctx, ""); return err }},
	}
	for _, tc := range checks {
		err := tc.call()
		if !errors.Is(err, services.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if len(fake.calls) != 0 {
		t.Fatalf("blank inputs must not reach the generator, saw %d calls", len(fake.calls))
	}
}

func TestRateLimitExhaustionIsClassified(t *testing.T) {
	fake := &fakeGenerator{err: &gemini.APIError{StatusCode: 429, Message: "quota exceeded"}}
	svc := NewService(fake, testSettings(), nil)

	_, err := svc.AnalyzeNiche(t.Context(), "fitness")
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected capacity classification, got %v", err)
	}
	if msg := services.UserMessage(err); !strings.Contains(msg, "capacity") {
		t.Fatalf("unexpected user message: %q", msg)
	}
}

func TestMalformedPayloadIsNotSurfacedRaw(t *testing.T) {
	const rawText = "INTERNAL-NOTES I cannot answer that."
	fake := &fakeGenerator{
		results: map[string]string{"analyze niche": rawText},
	}
	svc := NewService(fake, testSettings(), nil)

	_, err := svc.AnalyzeNiche(t.Context(), "fitness")
	if !errors.Is(err, services.ErrMalformed) {
		t.Fatalf("expected malformed classification, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not be decoded") {
		t.Fatalf("unexpected error text: %v", err)
	}
	// The full error keeps the fragment for logs; the user-facing message
	// must not.
	msg := services.UserMessage(err)
	if strings.Contains(msg, "INTERNAL-NOTES") || strings.Contains(msg, rawText) {
		t.Fatalf("raw model text leaked into user message: %q", msg)
	}
	if !strings.Contains(msg, "could not be decoded") {
		t.Fatalf("unexpected user message: %q", msg)
	}
}

func TestPollTimeoutIsClassified(t *testing.T) {
	fake := &fakeGenerator{err: gemini.ErrPollTimeout}
	svc := NewService(fake, testSettings(), nil)

	_, err := svc.ProduceVideo(t.Context(), "a sunrise")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestWriteScriptReturnsFreeText(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{"write script": "Ever wondered why stoics never panic?\nHere is the answer."},
	}
	svc := NewService(fake, testSettings(), nil)

	script, err := svc.WriteScript(t.Context(), "Why Stoics Never Panic", "Ever wondered why stoics never panic?")
	if err != nil {
		t.Fatalf("WriteScript returned error: %v", err)
	}
	if !strings.HasPrefix(script, "Ever wondered") {
		t.Fatalf("unexpected script: %q", script)
	}
	if fake.calls[0].Shape != nil {
		t.Fatal("script writing must not constrain the response shape")
	}
	if !strings.Contains(fake.calls[0].Prompt, "Why Stoics Never Panic") {
		t.Fatalf("prompt missing title: %q", fake.calls[0].Prompt)
	}
}

func TestGenerateConceptsDefaultsCount(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{"generate concepts": `[{"title":"t","hook":"h","structure":"s","visualDirection":"v","seo":{"description":"d","tags":["a"]}}]`},
	}
	svc := NewService(fake, testSettings(), nil)

	concepts, err := svc.GenerateConcepts(t.Context(), "fitness", 0)
	if err != nil {
		t.Fatalf("GenerateConcepts returned error: %v", err)
	}
	if len(concepts) != 1 || concepts[0].SEO.Tags[0] != "a" {
		t.Fatalf("unexpected concepts: %+v", concepts)
	}
	if !strings.Contains(fake.calls[0].Prompt, "3 video concepts") {
		t.Fatalf("prompt should use configured default count: %q", fake.calls[0].Prompt)
	}
}

func TestStoryboardDecodesScenes(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{"storyboard": `[{"id":1,"text":"opening","visualPrompt":"a dark study","durationSeconds":6.5},{"id":2,"text":"closing","visualPrompt":"sunrise","durationSeconds":4}]`},
	}
	svc := NewService(fake, testSettings(), nil)

	scenes, err := svc.Storyboard(t.Context(), "opening. closing.")
	if err != nil {
		t.Fatalf("Storyboard returned error: %v", err)
	}
	if len(scenes) != 2 || scenes[0].DurationSeconds != 6.5 {
		t.Fatalf("unexpected scenes: %+v", scenes)
	}
}

func TestSynthesizeVoiceoverUsesConfiguredVoice(t *testing.T) {
	fake := &fakeGenerator{media: &gemini.MediaPart{MimeType: "audio/pcm", Data: []byte("pcm")}}
	svc := NewService(fake, testSettings(), nil)

	media, err := svc.SynthesizeVoiceover(t.Context(), "Read this aloud.")
	if err != nil {
		t.Fatalf("SynthesizeVoiceover returned error: %v", err)
	}
	if media.MimeType != "audio/pcm" {
		t.Fatalf("unexpected media: %+v", media)
	}
	desc := fake.calls[0]
	if desc.Voice != "Kore" || len(desc.Modalities) != 1 || desc.Modalities[0] != "AUDIO" {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	if desc.Model != "gemini-2.5-flash-preview-tts" {
		t.Fatalf("unexpected model: %q", desc.Model)
	}
}

func TestProduceVideoUsesAspectRatio(t *testing.T) {
	fake := &fakeGenerator{uri: "https://files.example.com/clip.mp4"}
	svc := NewService(fake, testSettings(), nil)

	uri, err := svc.ProduceVideo(t.Context(), "a sunrise over mountains")
	if err != nil {
		t.Fatalf("ProduceVideo returned error: %v", err)
	}
	if uri != "https://files.example.com/clip.mp4" {
		t.Fatalf("unexpected uri: %q", uri)
	}
	if fake.calls[0].AspectRatio != "16:9" {
		t.Fatalf("unexpected aspect ratio: %q", fake.calls[0].AspectRatio)
	}
}

func TestDownloadVideoFetchesResult(t *testing.T) {
	fake := &fakeGenerator{media: &gemini.MediaPart{MimeType: "video/mp4", Data: []byte("clip-bytes")}}
	svc := NewService(fake, testSettings(), nil)

	media, err := svc.DownloadVideo(t.Context(), "https://files.example.com/clip.mp4")
	if err != nil {
		t.Fatalf("DownloadVideo returned error: %v", err)
	}
	if media.MimeType != "video/mp4" || string(media.Data) != "clip-bytes" {
		t.Fatalf("unexpected media: %+v", media)
	}
	if len(fake.downloaded) != 1 || fake.downloaded[0] != "https://files.example.com/clip.mp4" {
		t.Fatalf("unexpected download calls: %v", fake.downloaded)
	}
}

func TestDownloadVideoRequiresURI(t *testing.T) {
	fake := &fakeGenerator{}
	svc := NewService(fake, testSettings(), nil)

	_, err := svc.DownloadVideo(t.Context(), "  ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fake.downloaded) != 0 {
		t.Fatalf("expected no remote calls, got %v", fake.downloaded)
	}
}

func TestKickoffRunsAllThreeOperations(t *testing.T) {
	fake := &fakeGenerator{
		results: map[string]string{
			"analyze niche":     `{"name":"Fitness","trendScore":7,"competition":"medium","monetization":"m","longevity":"l","platformFit":"p"}`,
			"build plan":        `{"niche":"Fitness","weeks":[{"range":"Weeks 1-2","phase":"Foundation","focus":["setup"]}]}`,
			"generate concepts": `[{"title":"t","hook":"h","structure":"s","visualDirection":"v","seo":{"description":"d","tags":[]}}]`,
		},
	}
	svc := NewService(fake, testSettings(), nil)

	result, err := svc.Kickoff(t.Context(), "fitness")
	if err != nil {
		t.Fatalf("Kickoff returned error: %v", err)
	}
	if result.Analysis == nil || result.Plan == nil || len(result.Concepts) != 1 {
		t.Fatalf("incomplete kickoff result: %+v", result)
	}
	if len(fake.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(fake.calls))
	}
}

func TestKickoffStopsOnFirstFailure(t *testing.T) {
	fake := &fakeGenerator{err: &gemini.APIError{StatusCode: 429, Message: "quota"}}
	svc := NewService(fake, testSettings(), nil)

	if _, err := svc.Kickoff(t.Context(), "fitness"); !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected capacity classification, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	fake := &fakeGenerator{results: map[string]string{"health check": `{"ok":true}`}}
	svc := NewService(fake, testSettings(), nil)
	if err := svc.HealthCheck(t.Context()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}

	fake = &fakeGenerator{results: map[string]string{"health check": `{"ok":false}`}}
	svc = NewService(fake, testSettings(), nil)
	if err := svc.HealthCheck(t.Context()); err == nil {
		t.Fatal("expected failure on unexpected response")
	}
}

func TestNormalizeCompetition(t *testing.T) {
	cases := []struct{ in, want string }{
		{"low", CompetitionLow},
		{"  HIGH ", CompetitionHigh},
		{"moderate", CompetitionMedium},
		{"cutthroat", "Cutthroat"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeCompetition(tc.in); got != tc.want {
			t.Errorf("normalizeCompetition(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
