package studio

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/services"
	"reelsmith/internal/services/gemini"
)

// Generator is the slice of the generative client the studio depends on.
type Generator interface {
	Generate(ctx context.Context, desc gemini.CallDescriptor) (*gemini.Result, error)
	GenerateMedia(ctx context.Context, desc gemini.CallDescriptor) (*gemini.MediaPart, error)
	GenerateVideo(ctx context.Context, desc gemini.CallDescriptor) (string, error)
	Download(ctx context.Context, uri string) (*gemini.MediaPart, error)
}

// Settings carries the per-operation defaults resolved from configuration.
type Settings struct {
	TextModel      string
	ImageModel     string
	TTSModel       string
	VideoModel     string
	Voice          string
	AspectRatio    string
	ThinkingBudget int
	Platform       string
	ConceptCount   int
	PlanWeeks      int
}

// SettingsFromConfig projects the runtime configuration onto studio settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		TextModel:      cfg.Gemini.TextModel,
		ImageModel:     cfg.Gemini.ImageModel,
		TTSModel:       cfg.Gemini.TTSModel,
		VideoModel:     cfg.Gemini.VideoModel,
		Voice:          cfg.Gemini.Voice,
		AspectRatio:    cfg.Gemini.AspectRatio,
		ThinkingBudget: cfg.Gemini.ThinkingBudget,
		Platform:       cfg.Studio.DefaultPlatform,
		ConceptCount:   cfg.Studio.ConceptCount,
		PlanWeeks:      cfg.Studio.PlanWeeks,
	}
}

// Service implements the content operations on top of a Generator.
type Service struct {
	generator Generator
	settings  Settings
	logger    *slog.Logger
}

// NewService constructs the studio service. A nil logger disables logging.
func NewService(generator Generator, settings Settings, logger *slog.Logger) *Service {
	if settings.ConceptCount <= 0 {
		settings.ConceptCount = 5
	}
	if settings.PlanWeeks <= 0 {
		settings.PlanWeeks = 4
	}
	return &Service{
		generator: generator,
		settings:  settings,
		logger:    logging.NewComponentLogger(logger, "studio"),
	}
}

// AnalyzeNiche produces a grounded verdict on a content niche.
func (s *Service) AnalyzeNiche(ctx context.Context, niche string) (*NicheAnalysis, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "analyze niche", "niche is required", nil)
	}

	result, err := s.generator.Generate(ctx, s.analyzeNicheCall(niche))
	if err != nil {
		return nil, wrapRemote("analyze niche", err)
	}

	var analysis NicheAnalysis
	if err := gemini.Decode(result.Text, &analysis); err != nil {
		return nil, wrapRemote("analyze niche", err)
	}
	analysis.Name = normalizeNicheName(analysis.Name, niche)
	analysis.TrendScore = clampTrendScore(analysis.TrendScore)
	analysis.Competition = normalizeCompetition(analysis.Competition)
	analysis.Sources = result.Sources

	s.logger.Info("niche analyzed",
		slog.String("niche", analysis.Name),
		slog.Float64("trend_score", analysis.TrendScore),
		slog.Int("sources", len(analysis.Sources)),
	)
	return &analysis, nil
}

// BuildPlan produces a phased multi-week strategy for a niche.
func (s *Service) BuildPlan(ctx context.Context, niche string) (*StrategyPlan, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "build plan", "niche is required", nil)
	}

	result, err := s.generator.Generate(ctx, s.buildPlanCall(niche, s.settings.PlanWeeks))
	if err != nil {
		return nil, wrapRemote("build plan", err)
	}

	var plan StrategyPlan
	if err := gemini.Decode(result.Text, &plan); err != nil {
		return nil, wrapRemote("build plan", err)
	}
	if plan.Niche == "" {
		plan.Niche = titleCaser.String(niche)
	}
	s.logger.Info("plan built", slog.String("niche", plan.Niche), slog.Int("weeks", len(plan.Weeks)))
	return &plan, nil
}

// GenerateConcepts pitches video concepts for a niche. A non-positive count
// falls back to the configured default.
func (s *Service) GenerateConcepts(ctx context.Context, niche string, count int) ([]VideoConcept, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "generate concepts", "niche is required", nil)
	}
	if count <= 0 {
		count = s.settings.ConceptCount
	}

	result, err := s.generator.Generate(ctx, s.generateConceptsCall(niche, count))
	if err != nil {
		return nil, wrapRemote("generate concepts", err)
	}

	var concepts []VideoConcept
	if err := gemini.Decode(result.Text, &concepts); err != nil {
		return nil, wrapRemote("generate concepts", err)
	}
	s.logger.Info("concepts generated", slog.String("niche", niche), slog.Int("count", len(concepts)))
	return concepts, nil
}

// ViralHooks writes candidate opening lines for a topic.
func (s *Service) ViralHooks(ctx context.Context, topic string, count int) ([]ViralHook, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "viral hooks", "topic is required", nil)
	}
	if count <= 0 {
		count = s.settings.ConceptCount
	}

	result, err := s.generator.Generate(ctx, s.viralHooksCall(topic, count))
	if err != nil {
		return nil, wrapRemote("viral hooks", err)
	}

	var hooks []ViralHook
	if err := gemini.Decode(result.Text, &hooks); err != nil {
		return nil, wrapRemote("viral hooks", err)
	}
	return hooks, nil
}

// WriteScript produces the full narration for a video as free text.
func (s *Service) WriteScript(ctx context.Context, title, hook string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", services.Wrap(services.ErrValidation, "studio", "write script", "title is required", nil)
	}

	result, err := s.generator.Generate(ctx, s.writeScriptCall(title, strings.TrimSpace(hook)))
	if err != nil {
		return "", wrapRemote("write script", err)
	}
	script := strings.TrimSpace(result.Text)
	if script == "" {
		return "", services.Wrap(services.ErrProduction, "studio", "write script", "empty script returned", nil)
	}
	s.logger.Info("script written", slog.String("title", title), slog.Int("chars", len(script)))
	return script, nil
}

// Storyboard breaks a narration script into illustratable scenes.
func (s *Service) Storyboard(ctx context.Context, script string) ([]StoryboardScene, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "storyboard", "script is required", nil)
	}

	result, err := s.generator.Generate(ctx, s.storyboardCall(script))
	if err != nil {
		return nil, wrapRemote("storyboard", err)
	}

	var scenes []StoryboardScene
	if err := gemini.Decode(result.Text, &scenes); err != nil {
		return nil, wrapRemote("storyboard", err)
	}
	s.logger.Info("storyboard ready", slog.Int("scenes", len(scenes)))
	return scenes, nil
}

// SynthesizeVoiceover narrates a script with the configured voice.
func (s *Service) SynthesizeVoiceover(ctx context.Context, script string) (*gemini.MediaPart, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "synthesize voiceover", "script is required", nil)
	}

	media, err := s.generator.GenerateMedia(ctx, s.voiceoverCall(script))
	if err != nil {
		return nil, wrapRemote("synthesize voiceover", err)
	}
	s.logger.Info("voiceover synthesized", slog.String("mime_type", media.MimeType), slog.Int("bytes", len(media.Data)))
	return media, nil
}

// GenerateImage renders one still from a visual prompt.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (*gemini.MediaPart, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "generate image", "prompt is required", nil)
	}

	media, err := s.generator.GenerateMedia(ctx, s.imageCall(prompt))
	if err != nil {
		return nil, wrapRemote("generate image", err)
	}
	return media, nil
}

// ProduceVideo runs the asynchronous video job and returns the result URI.
func (s *Service) ProduceVideo(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", services.Wrap(services.ErrValidation, "studio", "produce video", "prompt is required", nil)
	}

	uri, err := s.generator.GenerateVideo(ctx, s.videoCall(prompt))
	if err != nil {
		return "", wrapRemote("produce video", err)
	}
	s.logger.Info("video produced", slog.String("uri", uri))
	return uri, nil
}

// DownloadVideo retrieves the finished render behind a result URI.
func (s *Service) DownloadVideo(ctx context.Context, uri string) (*gemini.MediaPart, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "download video", "result uri is required", nil)
	}

	media, err := s.generator.Download(ctx, uri)
	if err != nil {
		return nil, wrapRemote("download video", err)
	}
	return media, nil
}

// HealthCheck issues a fast ping to verify the API key and text model are
// usable.
func (s *Service) HealthCheck(ctx context.Context) error {
	result, err := s.generator.Generate(ctx, gemini.CallDescriptor{
		Operation: "health check",
		Model:     s.settings.TextModel,
		Prompt:    `Respond with {"ok":true}`,
		Shape: &gemini.Schema{
			Type:       gemini.TypeObject,
			Properties: map[string]*gemini.Schema{"ok": {Type: gemini.TypeBoolean}},
			Required:   []string{"ok"},
		},
	})
	if err != nil {
		return wrapRemote("health check", err)
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := gemini.Decode(result.Text, &parsed); err != nil {
		return wrapRemote("health check", err)
	}
	if !parsed.OK {
		return services.Wrap(services.ErrTransient, "studio", "health check", "unexpected response", nil)
	}
	return nil
}

// Kickoff runs analysis, planning, and concept generation for a fresh niche
// concurrently. Each call carries its own retry state; the first failure
// cancels the remaining work.
func (s *Service) Kickoff(ctx context.Context, niche string) (*KickoffResult, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, services.Wrap(services.ErrValidation, "studio", "kickoff", "niche is required", nil)
	}

	var result KickoffResult
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		analysis, err := s.AnalyzeNiche(ctx, niche)
		if err != nil {
			return err
		}
		result.Analysis = analysis
		return nil
	})
	group.Go(func() error {
		plan, err := s.BuildPlan(ctx, niche)
		if err != nil {
			return err
		}
		result.Plan = plan
		return nil
	})
	group.Go(func() error {
		concepts, err := s.GenerateConcepts(ctx, niche, 0)
		if err != nil {
			return err
		}
		result.Concepts = concepts
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// wrapRemote classifies a client failure with the matching sentinel marker so
// callers and the CLI layer can react by kind.
func wrapRemote(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gemini.ErrPollTimeout):
		return services.Wrap(services.ErrTimeout, "studio", operation, "job did not finish in time", err)
	case gemini.IsRateLimited(err):
		return services.Wrap(services.ErrRateLimited, "studio", operation, "retry budget exhausted", err)
	case gemini.IsMalformedPayload(err):
		return services.Wrap(services.ErrMalformed, "studio", operation, "response could not be decoded", err)
	default:
		var prodErr *gemini.ProductionError
		if errors.As(err, &prodErr) {
			return services.Wrap(services.ErrProduction, "studio", operation, prodErr.Message, err)
		}
		return services.Wrap(services.ErrTransient, "studio", operation, "request failed", err)
	}
}
