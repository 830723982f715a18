package studio

import (
	"fmt"

	"reelsmith/internal/services/gemini"
)

// System instructions are fixed per operation. Variation lives in the prompt,
// never in the instruction, so behaviour stays predictable across runs.
const (
	systemStrategist = "You are a content strategist for faceless video channels. " +
		"Base every claim on observable audience behaviour. Respond with JSON only."
	systemWriter = "You are a scriptwriter for short-form faceless videos. " +
		"Write tight, spoken-word prose with no camera directions and no markdown."
	systemDirector = "You are a video director. Break scripts into scenes that can " +
		"each be illustrated by a single generated image. Respond with JSON only."
)

func analysisShape() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"name":         {Type: gemini.TypeString},
			"trendScore":   {Type: gemini.TypeNumber, Minimum: gemini.Float(TrendScoreMin), Maximum: gemini.Float(TrendScoreMax)},
			"competition":  {Type: gemini.TypeString, Enum: []string{CompetitionLow, CompetitionMedium, CompetitionHigh}},
			"monetization": {Type: gemini.TypeString},
			"longevity":    {Type: gemini.TypeString},
			"platformFit":  {Type: gemini.TypeString},
		},
		Required: []string{"name", "trendScore", "competition", "monetization", "longevity", "platformFit"},
	}
}

func planShape() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeObject,
		Properties: map[string]*gemini.Schema{
			"niche": {Type: gemini.TypeString},
			"weeks": {
				Type: gemini.TypeArray,
				Items: &gemini.Schema{
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"range": {Type: gemini.TypeString, Description: "e.g. Weeks 1-2"},
						"phase": {Type: gemini.TypeString},
						"focus": {Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeString}},
					},
					Required: []string{"range", "phase", "focus"},
				},
			},
		},
		Required: []string{"niche", "weeks"},
	}
}

func conceptsShape() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeArray,
		Items: &gemini.Schema{
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"title":           {Type: gemini.TypeString},
				"hook":            {Type: gemini.TypeString, Description: "the first spoken line"},
				"structure":       {Type: gemini.TypeString},
				"visualDirection": {Type: gemini.TypeString},
				"seo": {
					Type: gemini.TypeObject,
					Properties: map[string]*gemini.Schema{
						"description": {Type: gemini.TypeString},
						"tags":        {Type: gemini.TypeArray, Items: &gemini.Schema{Type: gemini.TypeString}},
					},
					Required: []string{"description", "tags"},
				},
			},
			Required: []string{"title", "hook", "structure", "visualDirection", "seo"},
		},
	}
}

func hooksShape() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeArray,
		Items: &gemini.Schema{
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"hook":   {Type: gemini.TypeString},
				"reason": {Type: gemini.TypeString, Description: "why this opening retains viewers"},
			},
			Required: []string{"hook", "reason"},
		},
	}
}

func storyboardShape() *gemini.Schema {
	return &gemini.Schema{
		Type: gemini.TypeArray,
		Items: &gemini.Schema{
			Type: gemini.TypeObject,
			Properties: map[string]*gemini.Schema{
				"id":              {Type: gemini.TypeInteger},
				"text":            {Type: gemini.TypeString, Description: "the narration for this scene"},
				"visualPrompt":    {Type: gemini.TypeString, Description: "an image-generation prompt for this scene"},
				"durationSeconds": {Type: gemini.TypeNumber},
			},
			Required: []string{"id", "text", "visualPrompt", "durationSeconds"},
		},
	}
}

func (s *Service) analyzeNicheCall(niche string) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation: "analyze niche",
		Model:     s.settings.TextModel,
		System:    systemStrategist,
		Prompt: fmt.Sprintf(
			"Analyze the %q niche for a faceless channel on %s. Rate the current trend, "+
				"competition, monetization paths, longevity, and platform fit.",
			niche, s.settings.Platform),
		Shape:          analysisShape(),
		WebGrounding:   true,
		ThinkingBudget: s.settings.ThinkingBudget,
	}
}

func (s *Service) buildPlanCall(niche string, weeks int) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation: "build plan",
		Model:     s.settings.TextModel,
		System:    systemStrategist,
		Prompt: fmt.Sprintf(
			"Build a %d-week launch plan for a faceless %s channel in the %q niche. "+
				"Group weeks into phases and list the focus points for each phase.",
			weeks, s.settings.Platform, niche),
		Shape:          planShape(),
		ThinkingBudget: s.settings.ThinkingBudget,
	}
}

func (s *Service) generateConceptsCall(niche string, count int) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation: "generate concepts",
		Model:     s.settings.TextModel,
		System:    systemStrategist,
		Prompt: fmt.Sprintf(
			"Pitch %d video concepts for a faceless %s channel in the %q niche. "+
				"Each needs a title, an opening hook, a structure outline, visual direction, "+
				"and SEO metadata.",
			count, s.settings.Platform, niche),
		Shape:          conceptsShape(),
		WebGrounding:   true,
		ThinkingBudget: s.settings.ThinkingBudget,
	}
}

func (s *Service) viralHooksCall(topic string, count int) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation: "viral hooks",
		Model:     s.settings.TextModel,
		System:    systemWriter,
		Prompt: fmt.Sprintf(
			"Write %d distinct opening hooks for a video about %q. For each, explain in one "+
				"sentence why it stops the scroll.",
			count, topic),
		Shape: hooksShape(),
	}
}

func (s *Service) writeScriptCall(title, hook string) gemini.CallDescriptor {
	prompt := fmt.Sprintf("Write the full narration script for a video titled %q.", title)
	if hook != "" {
		prompt += fmt.Sprintf(" Open with this hook: %q.", hook)
	}
	return gemini.CallDescriptor{
		Operation:      "write script",
		Model:          s.settings.TextModel,
		System:         systemWriter,
		Prompt:         prompt,
		ThinkingBudget: s.settings.ThinkingBudget,
	}
}

func (s *Service) storyboardCall(script string) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation: "storyboard",
		Model:     s.settings.TextModel,
		System:    systemDirector,
		Prompt: "Break the following narration script into sequential scenes. Cover the whole " +
			"script without dropping narration.\n\n" + script,
		Shape: storyboardShape(),
	}
}

func (s *Service) voiceoverCall(script string) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation:  "synthesize voiceover",
		Model:      s.settings.TTSModel,
		Prompt:     script,
		Modalities: []string{"AUDIO"},
		Voice:      s.settings.Voice,
	}
}

func (s *Service) imageCall(prompt string) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation:  "generate image",
		Model:      s.settings.ImageModel,
		Prompt:     prompt,
		Modalities: []string{"IMAGE"},
	}
}

func (s *Service) videoCall(prompt string) gemini.CallDescriptor {
	return gemini.CallDescriptor{
		Operation:   "produce video",
		Model:       s.settings.VideoModel,
		Prompt:      prompt,
		AspectRatio: s.settings.AspectRatio,
	}
}
