package studio

import "reelsmith/internal/services/gemini"

// Competition levels reported by niche analysis.
const (
	CompetitionLow    = "Low"
	CompetitionMedium = "Medium"
	CompetitionHigh   = "High"
)

// Trend scores are reported on a fixed scale; out-of-range model output is
// clamped, never rejected.
const (
	TrendScoreMin = 0
	TrendScoreMax = 10
)

// NicheAnalysis is the decoded verdict on one content niche.
type NicheAnalysis struct {
	Name         string  `json:"name"`
	TrendScore   float64 `json:"trendScore"`
	Competition  string  `json:"competition"`
	Monetization string  `json:"monetization"`
	Longevity    string  `json:"longevity"`
	PlatformFit  string  `json:"platformFit"`

	// Sources carries web citations when the analysis was grounded.
	Sources []gemini.GroundingSource `json:"sources,omitempty"`
}

// StrategyPlan is a phased multi-week content schedule for a niche.
type StrategyPlan struct {
	Niche string     `json:"niche"`
	Weeks []PlanWeek `json:"weeks"`
}

// PlanWeek is one phase of a strategy plan.
type PlanWeek struct {
	Range string   `json:"range"`
	Phase string   `json:"phase"`
	Focus []string `json:"focus"`
}

// VideoConcept is one pitched video idea with its packaging.
type VideoConcept struct {
	Title           string     `json:"title"`
	Hook            string     `json:"hook"`
	Structure       string     `json:"structure"`
	VisualDirection string     `json:"visualDirection"`
	SEO             ConceptSEO `json:"seo"`
}

// ConceptSEO holds the discoverability metadata for a concept.
type ConceptSEO struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ViralHook is one opening line with the retention rationale behind it.
type ViralHook struct {
	Hook   string `json:"hook"`
	Reason string `json:"reason"`
}

// StoryboardScene is one segment of a script broken down for production.
type StoryboardScene struct {
	ID              int     `json:"id"`
	Text            string  `json:"text"`
	VisualPrompt    string  `json:"visualPrompt"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// KickoffResult bundles the three artifacts produced when starting work on a
// fresh niche.
type KickoffResult struct {
	Analysis *NicheAnalysis `json:"analysis"`
	Plan     *StrategyPlan  `json:"plan"`
	Concepts []VideoConcept `json:"concepts"`
}
