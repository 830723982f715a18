package studio

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// normalizeCompetition maps model output onto the fixed competition levels.
// Unknown values are title-cased and passed through rather than rejected.
func normalizeCompetition(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low":
		return CompetitionLow
	case "medium", "moderate", "mid":
		return CompetitionMedium
	case "high":
		return CompetitionHigh
	case "":
		return ""
	default:
		return titleCaser.String(strings.TrimSpace(value))
	}
}

// normalizeNicheName cleans up the niche as echoed back by the model, falling
// back to the caller's input when the model omits it.
func normalizeNicheName(reported, requested string) string {
	name := strings.TrimSpace(reported)
	if name == "" {
		name = strings.TrimSpace(requested)
	}
	return titleCaser.String(name)
}

// clampTrendScore pins a score to the reporting scale. Models occasionally
// ignore the schema bounds; a 13 is reported as 10, never as an error.
func clampTrendScore(score float64) float64 {
	if score < TrendScoreMin {
		return TrendScoreMin
	}
	if score > TrendScoreMax {
		return TrendScoreMax
	}
	return score
}
