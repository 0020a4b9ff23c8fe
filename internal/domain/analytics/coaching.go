package analytics

// BuildCoachingRecommendations maps sub-scores below their thresholds to
// prioritized recommendations. Content is static per area; only the priority
// depends on how far below threshold the score sits.
func BuildCoachingRecommendations(scorecard CapabilityScorecard) []CoachingRecommendation {
	scores := map[string]float64{
		AreaTimeliness:      scorecard.TimelinessScore,
		AreaCommentQuality:  scorecard.CommentQualityScore,
		AreaDifferentiation: scorecard.DifferentiationScore,
		AreaCalibration:     scorecard.CalibrationScore,
	}

	recommendations := []CoachingRecommendation{}
	for _, area := range coachingAreas {
		score := scores[area.Area]
		if score >= area.Threshold {
			continue
		}
		priority := "medium"
		if score < area.HighThreshold {
			priority = "high"
		}
		recommendations = append(recommendations, CoachingRecommendation{
			Area:        area.Area,
			Priority:    priority,
			Title:       area.Title,
			Description: area.Description,
			ActionItems: area.ActionItems,
		})
	}
	return recommendations
}
