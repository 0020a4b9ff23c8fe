package analytics

import "testing"

func TestBuildCoachingRecommendationsHealthyScorecard(t *testing.T) {
	scorecard := CapabilityScorecard{
		TimelinessScore:      95,
		CommentQualityScore:  85,
		DifferentiationScore: 90,
		CalibrationScore:     88,
	}
	if recs := BuildCoachingRecommendations(scorecard); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %+v", recs)
	}
}

func TestBuildCoachingRecommendationsPriorities(t *testing.T) {
	scorecard := CapabilityScorecard{
		TimelinessScore:      55, // below 80 and below the 60 inner threshold
		CommentQualityScore:  65, // below 70 but above 50
		DifferentiationScore: 90,
		CalibrationScore:     40, // below 70 and below 50
	}

	recs := BuildCoachingRecommendations(scorecard)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}

	byArea := map[string]CoachingRecommendation{}
	for _, rec := range recs {
		byArea[rec.Area] = rec
	}
	if byArea[AreaTimeliness].Priority != "high" {
		t.Fatalf("expected high priority timeliness, got %+v", byArea[AreaTimeliness])
	}
	if byArea[AreaCommentQuality].Priority != "medium" {
		t.Fatalf("expected medium priority comment quality, got %+v", byArea[AreaCommentQuality])
	}
	if byArea[AreaCalibration].Priority != "high" {
		t.Fatalf("expected high priority calibration, got %+v", byArea[AreaCalibration])
	}
	if _, ok := byArea[AreaDifferentiation]; ok {
		t.Fatal("differentiation above threshold should not produce a recommendation")
	}
}

func TestBuildCoachingRecommendationsStaticContent(t *testing.T) {
	scorecard := CapabilityScorecard{CommentQualityScore: 10}
	recs := BuildCoachingRecommendations(scorecard)

	for _, rec := range recs {
		if rec.Title == "" || rec.Description == "" {
			t.Fatalf("expected static title and description, got %+v", rec)
		}
		if len(rec.ActionItems) < 3 || len(rec.ActionItems) > 4 {
			t.Fatalf("expected 3-4 action items, got %d for %s", len(rec.ActionItems), rec.Area)
		}
	}
}
