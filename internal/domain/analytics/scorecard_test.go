package analytics

import (
	"context"
	"testing"
	"time"
)

func newTestService(store *stubStore) (*Service, *stubDecisions) {
	decisions := &stubDecisions{}
	return NewService(store, decisions, 2), decisions
}

func seedHealthyManager(store *stubStore, managerID string) {
	deadline := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		store.assignments[managerID] = append(store.assignments[managerID], Assignment{
			EmployeeID:  "e1",
			Status:      AssignmentStatusCompleted,
			SubmittedAt: submittedBefore(deadline, 5),
			Deadline:    deadline,
		})
	}
	store.comments[managerID] = []CommentRecord{{ID: "c1", ParticipantID: "a1", Text: richComment}}
	store.scores[managerID] = []float64{2.4, 3.2, 4.0, 4.8}
}

func TestGenerateScorecardWeightsAndPersistence(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m1")
	store.alignments["m1"] = CalibrationAlignment{AlignmentScore: 80, DriftPattern: DriftAligned}
	service, _ := newTestService(store)

	scorecard, err := service.GenerateScorecard(context.Background(), "t1", "m1", "cycle1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := round2(scorecard.TimelinessScore*0.25 + scorecard.CommentQualityScore*0.30 +
		scorecard.DifferentiationScore*0.20 + scorecard.CalibrationScore*0.25)
	if scorecard.OverallScore != want {
		t.Fatalf("expected weighted overall %v, got %v", want, scorecard.OverallScore)
	}
	if scorecard.CalibrationScore != 80 {
		t.Fatalf("expected stored alignment score, got %v", scorecard.CalibrationScore)
	}
	if scorecard.OverallScore < 0 || scorecard.OverallScore > 100 {
		t.Fatalf("overall must stay within [0,100], got %v", scorecard.OverallScore)
	}
	if scorecard.Breakdown.Calibration == nil {
		t.Fatal("expected calibration breakdown to be carried for audit")
	}
	if _, ok := store.scorecards["m1/cycle1"]; !ok {
		t.Fatal("expected scorecard upsert keyed by manager and cycle")
	}
}

func TestGenerateScorecardDefaultCalibration(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m1")
	service, _ := newTestService(store)

	scorecard, err := service.GenerateScorecard(context.Background(), "t1", "m1", "cycle1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scorecard.CalibrationScore != DefaultCalibrationScore {
		t.Fatalf("expected neutral calibration default, got %v", scorecard.CalibrationScore)
	}
	if scorecard.Breakdown.Calibration != nil {
		t.Fatal("no calibration record should mean no calibration breakdown")
	}
}

func TestGenerateScorecardTrendBands(t *testing.T) {
	store := newStubStore()
	// No data at all: timeliness defaults to 100, the rest to their neutral
	// defaults, which lands well above the declining band.
	service, _ := newTestService(store)

	scorecard, err := service.GenerateScorecard(context.Background(), "t1", "m-empty", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scorecard.Trend != TrendStable {
		t.Fatalf("expected stable trend, got %s", scorecard.Trend)
	}

	if scorecard.TimelinessScore != 100 || scorecard.CommentQualityScore != 50 ||
		scorecard.DifferentiationScore != 50 || scorecard.CalibrationScore != 50 {
		t.Fatalf("expected documented defaults for missing data, got %+v", scorecard)
	}
	// 100*0.25 + 50*0.30 + 50*0.20 + 50*0.25.
	if scorecard.OverallScore != 62.5 {
		t.Fatalf("expected composite 62.5 from documented defaults, got %v", scorecard.OverallScore)
	}
}

func TestGenerateScorecardDecliningTrend(t *testing.T) {
	store := newStubStore()
	deadline := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	// Every review late, generic comments, uniform scores, heavy calibration drift.
	for i := 0; i < 4; i++ {
		store.assignments["m2"] = append(store.assignments["m2"], Assignment{
			EmployeeID:  "e1",
			Status:      AssignmentStatusCompleted,
			SubmittedAt: submittedBefore(deadline, -3),
			Deadline:    deadline,
		})
	}
	store.comments["m2"] = []CommentRecord{{ID: "c1", Text: "Good job."}}
	store.scores["m2"] = []float64{3, 3, 3, 3}
	store.alignments["m2"] = CalibrationAlignment{AlignmentScore: 10, DriftPattern: DriftVariable}
	service, _ := newTestService(store)

	scorecard, err := service.GenerateScorecard(context.Background(), "t1", "m2", "cycle1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scorecard.OverallScore >= 50 {
		t.Fatalf("expected overall below 50, got %v", scorecard.OverallScore)
	}
	if scorecard.Trend != TrendDeclining {
		t.Fatalf("expected declining trend, got %s", scorecard.Trend)
	}
}

func TestAnalyzeCommentUpsertIdempotent(t *testing.T) {
	store := newStubStore()
	service, _ := newTestService(store)

	first, err := service.AnalyzeComment(context.Background(), "t1", richComment, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.AnalyzeComment(context.Background(), "t1", richComment, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.analyses) != 1 {
		t.Fatalf("expected a single persisted analysis, got %d", len(store.analyses))
	}
	if first.OverallScore != second.OverallScore {
		t.Fatalf("re-analysis must overwrite identically: %v vs %v", first.OverallScore, second.OverallScore)
	}
}
