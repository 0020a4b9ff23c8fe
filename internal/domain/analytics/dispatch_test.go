package analytics

import (
	"context"
	"errors"
	"testing"
)

func TestDispatchUnknownAction(t *testing.T) {
	service, decisions := newTestService(newStubStore())

	_, err := service.Dispatch(context.Background(), "t1", ActionRequest{Action: "do_something_else"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if len(decisions.entries) != 0 {
		t.Fatal("failed actions must not be logged as decisions")
	}
}

func TestDispatchRequiresManager(t *testing.T) {
	service, _ := newTestService(newStubStore())

	for _, action := range []Action{
		ActionCalculateTimeliness,
		ActionCalculateVariance,
		ActionGenerateScorecard,
		ActionGenerateHRFlags,
		ActionGenerateCoaching,
	} {
		if _, err := service.Dispatch(context.Background(), "t1", ActionRequest{Action: action}); !errors.Is(err, ErrManagerRequired) {
			t.Fatalf("%s: expected ErrManagerRequired, got %v", action, err)
		}
	}
}

func TestDispatchRecordsExplainability(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m1")
	service, decisions := newTestService(store)

	if _, err := service.Dispatch(context.Background(), "t1", ActionRequest{
		Action:    ActionGenerateScorecard,
		ManagerID: "m1",
		CycleID:   "cycle1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decisions.entries) != 1 {
		t.Fatalf("expected one decision entry, got %d", len(decisions.entries))
	}
	entry := decisions.entries[0]
	if entry.Action != string(ActionGenerateScorecard) {
		t.Fatalf("unexpected action in decision log: %s", entry.Action)
	}
	if entry.Confidence != EngineConfidence {
		t.Fatalf("expected fixed confidence, got %v", entry.Confidence)
	}
	if entry.HumanReview {
		t.Fatal("scorecard generation does not mandate human review")
	}
}

func TestDispatchFlagGenerationMandatesHumanReview(t *testing.T) {
	store := newStubStore()
	seedLenientManager(store, "m1")
	service, decisions := newTestService(store)

	if _, err := service.Dispatch(context.Background(), "t1", ActionRequest{
		Action:    ActionGenerateHRFlags,
		ManagerID: "m1",
		CycleID:   "cycle1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decisions.entries) != 1 || !decisions.entries[0].HumanReview {
		t.Fatalf("expected human review mandate for flag generation, got %+v", decisions.entries)
	}
}

func TestDispatchSurvivesDecisionLogFailure(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m1")
	decisions := &stubDecisions{err: errors.New("log unavailable")}
	service := NewService(store, decisions, 2)

	result, err := service.Dispatch(context.Background(), "t1", ActionRequest{
		Action:    ActionCalculateTimeliness,
		ManagerID: "m1",
	})
	if err != nil {
		t.Fatalf("analysis must survive a decision log failure: %v", err)
	}
	if _, ok := result.(TimelinessMetrics); !ok {
		t.Fatalf("unexpected result type %T", result)
	}
}

func TestDispatchBatchRecordsOneDecision(t *testing.T) {
	store := newStubStore()
	seedHealthyManager(store, "m1")
	seedLenientManager(store, "m2")
	service, decisions := newTestService(store)

	result, err := service.Dispatch(context.Background(), "t1", ActionRequest{
		Action: ActionBatchAnalyzeManagers,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	batch, ok := result.(BatchResult)
	if !ok {
		t.Fatalf("expected BatchResult, got %T", result)
	}
	if batch.Total != 2 {
		t.Fatalf("expected both managers analyzed, got %+v", batch)
	}

	// One dispatch, one entry; the per-manager flag runs inside the batch
	// are part of the same invocation.
	if len(decisions.entries) != 1 {
		t.Fatalf("expected a single decision entry for the batch, got %d", len(decisions.entries))
	}
	if decisions.entries[0].Action != string(ActionBatchAnalyzeManagers) {
		t.Fatalf("unexpected action in decision log: %s", decisions.entries[0].Action)
	}
}

func TestDispatchSingleCommentMode(t *testing.T) {
	store := newStubStore()
	service, _ := newTestService(store)

	result, err := service.Dispatch(context.Background(), "t1", ActionRequest{
		Action:              ActionAnalyzeCommentQuality,
		Comment:             richComment,
		TargetParticipantID: "a1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.(CommentAnalysis); !ok {
		t.Fatalf("expected CommentAnalysis, got %T", result)
	}
	if _, ok := store.analyses["a1"]; !ok {
		t.Fatal("expected persisted analysis for the target participant")
	}
}
