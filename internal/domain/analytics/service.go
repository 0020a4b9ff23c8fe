package analytics

import (
	"context"
	"fmt"
)

// DecisionLog receives one explainability entry per successful engine
// invocation. Implemented by the audit domain; append-only.
type DecisionLog interface {
	Record(ctx context.Context, tenantID, action, modelVersion string, confidence float64, summary any, limitations []string, humanReview bool) error
}

type Service struct {
	store            StoreAPI
	decisions        DecisionLog
	batchConcurrency int
}

func NewService(store StoreAPI, decisions DecisionLog, batchConcurrency int) *Service {
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	return &Service{store: store, decisions: decisions, batchConcurrency: batchConcurrency}
}

// TimelinessMetrics computes the on-time metrics for one manager, optionally
// scoped to a single cycle.
func (s *Service) TimelinessMetrics(ctx context.Context, tenantID, managerID, cycleID string) (TimelinessMetrics, error) {
	assignments, err := s.store.AssignmentsForManager(ctx, tenantID, managerID, cycleID)
	if err != nil {
		return TimelinessMetrics{}, fmt.Errorf("load assignments: %w", err)
	}
	return CalculateTimeliness(assignments), nil
}

// AnalyzeComment scores one comment. When targetParticipantID is set the
// analysis is persisted keyed by that participant; re-analysis overwrites.
func (s *Service) AnalyzeComment(ctx context.Context, tenantID, text, targetParticipantID string) (CommentAnalysis, error) {
	analysis := AnalyzeComment(text)
	if targetParticipantID != "" {
		if err := s.store.UpsertCommentAnalysis(ctx, tenantID, targetParticipantID, analysis); err != nil {
			return CommentAnalysis{}, fmt.Errorf("persist comment analysis: %w", err)
		}
	}
	return analysis, nil
}

// CommentQualityMetrics scores every comment a manager wrote in a cycle and
// returns the batch aggregate.
func (s *Service) CommentQualityMetrics(ctx context.Context, tenantID, managerID, cycleID string) (CommentBatchMetrics, error) {
	comments, err := s.store.CommentsForManager(ctx, tenantID, managerID, cycleID)
	if err != nil {
		return CommentBatchMetrics{}, fmt.Errorf("load comments: %w", err)
	}
	return AnalyzeCommentBatch(comments), nil
}

func (s *Service) VarianceMetrics(ctx context.Context, tenantID, managerID, cycleID string) (VarianceMetrics, error) {
	scores, err := s.store.ScoresForManager(ctx, tenantID, managerID, cycleID)
	if err != nil {
		return VarianceMetrics{}, fmt.Errorf("load scores: %w", err)
	}
	return CalculateVariance(scores), nil
}

// CalibrationAlignment computes and persists how far a manager's original
// ratings drifted from the post-calibration outcome of one session.
func (s *Service) CalibrationAlignment(ctx context.Context, tenantID, managerID, sessionID string) (CalibrationAlignment, error) {
	adjustments, err := s.store.AdjustmentsForSession(ctx, tenantID, sessionID)
	if err != nil {
		return CalibrationAlignment{}, fmt.Errorf("load adjustments: %w", err)
	}
	evaluated, err := s.store.EvaluatedEmployeeIDs(ctx, tenantID, managerID)
	if err != nil {
		return CalibrationAlignment{}, fmt.Errorf("load evaluated employees: %w", err)
	}

	alignment := CalculateAlignment(adjustments, evaluated)
	alignment.SessionID = sessionID
	if err := s.store.UpsertAlignment(ctx, tenantID, managerID, sessionID, alignment); err != nil {
		return CalibrationAlignment{}, fmt.Errorf("persist alignment: %w", err)
	}
	return alignment, nil
}

func (s *Service) CoachingRecommendations(ctx context.Context, tenantID, managerID, cycleID string) ([]CoachingRecommendation, error) {
	scorecard, err := s.GenerateScorecard(ctx, tenantID, managerID, cycleID)
	if err != nil {
		return nil, err
	}
	return BuildCoachingRecommendations(scorecard), nil
}

func (s *Service) ListFlags(ctx context.Context, tenantID, managerID string, resolved *bool, limit, offset int) ([]HRFlag, error) {
	return s.store.ListFlags(ctx, tenantID, managerID, resolved, limit, offset)
}

func (s *Service) ResolveFlag(ctx context.Context, tenantID, flagID, resolvedBy, note string) error {
	return s.store.ResolveFlag(ctx, tenantID, flagID, resolvedBy, note)
}
