package analytics

import (
	"context"
	"fmt"
	"log/slog"
)

// Action is the closed set of engine operations. Each variant carries its
// parameters in ActionRequest and maps to exactly one component.
type Action string

type ActionRequest struct {
	Action              Action `json:"action"`
	ManagerID           string `json:"managerId,omitempty"`
	CycleID             string `json:"cycleId,omitempty"`
	SessionID           string `json:"sessionId,omitempty"`
	Comment             string `json:"comment,omitempty"`
	TargetParticipantID string `json:"targetParticipantId,omitempty"`
}

// Dispatch executes one engine action and appends an explainability record
// for the invocation. Input errors degrade to neutral defaults inside the
// calculators; store errors propagate to the caller unchanged.
func (s *Service) Dispatch(ctx context.Context, tenantID string, req ActionRequest) (any, error) {
	result, err := s.run(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	humanReview := req.Action == ActionGenerateHRFlags
	summary := map[string]any{
		"managerId": req.ManagerID,
		"cycleId":   req.CycleID,
		"sessionId": req.SessionID,
	}
	if err := s.decisions.Record(ctx, tenantID, string(req.Action), ModelVersion, EngineConfidence, summary, engineLimitations, humanReview); err != nil {
		// The decision log is for compliance review; losing one entry must
		// not fail an otherwise successful analysis.
		slog.Warn("explainability record failed", "action", req.Action, "tenantId", tenantID, "err", err)
	}
	return result, nil
}

func (s *Service) run(ctx context.Context, tenantID string, req ActionRequest) (any, error) {
	switch req.Action {
	case ActionCalculateTimeliness:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		return s.TimelinessMetrics(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionAnalyzeCommentQuality:
		if req.Comment != "" {
			return s.AnalyzeComment(ctx, tenantID, req.Comment, req.TargetParticipantID)
		}
		if req.ManagerID == "" {
			return nil, ErrCommentRequired
		}
		return s.CommentQualityMetrics(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionCalculateVariance:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		return s.VarianceMetrics(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionCalculateCalibration:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		if req.SessionID == "" {
			return nil, ErrSessionRequired
		}
		return s.CalibrationAlignment(ctx, tenantID, req.ManagerID, req.SessionID)

	case ActionGenerateScorecard:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		return s.GenerateScorecard(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionGenerateHRFlags:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		return s.GenerateHRFlags(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionGenerateCoaching:
		if req.ManagerID == "" {
			return nil, ErrManagerRequired
		}
		return s.CoachingRecommendations(ctx, tenantID, req.ManagerID, req.CycleID)

	case ActionBatchAnalyzeManagers:
		return s.BatchAnalyze(ctx, tenantID, req.CycleID)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}
