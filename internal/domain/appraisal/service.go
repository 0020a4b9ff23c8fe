package appraisal

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) CreateCycle(ctx context.Context, tenantID, name string, startDate, endDate, evaluationDeadline time.Time) (string, error) {
	id, err := s.store.CreateCycle(ctx, tenantID, name, startDate, endDate, evaluationDeadline)
	if err != nil {
		return "", fmt.Errorf("create review cycle: %w", err)
	}
	slog.Info("review cycle created", "tenantId", tenantID, "cycleId", id, "name", name)
	return id, nil
}

func (s *Service) ListCycles(ctx context.Context, tenantID string) ([]ReviewCycle, error) {
	return s.store.ListCycles(ctx, tenantID)
}

func (s *Service) CycleByID(ctx context.Context, tenantID, cycleID string) (ReviewCycle, error) {
	return s.store.CycleByID(ctx, tenantID, cycleID)
}

func (s *Service) CloseCycle(ctx context.Context, tenantID, cycleID string) error {
	return s.store.UpdateCycleStatus(ctx, tenantID, cycleID, CycleStatusClosed)
}

// EnrollParticipants creates pending assignments for each evaluator/employee
// pair. Duplicate pairs and self reviews are dropped up front; pairs already
// enrolled are skipped by the store, so re-running an enrollment is safe.
func (s *Service) EnrollParticipants(ctx context.Context, tenantID, cycleID string, pairs []EnrollmentPair) (int, error) {
	cycle, err := s.store.CycleByID(ctx, tenantID, cycleID)
	if err != nil {
		return 0, err
	}
	if cycle.Status != CycleStatusActive {
		return 0, ErrCycleClosed
	}

	deduped := DedupeEnrollment(pairs)
	if len(deduped) == 0 {
		return 0, nil
	}

	created, err := s.store.CreateAssignments(ctx, tenantID, cycleID, cycle.EvaluationDeadline, deduped)
	if err != nil {
		return created, fmt.Errorf("enroll participants: %w", err)
	}
	slog.Info("participants enrolled", "tenantId", tenantID, "cycleId", cycleID, "requested", len(pairs), "created", created)
	return created, nil
}

func (s *Service) ListAssignments(ctx context.Context, tenantID, cycleID, evaluatorID string) ([]ReviewAssignment, error) {
	return s.store.ListAssignments(ctx, tenantID, cycleID, evaluatorID)
}

// SubmitReview validates and stores a completed review. The assignment must
// still be open and its cycle active; submissions are final.
func (s *Service) SubmitReview(ctx context.Context, tenantID, assignmentID string, submission ReviewSubmission) error {
	if err := ValidateSubmission(submission); err != nil {
		return err
	}

	assignment, err := s.store.AssignmentByID(ctx, tenantID, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status == AssignmentStatusCompleted {
		return ErrAlreadySubmitted
	}

	cycle, err := s.store.CycleByID(ctx, tenantID, assignment.CycleID)
	if err != nil {
		return err
	}
	if cycle.Status != CycleStatusActive {
		return ErrCycleClosed
	}

	if err := s.store.SaveSubmission(ctx, tenantID, assignmentID, submission, time.Now().UTC()); err != nil {
		return fmt.Errorf("save review submission: %w", err)
	}
	slog.Info("review submitted", "tenantId", tenantID, "assignmentId", assignmentID,
		"scores", len(submission.Scores), "comments", len(submission.Comments))
	return nil
}

func (s *Service) CreateSession(ctx context.Context, tenantID, cycleID, name string) (string, error) {
	if _, err := s.store.CycleByID(ctx, tenantID, cycleID); err != nil {
		return "", err
	}
	id, err := s.store.CreateSession(ctx, tenantID, cycleID, name)
	if err != nil {
		return "", fmt.Errorf("create calibration session: %w", err)
	}
	slog.Info("calibration session created", "tenantId", tenantID, "cycleId", cycleID, "sessionId", id)
	return id, nil
}

func (s *Service) ListSessions(ctx context.Context, tenantID, cycleID string) ([]CalibrationSession, error) {
	return s.store.ListSessions(ctx, tenantID, cycleID)
}

// RecordAdjustments upserts calibration adjustments for an open session.
// Re-recording the same employee replaces the earlier adjustment.
func (s *Service) RecordAdjustments(ctx context.Context, tenantID, sessionID string, adjustments []CalibrationAdjustment) (int, error) {
	status, err := s.store.SessionStatus(ctx, tenantID, sessionID)
	if err != nil {
		return 0, err
	}
	if status != SessionStatusOpen {
		return 0, ErrSessionClosed
	}
	recorded, err := s.store.UpsertAdjustments(ctx, tenantID, sessionID, adjustments)
	if err != nil {
		return recorded, fmt.Errorf("record adjustments: %w", err)
	}
	return recorded, nil
}

func (s *Service) CloseSession(ctx context.Context, tenantID, sessionID string) error {
	return s.store.CloseSession(ctx, tenantID, sessionID)
}
