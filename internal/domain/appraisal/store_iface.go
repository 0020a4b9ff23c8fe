package appraisal

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateCycle(ctx context.Context, tenantID, name string, startDate, endDate, evaluationDeadline time.Time) (string, error)
	ListCycles(ctx context.Context, tenantID string) ([]ReviewCycle, error)
	CycleByID(ctx context.Context, tenantID, cycleID string) (ReviewCycle, error)
	UpdateCycleStatus(ctx context.Context, tenantID, cycleID, status string) error

	CreateAssignments(ctx context.Context, tenantID, cycleID string, deadline time.Time, pairs []EnrollmentPair) (int, error)
	ListAssignments(ctx context.Context, tenantID, cycleID, evaluatorID string) ([]ReviewAssignment, error)
	AssignmentByID(ctx context.Context, tenantID, assignmentID string) (ReviewAssignment, error)
	SaveSubmission(ctx context.Context, tenantID, assignmentID string, submission ReviewSubmission, submittedAt time.Time) error

	CreateSession(ctx context.Context, tenantID, cycleID, name string) (string, error)
	ListSessions(ctx context.Context, tenantID, cycleID string) ([]CalibrationSession, error)
	SessionStatus(ctx context.Context, tenantID, sessionID string) (string, error)
	UpsertAdjustments(ctx context.Context, tenantID, sessionID string, adjustments []CalibrationAdjustment) (int, error)
	CloseSession(ctx context.Context, tenantID, sessionID string) error
}
