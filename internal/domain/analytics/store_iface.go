package analytics

import "context"

type StoreAPI interface {
	AssignmentsForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]Assignment, error)
	CommentsForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]CommentRecord, error)
	ScoresForManager(ctx context.Context, tenantID, managerID, cycleID string) ([]float64, error)
	AdjustmentsForSession(ctx context.Context, tenantID, sessionID string) ([]Adjustment, error)
	EvaluatedEmployeeIDs(ctx context.Context, tenantID, managerID string) (map[string]bool, error)
	ManagersWithAssignments(ctx context.Context, tenantID, cycleID string) ([]string, error)

	LatestAlignment(ctx context.Context, tenantID, managerID string) (CalibrationAlignment, bool, error)
	UpsertAlignment(ctx context.Context, tenantID, managerID, sessionID string, alignment CalibrationAlignment) error
	UpsertCommentAnalysis(ctx context.Context, tenantID, participantID string, analysis CommentAnalysis) error
	UpsertScorecard(ctx context.Context, tenantID string, scorecard CapabilityScorecard) error

	HasUnresolvedFlag(ctx context.Context, tenantID, managerID, cycleID, flagType string) (bool, error)
	InsertFlag(ctx context.Context, tenantID string, flag HRFlag) (string, error)
	ListFlags(ctx context.Context, tenantID, managerID string, resolved *bool, limit, offset int) ([]HRFlag, error)
	ResolveFlag(ctx context.Context, tenantID, flagID, resolvedBy, note string) error
}
