package appraisal

const (
	CycleStatusDraft  = "draft"
	CycleStatusActive = "active"
	CycleStatusClosed = "closed"

	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"

	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

const (
	MinScore = 1.0
	MaxScore = 5.0
)
