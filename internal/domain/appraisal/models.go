package appraisal

import "time"

type ReviewCycle struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	EvaluationDeadline time.Time `json:"evaluationDeadline"`
	Status             string    `json:"status"`
}

type ReviewAssignment struct {
	ID          string     `json:"id"`
	CycleID     string     `json:"cycleId"`
	EvaluatorID string     `json:"evaluatorId"`
	EmployeeID  string     `json:"employeeId"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Deadline    time.Time  `json:"deadline"`
}

// ReviewSubmission is a manager's completed review for one assignment:
// per-competency scores plus free-text comments.
type ReviewSubmission struct {
	Scores   []ScoreEntry   `json:"scores"`
	Comments []CommentEntry `json:"comments"`
}

type ScoreEntry struct {
	Competency string  `json:"competency"`
	Score      float64 `json:"score"`
}

type CommentEntry struct {
	Type string `json:"type,omitempty"`
	Body string `json:"body"`
}

type CalibrationSession struct {
	ID        string    `json:"id"`
	CycleID   string    `json:"cycleId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type CalibrationAdjustment struct {
	EmployeeID    string   `json:"employeeId"`
	OriginalScore float64  `json:"originalScore"`
	AdjustedScore *float64 `json:"adjustedScore,omitempty"`
}
