package analytics

import "time"

// Assignment is the engine's read-only view of one evaluator-employee pairing
// inside a cycle. Owned by the appraisal domain; never mutated here.
type Assignment struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Deadline    time.Time  `json:"deadline"`
}

type CommentRecord struct {
	ID            string `json:"id"`
	ParticipantID string `json:"participantId"`
	Text          string `json:"text"`
	Type          string `json:"type,omitempty"`
}

type Adjustment struct {
	EmployeeID    string   `json:"employeeId"`
	OriginalScore float64  `json:"originalScore"`
	AdjustedScore *float64 `json:"adjustedScore,omitempty"`
}

type TimelinessMetrics struct {
	TotalAssigned         int     `json:"totalAssigned"`
	Completed             int     `json:"completed"`
	OnTime                int     `json:"onTime"`
	Late                  int     `json:"late"`
	AvgDaysBeforeDeadline float64 `json:"avgDaysBeforeDeadline"`
	Score                 float64 `json:"score"`
}

type CommentIssue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type CommentAnalysis struct {
	WordCount          int            `json:"wordCount"`
	SentenceCount      int            `json:"sentenceCount"`
	LengthScore        float64        `json:"lengthScore"`
	DepthScore         float64        `json:"depthScore"`
	SpecificityScore   float64        `json:"specificityScore"`
	ActionabilityScore float64        `json:"actionabilityScore"`
	OverallScore       float64        `json:"overallScore"`
	EvidencePresent    bool           `json:"evidencePresent"`
	ExamplesPresent    bool           `json:"examplesPresent"`
	ForwardLooking     bool           `json:"forwardLooking"`
	BalancedFeedback   bool           `json:"balancedFeedback"`
	Issues             []CommentIssue `json:"issues"`
	Suggestions        []string       `json:"suggestions"`
	Confidence         float64        `json:"confidence"`
}

type CommentBatchMetrics struct {
	CommentsAnalyzed      int     `json:"commentsAnalyzed"`
	AvgLengthScore        float64 `json:"avgLengthScore"`
	AvgDepthScore         float64 `json:"avgDepthScore"`
	AvgSpecificityScore   float64 `json:"avgSpecificityScore"`
	AvgActionabilityScore float64 `json:"avgActionabilityScore"`
	AvgOverallScore       float64 `json:"avgOverallScore"`
	WithEvidence          int     `json:"withEvidence"`
	WithExamples          int     `json:"withExamples"`
}

type VarianceMetrics struct {
	ScoresGiven          int            `json:"scoresGiven"`
	AvgScore             float64        `json:"avgScore"`
	StdDev               float64        `json:"stdDev"`
	Distribution         map[string]int `json:"distribution"`
	DifferentiationScore float64        `json:"differentiationScore"`
}

type CalibrationAlignment struct {
	SessionID           string  `json:"sessionId,omitempty"`
	EmployeesReviewed   int     `json:"employeesReviewed"`
	Unchanged           int     `json:"unchanged"`
	Increased           int     `json:"increased"`
	Decreased           int     `json:"decreased"`
	AvgAdjustment       float64 `json:"avgAdjustment"`
	MaxAdjustment       float64 `json:"maxAdjustment"`
	AdjustmentRate      float64 `json:"adjustmentRate"`
	AlignmentScore      float64 `json:"alignmentScore"`
	DriftPattern        string  `json:"driftPattern"`
	TrainingRecommended bool    `json:"trainingRecommended"`
}

// ScorecardBreakdown carries each sub-calculator's raw output so every
// composite score can be audited back to its inputs.
type ScorecardBreakdown struct {
	Timeliness     TimelinessMetrics     `json:"timeliness"`
	CommentQuality CommentBatchMetrics   `json:"commentQuality"`
	Variance       VarianceMetrics       `json:"variance"`
	Calibration    *CalibrationAlignment `json:"calibration,omitempty"`
}

type CapabilityScorecard struct {
	ManagerID            string             `json:"managerId"`
	CycleID              string             `json:"cycleId,omitempty"`
	TimelinessScore      float64            `json:"timelinessScore"`
	CommentQualityScore  float64            `json:"commentQualityScore"`
	DifferentiationScore float64            `json:"differentiationScore"`
	CalibrationScore     float64            `json:"calibrationScore"`
	OverallScore         float64            `json:"overallScore"`
	Trend                string             `json:"trend"`
	Breakdown            ScorecardBreakdown `json:"breakdown"`
}

type HRFlag struct {
	ID                string    `json:"id,omitempty"`
	ManagerID         string    `json:"managerId"`
	CycleID           string    `json:"cycleId,omitempty"`
	FlagType          string    `json:"flagType"`
	Severity          string    `json:"severity"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	EvidenceData      any       `json:"evidenceData,omitempty"`
	AffectedEmployees int       `json:"affectedEmployeesCount"`
	Resolved          bool      `json:"resolved"`
	ResolvedBy        string    `json:"resolvedBy,omitempty"`
	ResolutionNote    string    `json:"resolutionNote,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// FlagReport is the result of one flag-generation run: the scorecard the
// rules were evaluated against plus the flags newly raised by this run.
// Flags suppressed by the unresolved-duplicate check are counted, not listed.
type FlagReport struct {
	Scorecard  CapabilityScorecard `json:"scorecard"`
	Flags      []HRFlag            `json:"flags"`
	Suppressed int                 `json:"suppressed"`
}

type CoachingRecommendation struct {
	Area        string   `json:"area"`
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"actionItems"`
}

type BatchItemResult struct {
	ManagerID   string `json:"managerId"`
	Success     bool   `json:"success"`
	FlagsRaised int    `json:"flagsRaised"`
	Error       string `json:"error,omitempty"`
}

type BatchResult struct {
	Total    int               `json:"total"`
	Analyzed int               `json:"analyzed"`
	Failed   int               `json:"failed"`
	Results  []BatchItemResult `json:"results"`
}
