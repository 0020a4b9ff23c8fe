package analytics

const (
	ModelVersion     = "capability-engine-v1"
	EngineConfidence = 85.0
)

const (
	ActionCalculateTimeliness   Action = "calculate_timeliness_metrics"
	ActionAnalyzeCommentQuality Action = "analyze_comment_quality"
	ActionCalculateVariance     Action = "calculate_score_variance"
	ActionCalculateCalibration  Action = "calculate_calibration_alignment"
	ActionGenerateScorecard     Action = "generate_capability_scorecard"
	ActionGenerateHRFlags       Action = "generate_hr_flags"
	ActionGenerateCoaching      Action = "generate_coaching_recommendations"
	ActionBatchAnalyzeManagers  Action = "batch_analyze_managers"
)

// Assignment statuses as persisted by the appraisal domain.
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
)

const (
	FlagPoorTimeliness    = "poor_timeliness"
	FlagLowCommentQuality = "low_comment_quality"
	FlagExtremeLeniency   = "extreme_leniency"
	FlagExtremeSeverity   = "extreme_severity"
	FlagTrainingNeeded    = "training_needed"

	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

const (
	DriftAligned          = "aligned"
	DriftVariable         = "variable"
	DriftConsistentlyLow  = "consistently_low"
	DriftConsistentlyHigh = "consistently_high"

	TrendStable    = "stable"
	TrendDeclining = "declining"
)

const (
	IssueTooShort         = "too_short"
	IssueNoEvidence       = "no_evidence"
	IssueNotDevelopmental = "not_developmental"
	IssueUnbalanced       = "unbalanced"
)

const (
	AreaTimeliness      = "timeliness"
	AreaCommentQuality  = "comment_quality"
	AreaDifferentiation = "differentiation"
	AreaCalibration     = "calibration_alignment"
)

// Scorecard composite weights. They must sum to exactly 1.0; the overall
// score is a convex combination of the four sub-scores.
const (
	WeightTimeliness      = 0.25
	WeightCommentQuality  = 0.30
	WeightDifferentiation = 0.20
	WeightCalibration     = 0.25
)

// Comment sub-score weights for the overall comment quality score.
const (
	weightLength        = 0.15
	weightDepth         = 0.30
	weightSpecificity   = 0.30
	weightActionability = 0.25
)

// Reference standard deviation a well-differentiated manager is expected to
// show on a 1-5 rating scale.
const idealStdDev = 0.8

// Neutral defaults used when a manager has no data for a signal. Absence of
// data must not read as failure.
const (
	DefaultTimelinessScore      = 100.0
	DefaultCommentQualityScore  = 50.0
	DefaultDifferentiationScore = 50.0
	DefaultCalibrationScore     = 50.0
)

const trainingRecommendedBelow = 70.0

// Flag rule thresholds (4.6).
const (
	thresholdPoorTimeliness    = 80.0
	thresholdLowCommentQuality = 50.0
	thresholdLenientAvg        = 4.5
	thresholdSevereAvg         = 2.5
	thresholdNarrowStdDev      = 0.3
	thresholdTrainingNeeded    = 60.0
)

var evidenceKeywords = []string{
	"achieved", "delivered", "completed", "increased", "decreased",
	"improved", "reduced", "exceeded", "measured", "demonstrated",
	"accomplished", "launched", "resolved", "generated",
}

var examplePhrases = []string{
	"for example", "for instance", "specifically", "such as",
	"in particular", "e.g.", "one time", "last quarter", "last month",
}

var forwardLookingKeywords = []string{
	"should", "could", "recommend", "suggest", "going forward",
	"next quarter", "next year", "will benefit", "develop", "focus on",
	"consider", "improve", "opportunity to", "plan to",
}

var positiveToneKeywords = []string{
	"excellent", "great", "strong", "outstanding", "impressive",
	"effective", "reliable", "consistent", "well", "good",
}

var developmentToneKeywords = []string{
	"improve", "develop", "growth", "work on", "needs", "opportunity",
	"better", "focus", "struggle", "gap",
}

var genericPhrases = []string{
	"good job", "great job", "well done", "great work", "nice work", "good work",
	"keep it up", "doing well", "no complaints",
}

var actionVerbs = []string{
	"should", "could", "recommend", "suggest", "consider",
	"focus", "develop", "improve",
}

var issueSuggestions = map[string]string{
	IssueTooShort:         "Expand the comment to at least 30 words so the employee gets substantive feedback.",
	IssueNoEvidence:       "Reference concrete outcomes or achievements to back up the assessment.",
	IssueNotDevelopmental: "Add forward-looking guidance: what the employee should focus on or develop next.",
	IssueUnbalanced:       "Balance the feedback with both strengths and development areas.",
}

var issueDescriptions = map[string]string{
	IssueTooShort:         "comment is too short to be meaningful",
	IssueNoEvidence:       "no concrete evidence or outcomes referenced",
	IssueNotDevelopmental: "no forward-looking or developmental guidance",
	IssueUnbalanced:       "feedback covers only one side (praise or criticism)",
}

// Documented limitations recorded with every explainability entry. The engine
// is deterministic and rule-based; these caveats ship with each decision so
// reviewers know what the scores can and cannot claim.
var engineLimitations = []string{
	"text heuristics are keyword-based and language-dependent (English only)",
	"scores reflect observable review behavior, not employee outcomes",
	"calibration analysis requires a completed calibration session to be meaningful",
	"small sample sizes (few reviews or comments) reduce reliability of aggregates",
}

type coachingArea struct {
	Area          string
	Threshold     float64
	HighThreshold float64
	Title         string
	Description   string
	ActionItems   []string
}

var coachingAreas = []coachingArea{
	{
		Area:          AreaTimeliness,
		Threshold:     80,
		HighThreshold: 60,
		Title:         "Improve review timeliness",
		Description:   "Reviews are being submitted late or close to the deadline, which delays downstream calibration and compensation decisions.",
		ActionItems: []string{
			"Block recurring calendar time for review writing at cycle start",
			"Draft reviews incrementally instead of in one sitting",
			"Aim to submit at least three days before the deadline",
		},
	},
	{
		Area:          AreaCommentQuality,
		Threshold:     70,
		HighThreshold: 50,
		Title:         "Strengthen written feedback",
		Description:   "Written comments lack the depth, specificity, or actionability employees need to act on their reviews.",
		ActionItems: []string{
			"Cite at least one concrete outcome per competency",
			"Use the situation-behavior-impact structure for examples",
			"Close every comment with a forward-looking recommendation",
			"Cover both strengths and development areas",
		},
	},
	{
		Area:          AreaDifferentiation,
		Threshold:     70,
		HighThreshold: 50,
		Title:         "Differentiate ratings across the team",
		Description:   "Scores cluster too tightly or spread implausibly wide, which suggests ratings are not tracking individual performance differences.",
		ActionItems: []string{
			"Rank employees on each competency before assigning scores",
			"Anchor each rating level to an observable behavior",
			"Review the final distribution before submitting",
		},
	},
	{
		Area:          AreaCalibration,
		Threshold:     70,
		HighThreshold: 50,
		Title:         "Align ratings with calibration outcomes",
		Description:   "Calibration frequently adjusts this manager's scores, indicating a systematic rating bias relative to peers.",
		ActionItems: []string{
			"Review past calibration adjustments and the rationale recorded for each",
			"Compare draft ratings with a peer manager before submission",
			"Attend the next rating-standards calibration workshop",
		},
	},
}
