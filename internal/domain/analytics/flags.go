package analytics

import (
	"context"
	"fmt"
)

type flagRule struct {
	Type        string
	Severity    string
	Title       string
	Matches     func(sc CapabilityScorecard) bool
	Description func(sc CapabilityScorecard) string
	Affected    func(sc CapabilityScorecard) int
	Evidence    func(sc CapabilityScorecard) any
}

// The fixed rule set evaluated on every flag-generation run. Each rule is
// idempotent: a matching rule only inserts when no unresolved flag of the
// same type already exists for the (manager, cycle) pair.
var flagRules = []flagRule{
	{
		Type:     FlagPoorTimeliness,
		Severity: SeverityMedium,
		Title:    "Reviews submitted late",
		Matches: func(sc CapabilityScorecard) bool {
			return sc.TimelinessScore < thresholdPoorTimeliness
		},
		Description: func(sc CapabilityScorecard) string {
			return fmt.Sprintf("Timeliness score %.2f: %d of %d reviews were submitted after the deadline.",
				sc.TimelinessScore, sc.Breakdown.Timeliness.Late, sc.Breakdown.Timeliness.TotalAssigned)
		},
		Affected: func(sc CapabilityScorecard) int { return sc.Breakdown.Timeliness.Late },
		Evidence: func(sc CapabilityScorecard) any { return sc.Breakdown.Timeliness },
	},
	{
		Type:     FlagLowCommentQuality,
		Severity: SeverityMedium,
		Title:    "Written feedback below standard",
		Matches: func(sc CapabilityScorecard) bool {
			return sc.CommentQualityScore < thresholdLowCommentQuality
		},
		Description: func(sc CapabilityScorecard) string {
			return fmt.Sprintf("Average comment quality score %.2f across %d comments falls below the acceptable threshold.",
				sc.CommentQualityScore, sc.Breakdown.CommentQuality.CommentsAnalyzed)
		},
		Affected: func(sc CapabilityScorecard) int { return sc.Breakdown.CommentQuality.CommentsAnalyzed },
		Evidence: func(sc CapabilityScorecard) any { return sc.Breakdown.CommentQuality },
	},
	{
		Type:     FlagExtremeLeniency,
		Severity: SeverityMedium,
		Title:    "Ratings clustered at the top of the scale",
		Matches: func(sc CapabilityScorecard) bool {
			v := sc.Breakdown.Variance
			return v.ScoresGiven > 0 && v.AvgScore > thresholdLenientAvg && v.StdDev < thresholdNarrowStdDev
		},
		Description: func(sc CapabilityScorecard) string {
			v := sc.Breakdown.Variance
			return fmt.Sprintf("Average score given is %.2f with a standard deviation of %.2f: nearly every employee received a top rating.",
				v.AvgScore, v.StdDev)
		},
		Affected: func(sc CapabilityScorecard) int { return sc.Breakdown.Variance.ScoresGiven },
		Evidence: func(sc CapabilityScorecard) any { return sc.Breakdown.Variance },
	},
	{
		Type:     FlagExtremeSeverity,
		Severity: SeverityHigh,
		Title:    "Ratings clustered at the bottom of the scale",
		Matches: func(sc CapabilityScorecard) bool {
			v := sc.Breakdown.Variance
			return v.ScoresGiven > 0 && v.AvgScore < thresholdSevereAvg && v.StdDev < thresholdNarrowStdDev
		},
		Description: func(sc CapabilityScorecard) string {
			v := sc.Breakdown.Variance
			return fmt.Sprintf("Average score given is %.2f with a standard deviation of %.2f: nearly every employee received a bottom rating.",
				v.AvgScore, v.StdDev)
		},
		Affected: func(sc CapabilityScorecard) int { return sc.Breakdown.Variance.ScoresGiven },
		Evidence: func(sc CapabilityScorecard) any { return sc.Breakdown.Variance },
	},
	{
		Type:     FlagTrainingNeeded,
		Severity: SeverityMedium,
		Title:    "Overall review capability below standard",
		Matches: func(sc CapabilityScorecard) bool {
			return sc.OverallScore < thresholdTrainingNeeded
		},
		Description: func(sc CapabilityScorecard) string {
			return fmt.Sprintf("Overall capability score %.2f indicates the manager needs review training before the next cycle.",
				sc.OverallScore)
		},
		Affected: func(sc CapabilityScorecard) int { return sc.Breakdown.Timeliness.TotalAssigned },
		Evidence: func(sc CapabilityScorecard) any { return sc },
	},
}

// GenerateHRFlags rebuilds the scorecard and evaluates every flag rule
// against it. Safe to re-run: an unresolved flag of the same type suppresses
// a duplicate insert.
func (s *Service) GenerateHRFlags(ctx context.Context, tenantID, managerID, cycleID string) (FlagReport, error) {
	scorecard, err := s.GenerateScorecard(ctx, tenantID, managerID, cycleID)
	if err != nil {
		return FlagReport{}, err
	}

	report := FlagReport{Scorecard: scorecard, Flags: []HRFlag{}}
	for _, rule := range flagRules {
		if !rule.Matches(scorecard) {
			continue
		}

		exists, err := s.store.HasUnresolvedFlag(ctx, tenantID, managerID, cycleID, rule.Type)
		if err != nil {
			return FlagReport{}, fmt.Errorf("check existing %s flag: %w", rule.Type, err)
		}
		if exists {
			report.Suppressed++
			continue
		}

		flag := HRFlag{
			ManagerID:         managerID,
			CycleID:           cycleID,
			FlagType:          rule.Type,
			Severity:          rule.Severity,
			Title:             rule.Title,
			Description:       rule.Description(scorecard),
			EvidenceData:      rule.Evidence(scorecard),
			AffectedEmployees: rule.Affected(scorecard),
		}
		id, err := s.store.InsertFlag(ctx, tenantID, flag)
		if err != nil {
			return FlagReport{}, fmt.Errorf("insert %s flag: %w", rule.Type, err)
		}
		flag.ID = id
		report.Flags = append(report.Flags, flag)
	}
	return report, nil
}
