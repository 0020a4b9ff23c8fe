package analytics

const (
	earlyBonusThresholdDays = 3.0
	earlyBonus              = 10.0
	latePenaltyPerReview    = 5.0
	hoursPerDay             = 24.0
)

// CalculateTimeliness turns raw submission timestamps into an on-time ratio
// and a 0-100 score. An assignment counts as completed when it carries a
// submission timestamp or reached completed status; timing classification
// needs the timestamp, so a completed assignment without one contributes to
// the completion count only.
func CalculateTimeliness(assignments []Assignment) TimelinessMetrics {
	metrics := TimelinessMetrics{TotalAssigned: len(assignments)}

	totalDays := 0.0
	timed := 0
	for _, assignment := range assignments {
		completed := assignment.SubmittedAt != nil || assignment.Status == AssignmentStatusCompleted
		if !completed {
			continue
		}
		metrics.Completed++
		if assignment.SubmittedAt == nil {
			continue
		}

		daysBeforeDeadline := assignment.Deadline.Sub(*assignment.SubmittedAt).Hours() / hoursPerDay
		totalDays += daysBeforeDeadline
		timed++
		if daysBeforeDeadline >= 0 {
			metrics.OnTime++
		} else {
			metrics.Late++
		}
	}

	if timed > 0 {
		metrics.AvgDaysBeforeDeadline = round2(totalDays / float64(timed))
	}

	// A manager with nothing assigned is not penalized.
	if metrics.TotalAssigned == 0 {
		metrics.Score = DefaultTimelinessScore
		return metrics
	}

	base := float64(metrics.OnTime) / float64(metrics.TotalAssigned) * 100
	bonus := 0.0
	if metrics.AvgDaysBeforeDeadline > earlyBonusThresholdDays {
		bonus = earlyBonus
	}
	penalty := float64(metrics.Late) * latePenaltyPerReview
	metrics.Score = round2(clampScore(base + bonus - penalty))
	return metrics
}
