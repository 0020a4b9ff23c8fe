package analytics

import "math"

// CalculateAlignment compares a manager's original scores against
// post-calibration adjustments for the employees that manager evaluated.
// Adjustments for other managers' employees are filtered out. A missing
// adjusted score means calibration left the rating untouched.
func CalculateAlignment(adjustments []Adjustment, evaluated map[string]bool) CalibrationAlignment {
	alignment := CalibrationAlignment{DriftPattern: DriftAligned}

	var totalAbs float64
	for _, adjustment := range adjustments {
		if !evaluated[adjustment.EmployeeID] {
			continue
		}
		alignment.EmployeesReviewed++

		diff := 0.0
		if adjustment.AdjustedScore != nil {
			diff = *adjustment.AdjustedScore - adjustment.OriginalScore
		}
		switch {
		case diff == 0:
			alignment.Unchanged++
		case diff > 0:
			alignment.Increased++
		default:
			alignment.Decreased++
		}
		abs := math.Abs(diff)
		totalAbs += abs
		if abs > alignment.MaxAdjustment {
			alignment.MaxAdjustment = abs
		}
	}

	// No overlap with the calibration session means nothing was adjusted.
	if alignment.EmployeesReviewed == 0 {
		alignment.AlignmentScore = 100
		return alignment
	}

	reviewed := float64(alignment.EmployeesReviewed)
	alignment.AvgAdjustment = round2(totalAbs / reviewed)
	alignment.MaxAdjustment = round2(alignment.MaxAdjustment)
	alignment.AdjustmentRate = round2(float64(alignment.Increased+alignment.Decreased) / reviewed * 100)
	alignment.AlignmentScore = round2(100 - alignment.AdjustmentRate)
	alignment.DriftPattern = classifyDrift(alignment.Increased, alignment.Decreased, alignment.AdjustmentRate)
	alignment.TrainingRecommended = alignment.AlignmentScore < trainingRecommendedBelow
	return alignment
}

// classifyDrift is evaluated in priority order; the first match wins.
func classifyDrift(increased, decreased int, adjustmentRate float64) string {
	switch {
	case increased > decreased*2:
		// Calibration kept raising scores: the manager rates low.
		return DriftConsistentlyLow
	case decreased > increased*2:
		return DriftConsistentlyHigh
	case adjustmentRate > 30:
		return DriftVariable
	default:
		return DriftAligned
	}
}
