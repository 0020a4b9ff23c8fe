package appraisal

// EnrollmentPair is one evaluator-employee pairing requested for a cycle.
type EnrollmentPair struct {
	EvaluatorID string `json:"evaluatorId"`
	EmployeeID  string `json:"employeeId"`
}

// DedupeEnrollment drops duplicate pairings and self-reviews, preserving
// first-seen order. Enrolling the same pairing twice is a caller mistake,
// not an error.
func DedupeEnrollment(pairs []EnrollmentPair) []EnrollmentPair {
	seen := map[EnrollmentPair]bool{}
	out := make([]EnrollmentPair, 0, len(pairs))
	for _, pair := range pairs {
		if pair.EvaluatorID == "" || pair.EmployeeID == "" {
			continue
		}
		if pair.EvaluatorID == pair.EmployeeID {
			continue
		}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		out = append(out, pair)
	}
	return out
}

// ValidateSubmission checks a review submission against the rating scale.
func ValidateSubmission(submission ReviewSubmission) error {
	if len(submission.Scores) == 0 {
		return ErrNoScores
	}
	for _, entry := range submission.Scores {
		if entry.Score < MinScore || entry.Score > MaxScore {
			return ErrScoreOutOfRange
		}
	}
	return nil
}
