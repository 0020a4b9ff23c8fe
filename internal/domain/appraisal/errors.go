package appraisal

import "errors"

var (
	ErrCycleNotFound      = errors.New("review cycle not found")
	ErrCycleClosed        = errors.New("review cycle is closed")
	ErrAssignmentNotFound = errors.New("review assignment not found")
	ErrAlreadySubmitted   = errors.New("review already submitted")
	ErrNoScores           = errors.New("submission requires at least one score")
	ErrScoreOutOfRange    = errors.New("score outside the 1-5 rating scale")
	ErrSelfReview         = errors.New("evaluator cannot review themselves")
	ErrSessionNotFound    = errors.New("calibration session not found")
	ErrSessionClosed      = errors.New("calibration session is closed")
)
