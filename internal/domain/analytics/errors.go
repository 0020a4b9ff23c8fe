package analytics

import "errors"

var (
	ErrUnknownAction   = errors.New("unknown analytics action")
	ErrManagerRequired = errors.New("manager id is required")
	ErrSessionRequired = errors.New("calibration session id is required")
	ErrCommentRequired = errors.New("comment text is required")
	ErrFlagNotFound    = errors.New("flag not found or already resolved")
)
