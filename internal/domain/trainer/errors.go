package trainer

import "errors"

var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("trainer application not found")
	ErrAlreadyApplied  = errors.New("already applied")
	ErrAlreadyApproved = errors.New("trainer already approved")
	ErrUserNotFound    = errors.New("user not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrNoFeedback      = errors.New("no rejection feedback")
)
