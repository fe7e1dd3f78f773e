package scheduler

import "errors"

var (
	ErrNoRooms        = errors.New("room list is empty")
	ErrInvalidDays    = errors.New("day count must be positive")
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrDuplicatePhase = errors.New("phase listed more than once")
)
