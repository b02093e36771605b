package schedule

import "errors"

var (
	ErrInvalidTimeOfDay   = errors.New("time of day must use HH:MM")
	ErrInvalidShiftType   = errors.New("shift type must be 'fixed' or 'custom'")
	ErrInvalidWeekdayName = errors.New("custom shift keys must be weekday names")
)
