package attendance

import "errors"

var (
	ErrAttendanceDisabled    = errors.New("attendance is disabled for this employee")
	ErrAlreadyCheckedIn      = errors.New("already checked in for this date")
	ErrAlreadyCheckedOut     = errors.New("already checked out for this date")
	ErrNotCheckedIn          = errors.New("no check-in found for this date")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time is before check-in time")
	ErrInvalidDateRange      = errors.New("end_date must not be before start_date")
)
