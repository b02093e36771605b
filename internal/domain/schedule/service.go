package schedule

import "time"

// ShiftResolver answers working-day and expected-window questions for one
// employee and calendar date. It never fails; bad configuration degrades to
// policy defaults.
type ShiftResolver interface {
	IsWorkingDay(a Assignment, date time.Time) bool
	WindowFor(a Assignment, date time.Time) Window
	// ExpectedTimes resolves WindowFor into instants on date's calendar day.
	ExpectedTimes(a Assignment, date time.Time) (start, end time.Time)
	// WindowTimes resolves a previously stored window on date's calendar day.
	WindowTimes(w Window, date time.Time) (start, end time.Time)
	Location() *time.Location
	GraceMinutes() int
}
