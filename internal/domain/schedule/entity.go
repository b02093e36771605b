package schedule

import (
	"fmt"
	"time"
)

type ShiftType string

const (
	ShiftTypeFixed  ShiftType = "fixed"
	ShiftTypeCustom ShiftType = "custom"
)

type WorkingDays string

const (
	WorkingDaysMonFri WorkingDays = "mon-fri"
	WorkingDaysMonSat WorkingDays = "mon-sat"
	WorkingDaysAll    WorkingDays = "all"
)

// Weekday names indexed Sunday=0 ... Saturday=6.
var WeekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func WeekdayName(d time.Weekday) string {
	return WeekdayNames[d]
}

// Window is an expected start/end pair in HH:MM.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CustomShift holds per-weekday overrides keyed by weekday name. A nil map
// means no custom schedule was configured; an empty one means no working days.
type CustomShift map[string]Window

// Assignment is the shift configuration of one employee.
type Assignment struct {
	ShiftType   ShiftType
	Start       string
	End         string
	WorkingDays WorkingDays
	Custom      CustomShift
}

// Policy holds organisation-wide defaults.
type Policy struct {
	DefaultStart       string
	DefaultEnd         string
	DefaultWorkingDays WorkingDays
	GraceMinutes       int
	Location           *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultStart:       "09:00",
		DefaultEnd:         "17:00",
		DefaultWorkingDays: WorkingDaysMonFri,
		GraceMinutes:       15,
		Location:           time.UTC,
	}
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a 24h HH:MM value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On returns the instant of t on date's calendar day in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
