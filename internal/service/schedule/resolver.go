package schedule

import (
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
)

var (
	fallbackStart = schedule.TimeOfDay{Hour: 9}
	fallbackEnd   = schedule.TimeOfDay{Hour: 17}
)

type Resolver struct {
	defaultStart schedule.TimeOfDay
	defaultEnd   schedule.TimeOfDay
	workingDays  schedule.WorkingDays
	graceMinutes int
	location     *time.Location
}

func NewResolver(policy schedule.Policy) *Resolver {
	r := &Resolver{
		defaultStart: fallbackStart,
		defaultEnd:   fallbackEnd,
		workingDays:  policy.DefaultWorkingDays,
		graceMinutes: policy.GraceMinutes,
		location:     policy.Location,
	}

	if start, err := schedule.ParseTimeOfDay(policy.DefaultStart); err == nil {
		r.defaultStart = start
	} else {
		slog.Warn("invalid default shift start, using 09:00", "error", err)
	}
	if end, err := schedule.ParseTimeOfDay(policy.DefaultEnd); err == nil {
		r.defaultEnd = end
	} else {
		slog.Warn("invalid default shift end, using 17:00", "error", err)
	}
	if r.workingDays == "" {
		r.workingDays = schedule.WorkingDaysMonFri
	}
	if r.location == nil {
		r.location = time.UTC
	}
	if r.graceMinutes < 0 {
		r.graceMinutes = 0
	}

	return r
}

// Weekday maps date to its Sunday-first weekday name.
func (r *Resolver) Weekday(date time.Time) string {
	return schedule.WeekdayName(date.Weekday())
}

// IsWorkingDay implements schedule.ShiftResolver.
func (r *Resolver) IsWorkingDay(a schedule.Assignment, date time.Time) bool {
	if a.ShiftType == schedule.ShiftTypeCustom && a.Custom != nil {
		_, ok := a.Custom[r.Weekday(date)]
		return ok
	}

	policy := a.WorkingDays
	if policy == "" {
		policy = r.workingDays
	}

	day := int(date.Weekday())
	switch policy {
	case schedule.WorkingDaysMonFri:
		return day >= 1 && day <= 5
	case schedule.WorkingDaysMonSat:
		return day >= 1 && day <= 6
	case schedule.WorkingDaysAll:
		return true
	default:
		return false
	}
}

// WindowFor implements schedule.ShiftResolver.
func (r *Resolver) WindowFor(a schedule.Assignment, date time.Time) schedule.Window {
	start, end := r.times(a, date)
	return schedule.Window{Start: start.String(), End: end.String()}
}

// ExpectedTimes implements schedule.ShiftResolver.
func (r *Resolver) ExpectedTimes(a schedule.Assignment, date time.Time) (time.Time, time.Time) {
	start, end := r.times(a, date)
	return start.On(date), end.On(date)
}

// Location implements schedule.ShiftResolver.
func (r *Resolver) Location() *time.Location {
	return r.location
}

// GraceMinutes implements schedule.ShiftResolver.
func (r *Resolver) GraceMinutes() int {
	return r.graceMinutes
}

func (r *Resolver) times(a schedule.Assignment, date time.Time) (schedule.TimeOfDay, schedule.TimeOfDay) {
	startRaw, endRaw := a.Start, a.End
	if a.ShiftType == schedule.ShiftTypeCustom {
		if override, ok := a.Custom[r.Weekday(date)]; ok {
			startRaw, endRaw = override.Start, override.End
		}
	}

	return r.parseOr(startRaw, r.defaultStart), r.parseOr(endRaw, r.defaultEnd)
}

func (r *Resolver) parseOr(raw string, fallback schedule.TimeOfDay) schedule.TimeOfDay {
	if raw == "" {
		return fallback
	}
	t, err := schedule.ParseTimeOfDay(raw)
	if err != nil {
		return fallback
	}
	return t
}

// WindowTimes converts a stored window back into instants on date's calendar
// day, falling back to the policy defaults for malformed values.
func (r *Resolver) WindowTimes(w schedule.Window, date time.Time) (time.Time, time.Time) {
	return r.parseOr(w.Start, r.defaultStart).On(date), r.parseOr(w.End, r.defaultEnd).On(date)
}
