package schedule

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

// 2024-03-03 is a Sunday.
func day(offset int) time.Time {
	return time.Date(2024, time.March, 3+offset, 0, 0, 0, 0, time.UTC)
}

func TestResolver_Weekday(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())

	assert.Equal(t, "sunday", r.Weekday(day(0)))
	assert.Equal(t, "wednesday", r.Weekday(day(3)))
	assert.Equal(t, "saturday", r.Weekday(day(6)))
}

func TestResolver_IsWorkingDayPolicies(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())

	tests := []struct {
		name    string
		policy  schedule.WorkingDays
		working [7]bool
	}{
		{"mon-fri", schedule.WorkingDaysMonFri, [7]bool{false, true, true, true, true, true, false}},
		{"mon-sat", schedule.WorkingDaysMonSat, [7]bool{false, true, true, true, true, true, true}},
		{"all", schedule.WorkingDaysAll, [7]bool{true, true, true, true, true, true, true}},
		{"unknown", "weekends", [7]bool{}},
		{"unset falls back to mon-fri", "", [7]bool{false, true, true, true, true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 7; i++ {
				for _, shift := range []schedule.ShiftType{schedule.ShiftTypeFixed, schedule.ShiftTypeCustom} {
					a := schedule.Assignment{ShiftType: shift, WorkingDays: tt.policy}
					assert.Equal(t, tt.working[i], r.IsWorkingDay(a, day(i)), "day %d shift %s", i, shift)
				}
			}
		})
	}
}

func TestResolver_CustomShiftWithoutWednesdayOverride(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())
	a := schedule.Assignment{
		ShiftType:   schedule.ShiftTypeCustom,
		WorkingDays: schedule.WorkingDaysMonFri,
		Custom: schedule.CustomShift{
			"monday":   {Start: "08:00", End: "16:00"},
			"saturday": {Start: "10:00", End: "14:00"},
		},
	}

	assert.True(t, r.IsWorkingDay(a, day(1)))
	assert.False(t, r.IsWorkingDay(a, day(3)))
	assert.True(t, r.IsWorkingDay(a, day(6)))
}

func TestResolver_CustomShiftMapIgnoredForFixedShift(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())
	a := schedule.Assignment{
		ShiftType: schedule.ShiftTypeFixed,
		Start:     "07:30",
		End:       "15:30",
		Custom:    schedule.CustomShift{"saturday": {Start: "10:00", End: "14:00"}},
	}

	assert.False(t, r.IsWorkingDay(a, day(6)))
	assert.Equal(t, schedule.Window{Start: "07:30", End: "15:30"}, r.WindowFor(a, day(6)))
}

func TestResolver_WindowFor(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())
	custom := schedule.CustomShift{"monday": {Start: "08:15", End: "16:45"}}

	tests := []struct {
		name string
		a    schedule.Assignment
		date time.Time
		want schedule.Window
	}{
		{"unset uses defaults", schedule.Assignment{}, day(1), schedule.Window{Start: "09:00", End: "17:00"}},
		{"standard window", schedule.Assignment{Start: "10:00", End: "18:00"}, day(1), schedule.Window{Start: "10:00", End: "18:00"}},
		{"malformed start degrades", schedule.Assignment{Start: "25:99", End: "18:00"}, day(1), schedule.Window{Start: "09:00", End: "18:00"}},
		{"custom override", schedule.Assignment{ShiftType: schedule.ShiftTypeCustom, Start: "10:00", End: "18:00", Custom: custom}, day(1), schedule.Window{Start: "08:15", End: "16:45"}},
		{"custom without override uses standard", schedule.Assignment{ShiftType: schedule.ShiftTypeCustom, Start: "10:00", End: "18:00", Custom: custom}, day(2), schedule.Window{Start: "10:00", End: "18:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.WindowFor(tt.a, tt.date))
		})
	}
}

func TestResolver_PolicyDefaultsAreInjected(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	r := NewResolver(schedule.Policy{
		DefaultStart:       "08:00",
		DefaultEnd:         "16:00",
		DefaultWorkingDays: schedule.WorkingDaysMonSat,
		GraceMinutes:       10,
		Location:           loc,
	})

	date := time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)
	assert.True(t, r.IsWorkingDay(schedule.Assignment{}, date))
	assert.Equal(t, schedule.Window{Start: "08:00", End: "16:00"}, r.WindowFor(schedule.Assignment{}, date))
	assert.Equal(t, 10, r.GraceMinutes())

	start, end := r.ExpectedTimes(schedule.Assignment{}, date)
	assert.Equal(t, time.Date(2024, time.March, 9, 8, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.March, 9, 16, 0, 0, 0, loc), end)
}

func TestResolver_MalformedPolicyFallsBack(t *testing.T) {
	r := NewResolver(schedule.Policy{DefaultStart: "nine", DefaultEnd: "", GraceMinutes: -5})

	assert.Equal(t, schedule.Window{Start: "09:00", End: "17:00"}, r.WindowFor(schedule.Assignment{}, day(1)))
	assert.Equal(t, 0, r.GraceMinutes())
	assert.Equal(t, time.UTC, r.Location())
}

func TestResolver_WindowTimes(t *testing.T) {
	r := NewResolver(schedule.DefaultPolicy())
	date := time.Date(2024, time.March, 5, 13, 0, 0, 0, time.UTC)

	start, end := r.WindowTimes(schedule.Window{Start: "09:30", End: "bogus"}, date)
	assert.Equal(t, time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 5, 17, 0, 0, 0, time.UTC), end)
}
