package employee

import (
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type LifecycleStatus string

const (
	LifecycleActive     LifecycleStatus = "active"
	LifecycleSuspended  LifecycleStatus = "suspended"
	LifecycleResigned   LifecycleStatus = "resigned"
	LifecycleTerminated LifecycleStatus = "terminated"
)

var LifecycleStatusValues = []string{
	string(LifecycleActive),
	string(LifecycleSuspended),
	string(LifecycleResigned),
	string(LifecycleTerminated),
}

// Separated reports whether the status ends employment and triggers a
// final settlement.
func (s LifecycleStatus) Separated() bool {
	return s == LifecycleResigned || s == LifecycleTerminated
}

type Employee struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email,omitempty"`
	Department        string               `json:"department"`
	Role              auth.Role            `json:"role"`
	MonthlySalary     decimal.Decimal      `json:"monthly_salary"`
	ShiftType         schedule.ShiftType   `json:"shift_type"`
	ShiftStartTime    string               `json:"shift_start_time,omitempty"`
	ShiftEndTime      string               `json:"shift_end_time,omitempty"`
	WeeklyWorkingDays schedule.WorkingDays `json:"weekly_working_days,omitempty"`
	// CustomShift keeps null and {} distinct: nil means no custom schedule,
	// an empty map means no working days.
	CustomShift        schedule.CustomShift `json:"custom_shift"`
	AttendanceEnabled  *bool                `json:"attendance_enabled,omitempty"`
	LeaveEnabled       *bool                `json:"leave_enabled,omitempty"`
	LifecycleStatus    LifecycleStatus      `json:"lifecycle_status"`
	LifecycleReason    string               `json:"lifecycle_reason,omitempty"`
	LifecycleChangedAt *time.Time           `json:"lifecycle_changed_at,omitempty"`
	LifecycleChangedBy string               `json:"lifecycle_changed_by,omitempty"`
	DateOfBirth        *string              `json:"date_of_birth,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`

	Version int64 `json:"-"`
}

// Shift returns the employee's shift configuration for the resolver.
func (e Employee) Shift() schedule.Assignment {
	return schedule.Assignment{
		ShiftType:   e.ShiftType,
		Start:       e.ShiftStartTime,
		End:         e.ShiftEndTime,
		WorkingDays: e.WeeklyWorkingDays,
		Custom:      e.CustomShift,
	}
}

// AttendanceAllowed is false only when attendance was explicitly disabled.
func (e Employee) AttendanceAllowed() bool {
	return e.AttendanceEnabled == nil || *e.AttendanceEnabled
}

func (e Employee) LeaveAllowed() bool {
	return e.LeaveEnabled == nil || *e.LeaveEnabled
}
