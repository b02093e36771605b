package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	Department string
	Status     string
}

type CreateEmployeeRequest struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	Department        string               `json:"department"`
	Role              auth.Role            `json:"role"`
	MonthlySalary     decimal.Decimal      `json:"monthly_salary"`
	ShiftType         schedule.ShiftType   `json:"shift_type"`
	ShiftStartTime    string               `json:"shift_start_time"`
	ShiftEndTime      string               `json:"shift_end_time"`
	WeeklyWorkingDays schedule.WorkingDays `json:"weekly_working_days"`
	CustomShift       schedule.CustomShift `json:"custom_shift"`
	DateOfBirth       *string              `json:"date_of_birth,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID != "" && !validator.IsValidIdentifier(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id may only contain letters, digits and . _ @ -"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Role == "" {
		r.Role = auth.RoleEmployee
	}
	if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be admin, manager or employee"})
	}
	if r.ShiftType == "" {
		r.ShiftType = schedule.ShiftTypeFixed
	}

	errs = append(errs, validateMoney("monthly_salary", r.MonthlySalary)...)
	errs = append(errs, validateShift(r.ShiftType, r.ShiftStartTime, r.ShiftEndTime, r.CustomShift)...)
	errs = append(errs, validateDOB(r.DateOfBirth)...)

	return errs.OrNil()
}

type UpdateEmployeeRequest struct {
	ID                string                `json:"-"`
	Name              *string               `json:"name,omitempty"`
	Email             *string               `json:"email,omitempty"`
	Department        *string               `json:"department,omitempty"`
	Role              *auth.Role            `json:"role,omitempty"`
	MonthlySalary     *decimal.Decimal      `json:"monthly_salary,omitempty"`
	ShiftType         *schedule.ShiftType   `json:"shift_type,omitempty"`
	ShiftStartTime    *string               `json:"shift_start_time,omitempty"`
	ShiftEndTime      *string               `json:"shift_end_time,omitempty"`
	WeeklyWorkingDays *schedule.WorkingDays `json:"weekly_working_days,omitempty"`
	CustomShift       *schedule.CustomShift `json:"custom_shift,omitempty"`
	AttendanceEnabled *bool                 `json:"attendance_enabled,omitempty"`
	LeaveEnabled      *bool                 `json:"leave_enabled,omitempty"`
	DateOfBirth       *string               `json:"date_of_birth,omitempty"`
	LifecycleStatus   *LifecycleStatus      `json:"lifecycle_status,omitempty"`
	LifecycleReason   *string               `json:"lifecycle_reason,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Role != nil && !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be admin, manager or employee"})
	}
	if r.MonthlySalary != nil {
		errs = append(errs, validateMoney("monthly_salary", *r.MonthlySalary)...)
	}

	shiftType := schedule.ShiftTypeFixed
	if r.ShiftType != nil {
		shiftType = *r.ShiftType
	}
	var start, end string
	if r.ShiftStartTime != nil {
		start = *r.ShiftStartTime
	}
	if r.ShiftEndTime != nil {
		end = *r.ShiftEndTime
	}
	var custom schedule.CustomShift
	if r.CustomShift != nil {
		custom = *r.CustomShift
	}
	errs = append(errs, validateShift(shiftType, start, end, custom)...)
	errs = append(errs, validateDOB(r.DateOfBirth)...)

	if r.LifecycleStatus != nil && !validator.IsInSlice(string(*r.LifecycleStatus), LifecycleStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "lifecycle_status", Message: ErrInvalidLifecycleStatus.Error()})
	}

	return errs.OrNil()
}

type UpdateLifecycleRequest struct {
	EmployeeID string          `json:"-"`
	Status     LifecycleStatus `json:"status"`
	Reason     string          `json:"reason"`
}

func (r *UpdateLifecycleRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = LifecycleStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if !validator.IsInSlice(string(r.Status), LifecycleStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidLifecycleStatus.Error()})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be at most 500 characters"})
	}

	return errs.OrNil()
}

type EmployeeResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Email              string               `json:"email,omitempty"`
	Department         string               `json:"department"`
	Role               string               `json:"role"`
	MonthlySalary      decimal.Decimal      `json:"monthly_salary"`
	ShiftType          string               `json:"shift_type"`
	ShiftStartTime     string               `json:"shift_start_time,omitempty"`
	ShiftEndTime       string               `json:"shift_end_time,omitempty"`
	WeeklyWorkingDays  string               `json:"weekly_working_days,omitempty"`
	CustomShift        schedule.CustomShift `json:"custom_shift,omitempty"`
	AttendanceEnabled  bool                 `json:"attendance_enabled"`
	LeaveEnabled       bool                 `json:"leave_enabled"`
	LifecycleStatus    string               `json:"lifecycle_status"`
	LifecycleReason    string               `json:"lifecycle_reason,omitempty"`
	LifecycleChangedAt *string              `json:"lifecycle_changed_at,omitempty"`
	DateOfBirth        *string              `json:"date_of_birth,omitempty"`
	CreatedAt          string               `json:"created_at"`
	UpdatedAt          string               `json:"updated_at"`
}

// LifecycleResponse carries the settlement created by a separation, if any.
type LifecycleResponse struct {
	Employee      EmployeeResponse `json:"employee"`
	SettlementID  string           `json:"settlement_id,omitempty"`
	NetSettlement *decimal.Decimal `json:"net_settlement,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID,
		Name:              e.Name,
		Email:             e.Email,
		Department:        e.Department,
		Role:              string(e.Role),
		MonthlySalary:     e.MonthlySalary,
		ShiftType:         string(e.ShiftType),
		ShiftStartTime:    e.ShiftStartTime,
		ShiftEndTime:      e.ShiftEndTime,
		WeeklyWorkingDays: string(e.WeeklyWorkingDays),
		CustomShift:       e.CustomShift,
		AttendanceEnabled: e.AttendanceAllowed(),
		LeaveEnabled:      e.LeaveAllowed(),
		LifecycleStatus:   string(e.LifecycleStatus),
		LifecycleReason:   e.LifecycleReason,
		DateOfBirth:       e.DateOfBirth,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
	if e.LifecycleChangedAt != nil {
		s := e.LifecycleChangedAt.Format(time.RFC3339)
		resp.LifecycleChangedAt = &s
	}
	return resp
}

func validateMoney(field string, amount decimal.Decimal) validator.ValidationErrors {
	if !validator.IsNonNegativeAmount(amount) {
		return validator.ValidationErrors{{Field: field, Message: field + " must not be negative"}}
	}
	return nil
}

func validateShift(shiftType schedule.ShiftType, start, end string, custom schedule.CustomShift) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if shiftType != schedule.ShiftTypeFixed && shiftType != schedule.ShiftTypeCustom {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: schedule.ErrInvalidShiftType.Error()})
	}
	if start != "" && !validator.IsValidTimeOfDay(start) {
		errs = append(errs, validator.ValidationError{Field: "shift_start_time", Message: "shift_start_time must use HH:MM"})
	}
	if end != "" && !validator.IsValidTimeOfDay(end) {
		errs = append(errs, validator.ValidationError{Field: "shift_end_time", Message: "shift_end_time must use HH:MM"})
	}
	if err := custom.Validate(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "custom_shift", Message: err.Error()})
	}

	return errs
}

func validateDOB(dob *string) validator.ValidationErrors {
	if dob == nil || *dob == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(*dob); !ok {
		return validator.ValidationErrors{{Field: "date_of_birth", Message: "date_of_birth must be in YYYY-MM-DD format"}}
	}
	return nil
}
