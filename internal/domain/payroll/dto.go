package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	return errs.OrNil()
}

type GeneratePayrollBatchRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	Month       int      `json:"month"`
	Year        int      `json:"year"`
}

func (r *GeneratePayrollBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must not be empty",
		})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty values",
			})
			break
		}
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	return errs.OrNil()
}

type RecordOvertimeRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Hours      decimal.Decimal `json:"hours"`
	Notes      string          `json:"notes,omitempty"`
}

func (r *RecordOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Hours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: ErrNegativeOvertimeHours.Error(),
		})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	return errs.OrNil()
}

type UpdatePayrollStatusRequest struct {
	EmployeeID string        `json:"-"`
	Year       int           `json:"-"`
	Month      int           `json:"-"`
	Status     PayrollStatus `json:"status"`
}

func (r *UpdatePayrollStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = PayrollStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if !validator.IsInSlice(string(r.Status), PayrollStatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: ErrInvalidPayrollStatus.Error(),
		})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	return errs.OrNil()
}

type PayrollFilter struct {
	EmployeeID string
	Year       int
	Month      int
	Status     string
}

func (f PayrollFilter) Matches(p PayrollRecord) bool {
	if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Year != 0 && p.Year != f.Year {
		return false
	}
	if f.Month != 0 && p.Month != f.Month {
		return false
	}
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	return true
}

type PayrollResponse struct {
	EmployeeID              string          `json:"employee_id"`
	EmployeeName            string          `json:"employee_name"`
	Department              string          `json:"department,omitempty"`
	Period                  string          `json:"period"`
	Year                    int             `json:"year"`
	Month                   int             `json:"month"`
	BaseSalary              decimal.Decimal `json:"base_salary"`
	HourlyRate              decimal.Decimal `json:"hourly_rate"`
	OvertimeHours           decimal.Decimal `json:"overtime_hours"`
	OvertimePay             decimal.Decimal `json:"overtime_pay"`
	DaysPresent             int             `json:"days_present"`
	LateMinutes             int             `json:"late_minutes"`
	LateDeduction           decimal.Decimal `json:"late_deduction"`
	EarlyDepartureMinutes   int             `json:"early_departure_minutes"`
	EarlyDepartureDeduction decimal.Decimal `json:"early_departure_deduction"`
	NetPay                  decimal.Decimal `json:"net_pay"`
	Status                  string          `json:"status"`
	GeneratedBy             string          `json:"generated_by"`
	GeneratedAt             string          `json:"generated_at"`
	UpdatedBy               string          `json:"updated_by,omitempty"`
	UpdatedAt               string          `json:"updated_at"`
	PaidAt                  *string         `json:"paid_at,omitempty"`
}

func ToResponse(p PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		EmployeeID:              p.EmployeeID,
		EmployeeName:            p.EmployeeName,
		Department:              p.Department,
		Period:                  p.Period(),
		Year:                    p.Year,
		Month:                   p.Month,
		BaseSalary:              p.BaseSalary,
		HourlyRate:              p.HourlyRate,
		OvertimeHours:           p.OvertimeHours,
		OvertimePay:             p.OvertimePay,
		DaysPresent:             p.DaysPresent,
		LateMinutes:             p.LateMinutes,
		LateDeduction:           p.LateDeduction,
		EarlyDepartureMinutes:   p.EarlyDepartureMinutes,
		EarlyDepartureDeduction: p.EarlyDepartureDeduction,
		NetPay:                  p.NetPay,
		Status:                  string(p.Status),
		GeneratedBy:             p.GeneratedBy,
		GeneratedAt:             p.GeneratedAt.Format(time.RFC3339),
		UpdatedBy:               p.UpdatedBy,
		UpdatedAt:               p.UpdatedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		s := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}

type OvertimeResponse struct {
	EmployeeID string          `json:"employee_id"`
	Period     string          `json:"period"`
	Hours      decimal.Decimal `json:"hours"`
	Notes      string          `json:"notes,omitempty"`
	EnteredBy  string          `json:"entered_by"`
	UpdatedAt  string          `json:"updated_at"`
}

type BatchResult struct {
	EmployeeID string           `json:"employee_id"`
	Payroll    *PayrollResponse `json:"payroll,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type BatchResponse struct {
	Period    string        `json:"period"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []BatchResult `json:"results"`
}

// Payslip is a rendered PDF payslip.
type Payslip struct {
	Filename string
	Content  []byte
}

func validatePeriod(month, year int) validator.ValidationErrors {
	if !validator.IsValidPeriod(month, year) {
		return validator.ValidationErrors{{
			Field:   "period",
			Message: "month must be 1-12 and year must be a four digit year",
		}}
	}
	return nil
}
