package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

var PayrollStatusValues = []string{
	string(PayrollStatusDraft),
	string(PayrollStatusApproved),
	string(PayrollStatusPaid),
}

func (s PayrollStatus) rank() int {
	switch s {
	case PayrollStatusDraft:
		return 1
	case PayrollStatusApproved:
		return 2
	case PayrollStatusPaid:
		return 3
	}
	return 0
}

// CanTransitionTo allows only forward moves: draft -> approved -> paid.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	return next.rank() > s.rank() && s.rank() > 0
}

// Finalized records are never regenerated.
func (s PayrollStatus) Finalized() bool {
	return s == PayrollStatusApproved || s == PayrollStatusPaid
}

// Policy holds the payroll constants. NormalMonthHours must be positive.
type Policy struct {
	NormalMonthHours   decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		NormalMonthHours:   decimal.NewFromInt(160),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
	}
}

// OvertimeEntry is the manually entered overtime of one employee for one month.
type OvertimeEntry struct {
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Hours      decimal.Decimal `json:"hours"`
	Notes      string          `json:"notes,omitempty"`
	EnteredBy  string          `json:"entered_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Input is everything the calculator needs for one employee-month.
type Input struct {
	BaseSalary            decimal.Decimal
	OvertimeHours         decimal.Decimal
	LateMinutes           int
	EarlyDepartureMinutes int
}

// Figures is the calculator's output. Amounts are not rounded.
type Figures struct {
	HourlyRate              decimal.Decimal
	OvertimePay             decimal.Decimal
	LateDeduction           decimal.Decimal
	EarlyDepartureDeduction decimal.Decimal
	NetPay                  decimal.Decimal
}

type PayrollRecord struct {
	EmployeeID              string          `json:"employee_id"`
	EmployeeName            string          `json:"employee_name"`
	Department              string          `json:"department,omitempty"`
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
	Status                  PayrollStatus   `json:"status"`
	GeneratedBy             string          `json:"generated_by"`
	GeneratedAt             time.Time       `json:"generated_at"`
	UpdatedBy               string          `json:"updated_by,omitempty"`
	UpdatedAt               time.Time       `json:"updated_at"`
	PaidAt                  *time.Time      `json:"paid_at,omitempty"`

	Version int64 `json:"-"`
}

// Period formats the record's month as YYYY-MM.
func (p PayrollRecord) Period() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
