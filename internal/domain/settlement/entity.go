package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Breakdown is the pure settlement computation.
type Breakdown struct {
	BasicSalary        decimal.Decimal
	PendingDues        decimal.Decimal
	Advances           decimal.Decimal
	Deductions         decimal.Decimal
	NetSettlement      decimal.Decimal
	UnpaidPayrollCount int
	AdvanceCount       int
}

type Settlement struct {
	// ID is the record key, settlement:<employee>:<unix-millis>.
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Department         string          `json:"department,omitempty"`
	SeparationType     string          `json:"separation_type,omitempty"`
	ResignationDate    time.Time       `json:"resignation_date"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	PendingDues        decimal.Decimal `json:"pending_dues"`
	Advances           decimal.Decimal `json:"advances"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetSettlement      decimal.Decimal `json:"net_settlement"`
	UnpaidPayrollCount int             `json:"unpaid_payroll_count"`
	AdvanceCount       int             `json:"advance_count"`
	Status             Status          `json:"status"`
	GeneratedBy        string          `json:"generated_by"`
	GeneratedAt        time.Time       `json:"generated_at"`
	PaidAt             *time.Time      `json:"paid_at"`
	PaidBy             string          `json:"paid_by,omitempty"`

	Version int64 `json:"-"`
}
