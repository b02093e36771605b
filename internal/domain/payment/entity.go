package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeFullSalary      Type = "full_salary"
	TypeHalfSalary      Type = "half_salary"
	TypeAdvance         Type = "advance"
	TypeCustom          Type = "custom"
	TypeFinalSettlement Type = "final_settlement"
)

var TypeValues = []string{
	string(TypeFullSalary),
	string(TypeHalfSalary),
	string(TypeAdvance),
	string(TypeCustom),
	string(TypeFinalSettlement),
}

type Payment struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department,omitempty"`
	Type         Type            `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Month        string          `json:"month"`
	PaidBy       string          `json:"paid_by"`
	PaidAt       time.Time       `json:"paid_at"`
	// Deducted marks an advance already recovered from a salary payment.
	Deducted bool `json:"deducted"`
}

// OutstandingAdvance reports whether p still counts against a settlement.
func (p Payment) OutstandingAdvance() bool {
	return p.Type == TypeAdvance && !p.Deducted
}
