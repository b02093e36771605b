package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

type SettlementFilter struct {
	EmployeeID string
	Department string
	Status     string
}

func (f SettlementFilter) Matches(s Settlement) bool {
	if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Department != "" && s.Department != f.Department {
		return false
	}
	if f.Status != "" && string(s.Status) != f.Status {
		return false
	}
	return true
}

type SettlementResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Department         string          `json:"department,omitempty"`
	SeparationType     string          `json:"separation_type,omitempty"`
	ResignationDate    string          `json:"resignation_date"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	PendingDues        decimal.Decimal `json:"pending_dues"`
	Advances           decimal.Decimal `json:"advances"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetSettlement      decimal.Decimal `json:"net_settlement"`
	UnpaidPayrollCount int             `json:"unpaid_payroll_count"`
	AdvanceCount       int             `json:"advance_count"`
	Status             string          `json:"status"`
	GeneratedBy        string          `json:"generated_by"`
	GeneratedAt        string          `json:"generated_at"`
	PaidAt             *string         `json:"paid_at"`
}

func ToResponse(s Settlement) SettlementResponse {
	resp := SettlementResponse{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		EmployeeName:       s.EmployeeName,
		Department:         s.Department,
		SeparationType:     s.SeparationType,
		ResignationDate:    s.ResignationDate.Format(time.RFC3339),
		BasicSalary:        s.BasicSalary,
		PendingDues:        s.PendingDues,
		Advances:           s.Advances,
		Deductions:         s.Deductions,
		NetSettlement:      s.NetSettlement,
		UnpaidPayrollCount: s.UnpaidPayrollCount,
		AdvanceCount:       s.AdvanceCount,
		Status:             string(s.Status),
		GeneratedBy:        s.GeneratedBy,
		GeneratedAt:        s.GeneratedAt.Format(time.RFC3339),
	}
	if s.PaidAt != nil {
		paid := s.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paid
	}
	return resp
}
