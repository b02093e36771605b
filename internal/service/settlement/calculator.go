package settlement

import (
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// Calculate computes a final settlement from the employee's payroll history
// and payments. Unpaid payroll nets are owed to the employee, outstanding
// advances are owed back. The net may be negative.
func Calculate(emp employee.Employee, payrolls []payroll.PayrollRecord, payments []payment.Payment) settlement.Breakdown {
	b := settlement.Breakdown{
		BasicSalary: emp.MonthlySalary,
		PendingDues: decimal.Zero,
		Advances:    decimal.Zero,
		Deductions:  decimal.Zero,
	}

	for _, p := range payrolls {
		if p.Status == payroll.PayrollStatusPaid {
			continue
		}
		b.PendingDues = b.PendingDues.Add(p.NetPay)
		b.UnpaidPayrollCount++
	}

	for _, p := range payments {
		if !p.OutstandingAdvance() {
			continue
		}
		b.Advances = b.Advances.Add(p.Amount)
		b.AdvanceCount++
	}

	b.NetSettlement = b.PendingDues.Sub(b.Advances).Sub(b.Deductions)
	return b
}
