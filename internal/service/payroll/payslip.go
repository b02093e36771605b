package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, employeeID string, year, month int) (payroll.Payslip, error) {
	rec, err := s.getVisible(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Payslip{}, err
	}

	content, err := renderPayslip(rec)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to render payslip: %w", err)
	}

	return payroll.Payslip{
		Filename: fmt.Sprintf("payslip-%s-%s.pdf", rec.EmployeeID, rec.Period()),
		Content:  content,
	}, nil
}

func renderPayslip(rec payroll.PayrollRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", rec.EmployeeName, rec.EmployeeID))
	pdf.Ln(7)
	if rec.Department != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", rec.Department))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", rec.Period()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Base salary", rec.BaseSalary},
		{fmt.Sprintf("Overtime (%s h)", rec.OvertimeHours.String()), rec.OvertimePay},
		{fmt.Sprintf("Late deduction (%d min)", rec.LateMinutes), rec.LateDeduction.Neg()},
		{fmt.Sprintf("Early departure deduction (%d min)", rec.EarlyDepartureMinutes), rec.EarlyDepartureDeduction.Neg()},
	}
	for _, line := range lines {
		pdf.CellFormat(120, 8, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, line.amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 10, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 10, rec.NetPay.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Days present: %d", rec.DaysPresent))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
