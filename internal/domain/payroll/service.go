package payroll

import "context"

type PayrollService interface {
	// GeneratePayroll computes and stores the draft record for one
	// employee-month, overwriting a previous draft.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)
	GeneratePayrollBatch(ctx context.Context, req GeneratePayrollBatchRequest) (BatchResponse, error)
	RecordOvertime(ctx context.Context, req RecordOvertimeRequest) (OvertimeResponse, error)

	ListPayrolls(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	GetPayroll(ctx context.Context, employeeID string, year, month int) (PayrollResponse, error)
	UpdatePayrollStatus(ctx context.Context, req UpdatePayrollStatusRequest) (PayrollResponse, error)

	// GeneratePayslip renders one payroll record as a PDF document.
	GeneratePayslip(ctx context.Context, employeeID string, year, month int) (Payslip, error)
}

// Calculator turns one employee-month of inputs into payroll figures.
type Calculator interface {
	Calculate(in Input) Figures
}
