package payroll

import "context"

type PayrollRepository interface {
	GetOvertime(ctx context.Context, employeeID string, year, month int) (OvertimeEntry, error)
	// SaveOvertime replaces the month's entry.
	SaveOvertime(ctx context.Context, entry OvertimeEntry) (OvertimeEntry, error)

	Get(ctx context.Context, employeeID string, year, month int) (PayrollRecord, error)
	// Save inserts when rec.Version is 0, otherwise replaces the record only
	// if its Version is still current.
	Save(ctx context.Context, rec PayrollRecord) (PayrollRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error)
	ListAll(ctx context.Context) ([]PayrollRecord, error)
}
