package attendance

import "context"

type AttendanceRepository interface {
	// Create inserts a record only if none exists for (employee, date);
	// otherwise ErrAlreadyCheckedIn.
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Get(ctx context.Context, employeeID, date string) (Attendance, error)
	// Update writes a only if its Version is still current.
	Update(ctx context.Context, a Attendance) (Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListByEmployeeMonth(ctx context.Context, employeeID string, year, month int) ([]Attendance, error)
	ListAll(ctx context.Context) ([]Attendance, error)

	CreateTrace(ctx context.Context, trace LocationTrace) error
	ListTraces(ctx context.Context, employeeID string) ([]LocationTrace, error)
}
