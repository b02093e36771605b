package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (AttendanceResponse, error)
	ListByDateRange(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetAnalytics classifies the day's check-ins against the grace period.
	GetAnalytics(ctx context.Context, date string) (AnalyticsResponse, error)

	RecordLocationTrace(ctx context.Context, req RecordTraceRequest) (TraceResponse, error)
	ListLocationTraces(ctx context.Context, employeeID, date string) (TraceListResponse, error)

	// ExportAttendance renders the filtered records as an XLSX workbook.
	ExportAttendance(ctx context.Context, filter AttendanceFilter) ([]byte, error)
}
