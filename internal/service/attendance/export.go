package attendance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var exportHeader = []any{
	"Employee ID", "Employee", "Department", "Date", "Check In", "Check Out",
	"Shift Start", "Shift End", "Late (min)", "Early Departure (min)", "Total Hours", "Status", "Location",
}

// ExportAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionAttendanceViewAll) {
		return nil, auth.ErrForbidden
	}

	rows, err := s.list(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, a := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			a.EmployeeID, a.EmployeeName, a.Department, a.Date, a.CheckIn, "",
			a.ShiftStartTime, a.ShiftEndTime, a.LateMinutes, "", "", a.Status, a.Location,
		}
		if a.CheckOut != nil {
			row[5] = *a.CheckOut
		}
		if a.EarlyDepartureMinutes != nil {
			row[9] = *a.EarlyDepartureMinutes
		}
		if a.TotalHours != nil {
			row[10] = a.TotalHours.InexactFloat64()
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", lastCol, 16); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
