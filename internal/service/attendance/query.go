package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
)

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter.EmployeeID = actor.EmployeeID
	if filter.EmployeeID == "" {
		return []attendance.AttendanceResponse{}, nil
	}
	return s.list(ctx, actor, filter)
}

// GetByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	actor, err := s.authorizeEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, actor, attendance.AttendanceFilter{EmployeeID: employeeID})
}

// GetByEmployeeAndDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (attendance.AttendanceResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	if _, err := s.authorizeEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a, err := s.AttendanceRepository.Get(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(a), nil
}

// ListByDateRange implements attendance.AttendanceService. Managers see
// their department, employees only themselves.
func (s *AttendanceServiceImpl) ListByDateRange(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, actor, filter)
}

// GetAnalytics implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAnalytics(ctx context.Context, date string) (attendance.AnalyticsResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.AnalyticsResponse{}, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionAttendanceViewAll) {
		return attendance.AnalyticsResponse{}, auth.ErrForbidden
	}

	if date == "" {
		date = s.now().In(s.resolver.Location()).Format(record.DateLayout)
	} else if _, ok := validator.IsValidDate(date); !ok {
		return attendance.AnalyticsResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	records, err := s.AttendanceRepository.ListAll(ctx)
	if err != nil {
		return attendance.AnalyticsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	grace := s.resolver.GraceMinutes()
	graceWindow := time.Duration(grace) * time.Minute
	resp := attendance.AnalyticsResponse{
		Date:         date,
		GraceMinutes: grace,
		LateComers:   []attendance.AnalyticsEntry{},
		EarlyBirds:   []attendance.AnalyticsEntry{},
	}

	for _, a := range records {
		if a.Date != date || a.CheckIn.IsZero() {
			continue
		}
		if !actor.IsAdmin() && a.Department != actor.Department {
			continue
		}
		resp.TotalPresent++

		checkIn := a.CheckIn.In(s.resolver.Location())
		expectedStart, _ := s.resolver.WindowTimes(schedule.Window{Start: a.ShiftStartTime, End: a.ShiftEndTime}, checkIn)
		entry := attendance.AnalyticsEntry{
			EmployeeID:    a.EmployeeID,
			EmployeeName:  a.EmployeeName,
			Department:    a.Department,
			CheckIn:       checkIn.Format("15:04:05"),
			ExpectedStart: expectedStart.Format("15:04"),
		}

		// Grace is compared against the exact offset; Minutes is floored.
		switch offset := checkIn.Sub(expectedStart); {
		case offset > graceWindow:
			entry.Minutes = minutesAfter(checkIn, expectedStart)
			resp.LateComers = append(resp.LateComers, entry)
		case -offset > graceWindow:
			entry.Minutes = minutesAfter(expectedStart, checkIn)
			resp.EarlyBirds = append(resp.EarlyBirds, entry)
		default:
			resp.OnTime++
		}
	}

	return resp, nil
}

// list applies the caller's visibility on top of filter.
func (s *AttendanceServiceImpl) list(ctx context.Context, actor auth.Actor, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionAttendanceViewAll) {
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, auth.ErrForbidden
		}
		filter.EmployeeID = actor.EmployeeID
	}

	records, err := s.fetch(ctx, filter.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := []attendance.AttendanceResponse{}
	for _, a := range records {
		if !filter.Matches(a) || !actor.CanView(a.EmployeeID, a.Department) {
			continue
		}
		responses = append(responses, attendance.ToResponse(a))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) fetch(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	var (
		records []attendance.Attendance
		err     error
	)
	if employeeID != "" {
		records, err = s.AttendanceRepository.ListByEmployee(ctx, employeeID)
	} else {
		records, err = s.AttendanceRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// authorizeEmployee loads the employee to check the caller may read its
// records.
func (s *AttendanceServiceImpl) authorizeEmployee(ctx context.Context, employeeID string) (auth.Actor, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.Actor{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return auth.Actor{}, err
	}
	if !actor.CanView(emp.ID, emp.Department) {
		return auth.Actor{}, auth.ErrForbidden
	}
	return actor, nil
}
