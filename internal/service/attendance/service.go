package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/schedule"
)

const defaultLocation = "Office"

type AttendanceServiceImpl struct {
	store record.Store
	attendance.AttendanceRepository
	employee.EmployeeRepository
	resolver        schedule.ShiftResolver
	activityService activity.ActivityService
	now             func() time.Time
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.resolveSubject(actor, &req.EmployeeID, &req.Timestamp); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.AttendanceAllowed() {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceDisabled
	}

	checkIn := req.Timestamp.In(s.resolver.Location())
	window := s.resolver.WindowFor(emp.Shift(), checkIn)
	expectedStart, _ := s.resolver.WindowTimes(window, checkIn)

	location := req.Location
	if location == "" {
		location = defaultLocation
	}

	now := s.now().UTC()
	newAttendance := attendance.Attendance{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.Name,
		Department:       emp.Department,
		Date:             checkIn.Format(record.DateLayout),
		CheckIn:          req.Timestamp.UTC(),
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		Location:         location,
		Notes:            req.Notes,
		ShiftStartTime:   window.Start,
		ShiftEndTime:     window.End,
		LateMinutes:      minutesAfter(checkIn, expectedStart),
		Status:           attendance.StatusPresent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var created attendance.Attendance
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.AttendanceRepository.Create(ctx, newAttendance)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionAttendanceCheckIn,
			Actor:      actor,
			TargetID:   emp.ID,
			TargetName: emp.Name,
			Department: emp.Department,
			Details: map[string]any{
				"date":        created.Date,
				"time":        checkIn.Format("15:04:05"),
				"late":        created.LateMinutes > 0,
				"lateMinutes": created.LateMinutes,
				"workingDay":  s.resolver.IsWorkingDay(emp.Shift(), checkIn),
			},
		})
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		// A concurrent check-in that committed first surfaces at commit time.
		if errors.Is(err, record.ErrKeyExists) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.resolveSubject(actor, &req.EmployeeID, &req.Timestamp); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkOut := req.Timestamp.In(s.resolver.Location())
	date := checkOut.Format(record.DateLayout)

	var updated attendance.Attendance
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		existing, err := s.AttendanceRepository.Get(ctx, req.EmployeeID, date)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return err
		}

		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.AttendanceAllowed() {
			return attendance.ErrAttendanceDisabled
		}
		if existing.CheckedOut() {
			return attendance.ErrAlreadyCheckedOut
		}
		if checkOut.Before(existing.CheckIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		window := schedule.Window{Start: existing.ShiftStartTime, End: existing.ShiftEndTime}
		_, expectedEnd := s.resolver.WindowTimes(window, checkOut)

		outUTC := req.Timestamp.UTC()
		hours := workedHours(existing.CheckIn, outUTC)
		early := minutesAfter(expectedEnd, checkOut)

		existing.CheckOut = &outUTC
		existing.CheckOutLatitude = req.Latitude
		existing.CheckOutLongitude = req.Longitude
		existing.TotalHours = &hours
		existing.EarlyDepartureMinutes = &early
		existing.UpdatedAt = s.now().UTC()

		updated, err = s.AttendanceRepository.Update(ctx, existing)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionAttendanceCheckOut,
			Actor:      actor,
			TargetID:   emp.ID,
			TargetName: emp.Name,
			Department: emp.Department,
			Details: map[string]any{
				"date":                  date,
				"time":                  checkOut.Format("15:04:05"),
				"totalHours":            hours.String(),
				"earlyDeparture":        early > 0,
				"earlyDepartureMinutes": early,
			},
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrNotCheckedIn),
			errors.Is(err, attendance.ErrAttendanceDisabled),
			errors.Is(err, attendance.ErrAlreadyCheckedOut),
			errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
			errors.Is(err, employee.ErrEmployeeNotFound):
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return attendance.ToResponse(updated), nil
}

// resolveSubject fills the employee and instant of an attendance event from
// the caller. Only admins may record events for someone else.
func (s *AttendanceServiceImpl) resolveSubject(actor auth.Actor, employeeID *string, at *time.Time) error {
	if *employeeID == "" {
		*employeeID = actor.EmployeeID
	}
	if *employeeID != actor.EmployeeID && !actor.IsAdmin() {
		return auth.ErrForbidden
	}
	if at.IsZero() {
		*at = s.now()
	}
	return nil
}

func NewAttendanceService(
	store record.Store,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	resolver schedule.ShiftResolver,
	activityService activity.ActivityService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		store:                store,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		resolver:             resolver,
		activityService:      activityService,
		now:                  time.Now,
	}
}
