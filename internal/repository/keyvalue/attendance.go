package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type attendanceRepository struct {
	store record.Store
}

func NewAttendanceRepository(store record.Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func withAttendanceVersion(a *attendance.Attendance, v int64) { a.Version = v }

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	data, err := encode(a)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if err := r.store.Create(ctx, record.AttendanceKey(a.EmployeeID, a.Date), data); err != nil {
		if errors.Is(err, record.ErrKeyExists) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	a.Version = 1
	return a, nil
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepository) Get(ctx context.Context, employeeID, date string) (attendance.Attendance, error) {
	entry, err := r.store.Get(ctx, record.AttendanceKey(employeeID, date))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	a, err := decode[attendance.Attendance](entry)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.Version = entry.Version
	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	version, err := swap(ctx, r.store, record.AttendanceKey(a.EmployeeID, a.Date), a.Version, a)
	if err != nil {
		return attendance.Attendance{}, err
	}
	a.Version = version
	return a, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return scan(ctx, r.store, record.AttendanceEmployeePrefix(employeeID), withAttendanceVersion)
}

// ListByEmployeeMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	return scan(ctx, r.store, record.AttendanceMonthPrefix(employeeID, year, month), withAttendanceVersion)
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	return scan(ctx, r.store, record.PrefixAttendance, withAttendanceVersion)
}

// CreateTrace implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateTrace(ctx context.Context, trace attendance.LocationTrace) error {
	data, err := encode(trace)
	if err != nil {
		return err
	}
	if err := r.store.Create(ctx, record.TraceKey(trace.EmployeeID, trace.Timestamp), data); err != nil {
		return fmt.Errorf("failed to create location trace: %w", err)
	}
	return nil
}

// ListTraces implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListTraces(ctx context.Context, employeeID string) ([]attendance.LocationTrace, error) {
	return scan[attendance.LocationTrace](ctx, r.store, record.TraceEmployeePrefix(employeeID), nil)
}
