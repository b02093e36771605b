package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

type PayrollServiceImpl struct {
	store record.Store
	payroll.PayrollRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	calculator      payroll.Calculator
	activityService activity.ActivityService
	now             func() time.Time
}

// monthInputs is what one generation reads before computing.
type monthInputs struct {
	employee employee.Employee
	overtime payroll.OvertimeEntry
	records  []attendance.Attendance
}

// GeneratePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	rec, err := s.generate(ctx, actor, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(rec), nil
}

// GeneratePayrollBatch implements payroll.PayrollService. Each employee is
// generated in its own unit; one failure does not stop the others.
func (s *PayrollServiceImpl) GeneratePayrollBatch(ctx context.Context, req payroll.GeneratePayrollBatchRequest) (payroll.BatchResponse, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	results := make([]payroll.BatchResult, len(req.EmployeeIDs))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, employeeID := range req.EmployeeIDs {
		g.Go(func() error {
			results[i].EmployeeID = employeeID
			rec, err := s.generate(ctx, actor, employeeID, req.Year, req.Month)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			resp := payroll.ToResponse(rec)
			results[i].Payroll = &resp
			return nil
		})
	}
	_ = g.Wait()

	resp := payroll.BatchResponse{
		Period:  fmt.Sprintf("%04d-%02d", req.Year, req.Month),
		Results: results,
	}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	return resp, nil
}

// generate reads the month's inputs concurrently, then stores the draft in
// one atomic unit that refuses to overwrite an approved or paid record.
func (s *PayrollServiceImpl) generate(ctx context.Context, actor auth.Actor, employeeID string, year, month int) (payroll.PayrollRecord, error) {
	in, err := s.fetchInputs(ctx, employeeID, year, month)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	input := payroll.Input{
		BaseSalary:    in.employee.MonthlySalary,
		OvertimeHours: in.overtime.Hours,
	}
	daysPresent := 0
	for _, a := range in.records {
		input.LateMinutes += a.LateMinutes
		input.EarlyDepartureMinutes += a.EarlyMinutes()
		if a.Status == attendance.StatusPresent {
			daysPresent++
		}
	}
	figures := s.calculator.Calculate(input)

	now := s.now().UTC()
	rec := payroll.PayrollRecord{
		EmployeeID:              in.employee.ID,
		EmployeeName:            in.employee.Name,
		Department:              in.employee.Department,
		Year:                    year,
		Month:                   month,
		BaseSalary:              input.BaseSalary,
		HourlyRate:              figures.HourlyRate,
		OvertimeHours:           input.OvertimeHours,
		OvertimePay:             figures.OvertimePay,
		DaysPresent:             daysPresent,
		LateMinutes:             input.LateMinutes,
		LateDeduction:           figures.LateDeduction,
		EarlyDepartureMinutes:   input.EarlyDepartureMinutes,
		EarlyDepartureDeduction: figures.EarlyDepartureDeduction,
		NetPay:                  figures.NetPay,
		Status:                  payroll.PayrollStatusDraft,
		GeneratedBy:             actor.UserID,
		GeneratedAt:             now,
		UpdatedBy:               actor.UserID,
		UpdatedAt:               now,
	}

	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		existing, err := s.PayrollRepository.Get(ctx, employeeID, year, month)
		switch {
		case err == nil:
			if existing.Status.Finalized() {
				return payroll.ErrPayrollRecordFinalized
			}
			rec.Version = existing.Version
		case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		default:
			return err
		}

		rec, err = s.PayrollRepository.Save(ctx, rec)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionPayrollGenerated,
			Actor:      actor,
			TargetID:   rec.EmployeeID,
			TargetName: rec.EmployeeName,
			Department: rec.Department,
			Details: map[string]any{
				"period": rec.Period(),
				"netPay": rec.NetPay.String(),
			},
		})
	})
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordFinalized) {
			return payroll.PayrollRecord{}, err
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate payroll: %w", err)
	}

	return rec, nil
}

func (s *PayrollServiceImpl) fetchInputs(ctx context.Context, employeeID string, year, month int) (monthInputs, error) {
	var in monthInputs

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emp, err := s.EmployeeRepository.GetByID(gCtx, employeeID)
		if err != nil {
			return err
		}
		in.employee = emp
		return nil
	})

	g.Go(func() error {
		overtime, err := s.PayrollRepository.GetOvertime(gCtx, employeeID, year, month)
		if err != nil && !errors.Is(err, payroll.ErrOvertimeNotFound) {
			return err
		}
		in.overtime = overtime
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.ListByEmployeeMonth(gCtx, employeeID, year, month)
		if err != nil {
			return err
		}
		in.records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return monthInputs{}, err
	}
	return in, nil
}

// RecordOvertime implements payroll.PayrollService.
func (s *PayrollServiceImpl) RecordOvertime(ctx context.Context, req payroll.RecordOvertimeRequest) (payroll.OvertimeResponse, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return payroll.OvertimeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.OvertimeResponse{}, err
	}

	var saved payroll.OvertimeEntry
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		entry := payroll.OvertimeEntry{
			EmployeeID: emp.ID,
			Year:       req.Year,
			Month:      req.Month,
			Hours:      req.Hours,
			Notes:      req.Notes,
			EnteredBy:  actor.UserID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing, err := s.PayrollRepository.GetOvertime(ctx, emp.ID, req.Year, req.Month); err == nil {
			entry.CreatedAt = existing.CreatedAt
		} else if !errors.Is(err, payroll.ErrOvertimeNotFound) {
			return err
		}

		saved, err = s.PayrollRepository.SaveOvertime(ctx, entry)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionOvertimeRecorded,
			Actor:      actor,
			TargetID:   emp.ID,
			TargetName: emp.Name,
			Department: emp.Department,
			Details: map[string]any{
				"period": fmt.Sprintf("%04d-%02d", req.Year, req.Month),
				"hours":  req.Hours.String(),
			},
		})
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.OvertimeResponse{}, err
		}
		return payroll.OvertimeResponse{}, fmt.Errorf("failed to record overtime: %w", err)
	}

	return payroll.OvertimeResponse{
		EmployeeID: saved.EmployeeID,
		Period:     fmt.Sprintf("%04d-%02d", saved.Year, saved.Month),
		Hours:      saved.Hours,
		Notes:      saved.Notes,
		EnteredBy:  saved.EnteredBy,
		UpdatedAt:  saved.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// ListPayrolls implements payroll.PayrollService. Payroll managers see every
// record, everyone else only their own.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionPayrollManage) {
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, auth.ErrForbidden
		}
		filter.EmployeeID = actor.EmployeeID
		if filter.EmployeeID == "" {
			return []payroll.PayrollResponse{}, nil
		}
	}

	var records []payroll.PayrollRecord
	if filter.EmployeeID != "" {
		records, err = s.PayrollRepository.ListByEmployee(ctx, filter.EmployeeID)
	} else {
		records, err = s.PayrollRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses := []payroll.PayrollResponse{}
	for _, rec := range records {
		if filter.Matches(rec) {
			responses = append(responses, payroll.ToResponse(rec))
		}
	}
	return responses, nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, employeeID string, year, month int) (payroll.PayrollResponse, error) {
	rec, err := s.getVisible(ctx, employeeID, year, month)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(rec), nil
}

// UpdatePayrollStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayrollStatus(ctx context.Context, req payroll.UpdatePayrollStatusRequest) (payroll.PayrollResponse, error) {
	actor, err := s.requireManager(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	var updated payroll.PayrollRecord
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		rec, err := s.PayrollRepository.Get(ctx, req.EmployeeID, req.Year, req.Month)
		if err != nil {
			return err
		}
		if !rec.Status.CanTransitionTo(req.Status) {
			return fmt.Errorf("%w: %s to %s", payroll.ErrInvalidStatusTransition, rec.Status, req.Status)
		}

		from := rec.Status
		now := s.now().UTC()
		rec.Status = req.Status
		rec.UpdatedBy = actor.UserID
		rec.UpdatedAt = now
		if req.Status == payroll.PayrollStatusPaid {
			rec.PaidAt = &now
		}

		updated, err = s.PayrollRepository.Save(ctx, rec)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionPayrollStatusUpdated,
			Actor:      actor,
			TargetID:   rec.EmployeeID,
			TargetName: rec.EmployeeName,
			Department: rec.Department,
			Details: map[string]any{
				"period": rec.Period(),
				"from":   string(from),
				"to":     string(rec.Status),
			},
		})
	})
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) || errors.Is(err, payroll.ErrInvalidStatusTransition) {
			return payroll.PayrollResponse{}, err
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return payroll.ToResponse(updated), nil
}

// getVisible fetches one record the caller is allowed to read.
func (s *PayrollServiceImpl) getVisible(ctx context.Context, employeeID string, year, month int) (payroll.PayrollRecord, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionPayrollManage) && actor.EmployeeID != employeeID {
		return payroll.PayrollRecord{}, auth.ErrForbidden
	}
	if errs := (&payroll.GeneratePayrollRequest{EmployeeID: employeeID, Year: year, Month: month}).Validate(); errs != nil {
		return payroll.PayrollRecord{}, errs
	}

	return s.PayrollRepository.Get(ctx, employeeID, year, month)
}

func (s *PayrollServiceImpl) requireManager(ctx context.Context) (auth.Actor, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return auth.Actor{}, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionPayrollManage) {
		return auth.Actor{}, auth.ErrForbidden
	}
	return actor, nil
}

func NewPayrollService(
	store record.Store,
	payrollRepository payroll.PayrollRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	calculator payroll.Calculator,
	activityService activity.ActivityService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		store:                store,
		PayrollRepository:    payrollRepository,
		EmployeeRepository:   employeeRepository,
		AttendanceRepository: attendanceRepository,
		calculator:           calculator,
		activityService:      activityService,
		now:                  time.Now,
	}
}
