package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	store record.Store
	employee.EmployeeRepository
	settler         settlement.Settler
	activityService activity.ActivityService
	now             func() time.Time
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !actor.CanView(emp.ID, emp.Department) {
		return employee.EmployeeResponse{}, auth.ErrForbidden
	}

	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService. Managers see their
// department, employees only themselves.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := []employee.EmployeeResponse{}
	for _, emp := range employees {
		if !actor.CanView(emp.ID, emp.Department) {
			continue
		}
		if filter.Department != "" && emp.Department != filter.Department {
			continue
		}
		if filter.Status != "" && string(emp.LifecycleStatus) != filter.Status {
			continue
		}
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !auth.HasPermission(actor.Role, auth.PermissionEmployeeManage) {
		return employee.EmployeeResponse{}, auth.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	now := s.now().UTC()
	enabled := true
	newEmployee := employee.Employee{
		ID:                req.ID,
		Name:              req.Name,
		Email:             req.Email,
		Department:        req.Department,
		Role:              req.Role,
		MonthlySalary:     req.MonthlySalary,
		ShiftType:         req.ShiftType,
		ShiftStartTime:    req.ShiftStartTime,
		ShiftEndTime:      req.ShiftEndTime,
		WeeklyWorkingDays: req.WeeklyWorkingDays,
		CustomShift:       req.CustomShift,
		AttendanceEnabled: &enabled,
		LeaveEnabled:      &enabled,
		LifecycleStatus:   employee.LifecycleActive,
		DateOfBirth:       req.DateOfBirth,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var created employee.Employee
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		created, err = s.EmployeeRepository.Create(ctx, newEmployee)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionEmployeeCreated,
			Actor:      actor,
			TargetID:   created.ID,
			TargetName: created.Name,
			Department: created.Department,
			Details: map[string]any{
				"email": created.Email,
				"role":  string(created.Role),
			},
		})
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeExists) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.LifecycleResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.LifecycleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.LifecycleResponse{}, err
	}

	var resp employee.LifecycleResponse
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !actor.CanManage(emp.Department) {
			return auth.ErrForbidden
		}
		if !actor.IsAdmin() && (req.Role != nil || req.MonthlySalary != nil) {
			return employee.ErrSalaryChangeRequiresAdmin
		}

		now := s.now().UTC()
		changed := applyUpdate(&emp, req)

		if req.LifecycleStatus != nil && *req.LifecycleStatus != emp.LifecycleStatus {
			reason := ""
			if req.LifecycleReason != nil {
				reason = *req.LifecycleReason
			}
			settled, err := s.transition(ctx, actor, &emp, *req.LifecycleStatus, reason, now)
			if err != nil {
				return err
			}
			withSettlement(&resp, settled)
			changed = append(changed, "lifecycle_status")
		}

		emp.UpdatedAt = now
		emp, err = s.EmployeeRepository.Update(ctx, emp)
		if err != nil {
			return err
		}
		resp.Employee = employee.ToResponse(emp)

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionEmployeeUpdated,
			Actor:      actor,
			TargetID:   emp.ID,
			TargetName: emp.Name,
			Department: emp.Department,
			Details:    map[string]any{"updates": changed},
		})
	})
	if err != nil {
		return employee.LifecycleResponse{}, wrapError("update employee", err)
	}

	return resp, nil
}

// UpdateLifecycle implements employee.EmployeeService. Moving to resigned or
// terminated settles the employee and disables attendance and leave in the
// same atomic unit; any failure leaves every record untouched.
func (s *EmployeeServiceImpl) UpdateLifecycle(ctx context.Context, req employee.UpdateLifecycleRequest) (employee.LifecycleResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return employee.LifecycleResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.LifecycleResponse{}, err
	}

	var resp employee.LifecycleResponse
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !actor.CanManage(emp.Department) {
			return auth.ErrForbidden
		}

		now := s.now().UTC()
		settled, err := s.transition(ctx, actor, &emp, req.Status, req.Reason, now)
		if err != nil {
			return err
		}
		withSettlement(&resp, settled)

		emp.UpdatedAt = now
		emp, err = s.EmployeeRepository.Update(ctx, emp)
		if err != nil {
			return err
		}
		resp.Employee = employee.ToResponse(emp)
		return nil
	})
	if err != nil {
		return employee.LifecycleResponse{}, wrapError("update lifecycle", err)
	}

	return resp, nil
}

// transition moves emp to status and logs the lifecycle action. The caller
// persists emp.
func (s *EmployeeServiceImpl) transition(ctx context.Context, actor auth.Actor, emp *employee.Employee, status employee.LifecycleStatus, reason string, now time.Time) (*settlement.Settlement, error) {
	if emp.LifecycleStatus.Separated() {
		return nil, employee.ErrEmployeeAlreadySeparated
	}
	if emp.LifecycleStatus == status {
		return nil, employee.ErrLifecycleStatusUnchanged
	}

	previous := emp.LifecycleStatus
	emp.LifecycleStatus = status
	emp.LifecycleReason = reason
	emp.LifecycleChangedAt = &now
	emp.LifecycleChangedBy = actor.UserID

	details := map[string]any{"from": string(previous), "reason": reason}

	var settled *settlement.Settlement
	var action activity.Action
	switch status {
	case employee.LifecycleResigned, employee.LifecycleTerminated:
		st, err := s.settler.Settle(ctx, *emp, actor, string(status), now)
		if err != nil {
			return nil, fmt.Errorf("failed to settle employee: %w", err)
		}
		settled = &st

		disabled := false
		emp.AttendanceEnabled = &disabled
		emp.LeaveEnabled = &disabled

		details["settlementGenerated"] = true
		details["settlementId"] = st.ID
		action = activity.ActionEmployeeResigned
		if status == employee.LifecycleTerminated {
			action = activity.ActionEmployeeTerminated
		}
	case employee.LifecycleSuspended:
		action = activity.ActionEmployeeSuspended
	default:
		action = activity.ActionEmployeeReactivated
	}

	err := s.activityService.Log(ctx, activity.LogEntry{
		Action:     action,
		Actor:      actor,
		TargetID:   emp.ID,
		TargetName: emp.Name,
		Department: emp.Department,
		Details:    details,
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

func withSettlement(resp *employee.LifecycleResponse, st *settlement.Settlement) {
	if st == nil {
		return
	}
	net := st.NetSettlement
	resp.SettlementID = st.ID
	resp.NetSettlement = &net
}

func wrapError(op string, err error) error {
	for _, known := range []error{
		employee.ErrEmployeeNotFound,
		employee.ErrEmployeeAlreadySeparated,
		employee.ErrLifecycleStatusUnchanged,
		employee.ErrSalaryChangeRequiresAdmin,
		auth.ErrForbidden,
		record.ErrVersionConflict,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// applyUpdate copies the set fields of req onto emp and returns their names.
func applyUpdate(emp *employee.Employee, req employee.UpdateEmployeeRequest) []string {
	var changed []string

	if req.Name != nil {
		emp.Name = *req.Name
		changed = append(changed, "name")
	}
	if req.Email != nil {
		emp.Email = *req.Email
		changed = append(changed, "email")
	}
	if req.Department != nil {
		emp.Department = *req.Department
		changed = append(changed, "department")
	}
	if req.Role != nil {
		emp.Role = *req.Role
		changed = append(changed, "role")
	}
	if req.MonthlySalary != nil {
		emp.MonthlySalary = *req.MonthlySalary
		changed = append(changed, "monthly_salary")
	}
	if req.ShiftType != nil {
		emp.ShiftType = *req.ShiftType
		changed = append(changed, "shift_type")
	}
	if req.ShiftStartTime != nil {
		emp.ShiftStartTime = *req.ShiftStartTime
		changed = append(changed, "shift_start_time")
	}
	if req.ShiftEndTime != nil {
		emp.ShiftEndTime = *req.ShiftEndTime
		changed = append(changed, "shift_end_time")
	}
	if req.WeeklyWorkingDays != nil {
		emp.WeeklyWorkingDays = *req.WeeklyWorkingDays
		changed = append(changed, "weekly_working_days")
	}
	if req.CustomShift != nil {
		emp.CustomShift = *req.CustomShift
		changed = append(changed, "custom_shift")
	}
	if req.AttendanceEnabled != nil {
		v := *req.AttendanceEnabled
		emp.AttendanceEnabled = &v
		changed = append(changed, "attendance_enabled")
	}
	if req.LeaveEnabled != nil {
		v := *req.LeaveEnabled
		emp.LeaveEnabled = &v
		changed = append(changed, "leave_enabled")
	}
	if req.DateOfBirth != nil {
		emp.DateOfBirth = req.DateOfBirth
		changed = append(changed, "date_of_birth")
	}

	return changed
}

func NewEmployeeService(
	store record.Store,
	employeeRepository employee.EmployeeRepository,
	settler settlement.Settler,
	activityService activity.ActivityService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		store:              store,
		EmployeeRepository: employeeRepository,
		settler:            settler,
		activityService:    activityService,
		now:                time.Now,
	}
}
