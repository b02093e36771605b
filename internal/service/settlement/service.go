package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
)

type SettlementServiceImpl struct {
	store record.Store
	settlement.SettlementRepository
	employee.EmployeeRepository
	payroll.PayrollRepository
	payment.PaymentRepository
	activityService activity.ActivityService
	now             func() time.Time
}

// GenerateSettlement implements settlement.SettlementService.
func (s *SettlementServiceImpl) GenerateSettlement(ctx context.Context, employeeID string) (settlement.SettlementResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	var created settlement.Settlement
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		if err := authorizeSettlement(actor, emp.Department); err != nil {
			return err
		}

		separation := ""
		if emp.LifecycleStatus.Separated() {
			separation = string(emp.LifecycleStatus)
		}
		created, err = s.Settle(ctx, emp, actor, separation, s.now())
		return err
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, auth.ErrForbidden) ||
			errors.Is(err, settlement.ErrOutsideDepartment) {
			return settlement.SettlementResponse{}, err
		}
		return settlement.SettlementResponse{}, fmt.Errorf("failed to generate settlement: %w", err)
	}

	return settlement.ToResponse(created), nil
}

// Settle implements settlement.Settler. It reads and writes through ctx so
// a caller's atomic unit covers it.
func (s *SettlementServiceImpl) Settle(ctx context.Context, emp employee.Employee, actor auth.Actor, separation string, at time.Time) (settlement.Settlement, error) {
	payrolls, err := s.PayrollRepository.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return settlement.Settlement{}, err
	}
	payments, err := s.PaymentRepository.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return settlement.Settlement{}, err
	}

	b := Calculate(emp, payrolls, payments)
	at = at.UTC()

	created, err := s.SettlementRepository.Create(ctx, settlement.Settlement{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		Department:         emp.Department,
		SeparationType:     separation,
		ResignationDate:    at,
		BasicSalary:        b.BasicSalary,
		PendingDues:        b.PendingDues,
		Advances:           b.Advances,
		Deductions:         b.Deductions,
		NetSettlement:      b.NetSettlement,
		UnpaidPayrollCount: b.UnpaidPayrollCount,
		AdvanceCount:       b.AdvanceCount,
		Status:             settlement.StatusPending,
		GeneratedBy:        actor.UserID,
		GeneratedAt:        at,
	})
	if err != nil {
		return settlement.Settlement{}, err
	}

	err = s.activityService.Log(ctx, activity.LogEntry{
		Action:     activity.ActionFinalSettlementGenerated,
		Actor:      actor,
		TargetID:   emp.ID,
		TargetName: emp.Name,
		Department: emp.Department,
		Details: map[string]any{
			"settlementId":     created.ID,
			"settlementAmount": created.NetSettlement.String(),
		},
	})
	if err != nil {
		return settlement.Settlement{}, err
	}

	return created, nil
}

// MarkPaid implements settlement.Settler.
func (s *SettlementServiceImpl) MarkPaid(ctx context.Context, employeeID string, actor auth.Actor, at time.Time) (settlement.Settlement, error) {
	pending, err := s.PendingFor(ctx, employeeID)
	if err != nil {
		return settlement.Settlement{}, err
	}

	paidAt := at.UTC()
	pending.Status = settlement.StatusPaid
	pending.PaidAt = &paidAt
	pending.PaidBy = actor.UserID

	return s.SettlementRepository.Update(ctx, pending)
}

// PendingFor implements settlement.Settler.
func (s *SettlementServiceImpl) PendingFor(ctx context.Context, employeeID string) (settlement.Settlement, error) {
	settlements, err := s.SettlementRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return settlement.Settlement{}, err
	}
	for _, st := range settlements {
		if st.Status == settlement.StatusPending {
			return st, nil
		}
	}
	return settlement.Settlement{}, settlement.ErrSettlementNotFound
}

// ListSettlements implements settlement.SettlementService. Managers are
// limited to their own department; employees see only their own.
func (s *SettlementServiceImpl) ListSettlements(ctx context.Context, filter settlement.SettlementFilter) ([]settlement.SettlementResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin():
	case actor.Role == auth.RoleManager:
		if filter.Department != "" && filter.Department != actor.Department {
			return nil, settlement.ErrOutsideDepartment
		}
		filter.Department = actor.Department
	default:
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, auth.ErrForbidden
		}
		filter.EmployeeID = actor.EmployeeID
		if filter.EmployeeID == "" {
			return []settlement.SettlementResponse{}, nil
		}
	}

	var settlements []settlement.Settlement
	if filter.EmployeeID != "" {
		settlements, err = s.SettlementRepository.ListByEmployee(ctx, filter.EmployeeID)
	} else {
		settlements, err = s.SettlementRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return toResponses(settlements, filter), nil
}

// ListSettlementsByEmployee implements settlement.SettlementService.
func (s *SettlementServiceImpl) ListSettlementsByEmployee(ctx context.Context, employeeID string) ([]settlement.SettlementResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanView(emp.ID, emp.Department) {
		return nil, auth.ErrForbidden
	}

	settlements, err := s.SettlementRepository.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return toResponses(settlements, settlement.SettlementFilter{}), nil
}

func authorizeSettlement(actor auth.Actor, department string) error {
	if actor.CanManage(department) {
		return nil
	}
	if actor.Role == auth.RoleManager {
		return settlement.ErrOutsideDepartment
	}
	return auth.ErrForbidden
}

func toResponses(settlements []settlement.Settlement, filter settlement.SettlementFilter) []settlement.SettlementResponse {
	responses := []settlement.SettlementResponse{}
	for _, st := range settlements {
		if filter.Matches(st) {
			responses = append(responses, settlement.ToResponse(st))
		}
	}
	return responses
}

func NewSettlementService(
	store record.Store,
	settlementRepository settlement.SettlementRepository,
	employeeRepository employee.EmployeeRepository,
	payrollRepository payroll.PayrollRepository,
	paymentRepository payment.PaymentRepository,
	activityService activity.ActivityService,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		store:                store,
		SettlementRepository: settlementRepository,
		EmployeeRepository:   employeeRepository,
		PayrollRepository:    payrollRepository,
		PaymentRepository:    paymentRepository,
		activityService:      activityService,
		now:                  time.Now,
	}
}
