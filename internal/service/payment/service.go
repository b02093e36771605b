package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

type PaymentServiceImpl struct {
	store record.Store
	payment.PaymentRepository
	employee.EmployeeRepository
	permissions     auth.PermissionService
	settler         settlement.Settler
	activityService activity.ActivityService
	now             func() time.Time
}

// CreatePayment implements payment.PaymentService.
func (s *PaymentServiceImpl) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (payment.PaymentResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	allowed, err := s.permissions.Allowed(ctx, actor, auth.PermissionMakePayments)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	if !allowed {
		return payment.PaymentResponse{}, auth.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	now := s.now().UTC()
	if req.Month == "" {
		req.Month = now.Format(record.MonthLayout)
	}

	var created payment.Payment
	err = s.store.Atomically(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		p := payment.Payment{
			EmployeeID:   emp.ID,
			EmployeeName: emp.Name,
			Department:   emp.Department,
			Type:         req.Type,
			Description:  req.Description,
			Month:        req.Month,
			PaidBy:       actor.UserID,
			PaidAt:       now,
		}

		switch req.Type {
		case payment.TypeFullSalary:
			p.Amount = emp.MonthlySalary
		case payment.TypeHalfSalary:
			p.Amount = emp.MonthlySalary.Div(two)
		case payment.TypeFinalSettlement:
			paid, err := s.settler.MarkPaid(ctx, emp.ID, actor, now)
			if err != nil {
				if errors.Is(err, settlement.ErrSettlementNotFound) {
					return payment.ErrNoPendingSettlement
				}
				return err
			}
			p.Amount = paid.NetSettlement
		}
		if req.Amount != nil {
			p.Amount = *req.Amount
		}

		created, err = s.PaymentRepository.Create(ctx, p)
		if err != nil {
			return err
		}

		return s.activityService.Log(ctx, activity.LogEntry{
			Action:     activity.ActionPaymentMade,
			Actor:      actor,
			TargetID:   emp.ID,
			TargetName: emp.Name,
			Department: emp.Department,
			Details: map[string]any{
				"type":        string(created.Type),
				"amount":      created.Amount.String(),
				"description": created.Description,
			},
		})
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, payment.ErrNoPendingSettlement) ||
			errors.Is(err, payment.ErrPaymentAlreadyExists) {
			return payment.PaymentResponse{}, err
		}
		return payment.PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	return payment.ToResponse(created), nil
}

// ListPayments implements payment.PaymentService. Payment operators see
// everything, managers their department and employees their own payments.
func (s *PaymentServiceImpl) ListPayments(ctx context.Context, filter payment.PaymentFilter) ([]payment.PaymentResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	operator, err := s.permissions.Allowed(ctx, actor, auth.PermissionMakePayments)
	if err != nil {
		return nil, err
	}

	department := ""
	switch {
	case operator:
	case actor.Role == auth.RoleManager:
		department = actor.Department
	default:
		if filter.EmployeeID != "" && filter.EmployeeID != actor.EmployeeID {
			return nil, auth.ErrForbidden
		}
		filter.EmployeeID = actor.EmployeeID
		if filter.EmployeeID == "" {
			return []payment.PaymentResponse{}, nil
		}
	}

	var payments []payment.Payment
	if filter.EmployeeID != "" {
		payments, err = s.PaymentRepository.ListByEmployee(ctx, filter.EmployeeID)
	} else {
		payments, err = s.PaymentRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	responses := []payment.PaymentResponse{}
	for _, p := range payments {
		if department != "" && p.Department != department {
			continue
		}
		if filter.Type != "" && string(p.Type) != filter.Type {
			continue
		}
		responses = append(responses, payment.ToResponse(p))
	}
	return responses, nil
}

func NewPaymentService(
	store record.Store,
	paymentRepository payment.PaymentRepository,
	employeeRepository employee.EmployeeRepository,
	permissions auth.PermissionService,
	settler settlement.Settler,
	activityService activity.ActivityService,
) payment.PaymentService {
	return &PaymentServiceImpl{
		store:              store,
		PaymentRepository:  paymentRepository,
		EmployeeRepository: employeeRepository,
		permissions:        permissions,
		settler:            settler,
		activityService:    activityService,
		now:                time.Now,
	}
}
