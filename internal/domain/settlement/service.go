package settlement

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
)

type SettlementService interface {
	GenerateSettlement(ctx context.Context, employeeID string) (SettlementResponse, error)
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]SettlementResponse, error)
	ListSettlementsByEmployee(ctx context.Context, employeeID string) ([]SettlementResponse, error)
}

// Settler is used by other services inside their own atomic unit.
type Settler interface {
	// Settle computes and stores a pending settlement for emp.
	Settle(ctx context.Context, emp employee.Employee, actor auth.Actor, separation string, at time.Time) (Settlement, error)
	// MarkPaid moves the employee's oldest pending settlement to paid.
	MarkPaid(ctx context.Context, employeeID string, actor auth.Actor, at time.Time) (Settlement, error)
	// PendingFor returns the employee's oldest pending settlement.
	PendingFor(ctx context.Context, employeeID string) (Settlement, error)
}
