package settlement

import "context"

type SettlementRepository interface {
	Create(ctx context.Context, s Settlement) (Settlement, error)
	// Update writes s only if its Version is still current.
	Update(ctx context.Context, s Settlement) (Settlement, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Settlement, error)
	ListAll(ctx context.Context) ([]Settlement, error)
}
