package payment

import "context"

type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payment, error)
	ListAll(ctx context.Context) ([]Payment, error)
}
