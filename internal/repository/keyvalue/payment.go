package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type paymentRepository struct {
	store record.Store
}

func NewPaymentRepository(store record.Store) payment.PaymentRepository {
	return &paymentRepository{store: store}
}

// Create implements payment.PaymentRepository.
func (r *paymentRepository) Create(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	p.ID = record.PaymentKey(p.EmployeeID, p.PaidAt)

	data, err := encode(p)
	if err != nil {
		return payment.Payment{}, err
	}
	if err := r.store.Create(ctx, p.ID, data); err != nil {
		if errors.Is(err, record.ErrKeyExists) {
			return payment.Payment{}, payment.ErrPaymentAlreadyExists
		}
		return payment.Payment{}, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

// ListByEmployee implements payment.PaymentRepository.
func (r *paymentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payment.Payment, error) {
	return scan[payment.Payment](ctx, r.store, record.PaymentEmployeePrefix(employeeID), nil)
}

// ListAll implements payment.PaymentRepository.
func (r *paymentRepository) ListAll(ctx context.Context) ([]payment.Payment, error) {
	return scan[payment.Payment](ctx, r.store, record.PrefixPayment, nil)
}
