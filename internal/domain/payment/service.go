package payment

import "context"

type PaymentService interface {
	// CreatePayment records a payment. A final_settlement payment also marks
	// the employee's pending settlement as paid.
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, error)
}
