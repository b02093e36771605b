package payment

import "errors"

var (
	ErrInvalidPaymentType   = errors.New("type must be full_salary, half_salary, advance, custom or final_settlement")
	ErrAmountRequired       = errors.New("amount is required for advance and custom payments")
	ErrNoPendingSettlement  = errors.New("employee has no pending final settlement")
	ErrPaymentAlreadyExists = errors.New("a payment was already recorded for this employee at this instant")
)
