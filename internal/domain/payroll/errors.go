package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrPayrollRecordFinalized  = errors.New("payroll record is approved or paid and cannot be regenerated")
	ErrInvalidStatusTransition = errors.New("payroll status can only move forward: draft, approved, paid")
	ErrInvalidPayrollStatus    = errors.New("status must be draft, approved or paid")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrOvertimeNotFound        = errors.New("overtime entry not found")
	ErrNegativeOvertimeHours   = errors.New("overtime hours must not be negative")
)
