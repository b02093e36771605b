package payment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	EmployeeID  string           `json:"employee_id"`
	Type        Type             `json:"type"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description,omitempty"`
	Month       string           `json:"month,omitempty"`
}

func (r *CreatePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.Type = Type(strings.ToLower(strings.TrimSpace(string(r.Type))))
	if !validator.IsInSlice(string(r.Type), TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: ErrInvalidPaymentType.Error(),
		})
	}

	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be positive",
		})
	}
	if r.Amount == nil && (r.Type == TypeAdvance || r.Type == TypeCustom) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: ErrAmountRequired.Error(),
		})
	}

	if r.Month != "" {
		if _, ok := validator.IsValidMonth(r.Month); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	return errs.OrNil()
}

type PaymentFilter struct {
	EmployeeID string
	Type       string
}

type PaymentResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Department   string          `json:"department,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description,omitempty"`
	Month        string          `json:"month"`
	PaidBy       string          `json:"paid_by"`
	PaidAt       string          `json:"paid_at"`
	Deducted     bool            `json:"deducted"`
}

func ToResponse(p Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Department:   p.Department,
		Type:         string(p.Type),
		Amount:       p.Amount,
		Description:  p.Description,
		Month:        p.Month,
		PaidBy:       p.PaidBy,
		PaidAt:       p.PaidAt.Format(time.RFC3339),
		Deducted:     p.Deducted,
	}
}
