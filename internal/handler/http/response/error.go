package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payment"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fail(w, http.StatusUnprocessableEntity, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		fail(w, http.StatusNotFound, "Employee not found", nil)
	case errors.Is(err, employee.ErrEmployeeExists):
		fail(w, http.StatusConflict, "Employee already exists", nil)
	case errors.Is(err, employee.ErrEmployeeAlreadySeparated),
		errors.Is(err, employee.ErrLifecycleStatusUnchanged):
		fail(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, employee.ErrSalaryChangeRequiresAdmin):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceDisabled):
		Forbidden(w, "Attendance is disabled for this employee")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		fail(w, http.StatusNotFound, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		fail(w, http.StatusNotFound, "Attendance record not found", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		fail(w, http.StatusConflict, "Already checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		fail(w, http.StatusConflict, "Already checked out today", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		fail(w, http.StatusNotFound, "Payroll record not found", nil)
	case errors.Is(err, payroll.ErrPayrollRecordFinalized),
		errors.Is(err, payroll.ErrInvalidStatusTransition):
		fail(w, http.StatusConflict, err.Error(), nil)

	// Settlement and payment domain errors
	case errors.Is(err, settlement.ErrOutsideDepartment):
		Forbidden(w, err.Error())
	case errors.Is(err, settlement.ErrSettlementNotFound):
		fail(w, http.StatusNotFound, "Settlement not found", nil)
	case errors.Is(err, settlement.ErrSettlementExists),
		errors.Is(err, payment.ErrPaymentAlreadyExists):
		fail(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, payment.ErrNoPendingSettlement):
		fail(w, http.StatusNotFound, err.Error(), nil)

	// Store
	case errors.Is(err, record.ErrVersionConflict), errors.Is(err, record.ErrKeyExists):
		fail(w, http.StatusConflict, "Record was modified concurrently, please retry", nil)
	case errors.Is(err, record.ErrInvalidKeyPart):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		fail(w, http.StatusInternalServerError, "An unexpected error occurred", nil)
	}
}
