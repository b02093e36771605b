package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type PayrollHandler interface {
	RecordOvertime(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) RecordOvertime(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecordOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RecordOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime recorded", result)
}

// Generate accepts either employee_id or employee_ids; the latter runs a batch.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID  string   `json:"employee_id"`
		EmployeeIDs []string `json:"employee_ids"`
		Month       int      `json:"month"`
		Year        int      `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if len(body.EmployeeIDs) > 0 {
		result, err := h.payrollService.GeneratePayrollBatch(r.Context(), payroll.GeneratePayrollBatchRequest{
			EmployeeIDs: body.EmployeeIDs,
			Month:       body.Month,
			Year:        body.Year,
		})
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Payroll batch generated", result)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), payroll.GeneratePayrollRequest{
		EmployeeID: body.EmployeeID,
		Month:      body.Month,
		Year:       body.Year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       queryInt(r, "year"),
		Month:      queryInt(r, "month"),
		Status:     r.URL.Query().Get("status"),
	}

	result, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, year, month := payrollPeriod(r)

	result, err := h.payrollService.GetPayroll(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID, req.Year, req.Month = payrollPeriod(r)

	result, err := h.payrollService.UpdatePayrollStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll status updated", result)
}

func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	employeeID, year, month := payrollPeriod(r)

	slip, err := h.payrollService.GeneratePayslip(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/pdf", slip.Filename, slip.Content)
}

func payrollPeriod(r *http.Request) (string, int, int) {
	return chi.URLParam(r, "employeeID"), pathInt(chi.URLParam(r, "year")), pathInt(chi.URLParam(r, "month"))
}
