package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/settlement"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SettlementHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{settlementService: settlementService}
}

func (h *settlementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := settlement.SettlementFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
	}

	result, err := h.settlementService.ListSettlements(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settlementHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.settlementService.ListSettlementsByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
