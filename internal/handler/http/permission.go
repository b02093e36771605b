package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type PermissionHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Grant(w http.ResponseWriter, r *http.Request)
}

type permissionHandlerImpl struct {
	permissionService auth.PermissionService
}

func NewPermissionHandler(permissionService auth.PermissionService) PermissionHandler {
	return &permissionHandlerImpl{permissionService: permissionService}
}

func (h *permissionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.permissionService.GetPermissions(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *permissionHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req auth.GrantPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = chi.URLParam(r, "userID")

	result, err := h.permissionService.GrantPermissions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Permissions updated", result)
}
