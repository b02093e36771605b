package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/activity"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.ActivityService
}

func NewActivityHandler(activityService activity.ActivityService) ActivityHandler {
	return &activityHandlerImpl{activityService: activityService}
}

func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := activity.ActivityFilter{
		Action:     q.Get("action"),
		Department: q.Get("department"),
		TargetID:   q.Get("target_id"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.activityService.ListActivities(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{
		Limit:      filter.Limit,
		TotalItems: int64(len(result)),
	})
}
