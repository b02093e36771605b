package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByEmployee(w http.ResponseWriter, r *http.Request)
	GetByEmployeeAndDate(w http.ResponseWriter, r *http.Request)
	Analytics(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	RecordTrace(w http.ResponseWriter, r *http.Request)
	ListTraces(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// subject lets an admin record attendance on behalf of an employee or at an
// explicit instant. Both default to the caller and the current time.
type subject struct {
	EmployeeID string     `json:"employee_id,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

func (s subject) timestamp() time.Time {
	if s.Timestamp == nil {
		return time.Time{}
	}
	return *s.Timestamp
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		attendance.CheckInRequest
		subject
	}
	if err := decodeOptionalBody(r, &body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := body.CheckInRequest
	req.EmployeeID = body.subject.EmployeeID
	req.Timestamp = body.subject.timestamp()

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		attendance.CheckOutRequest
		subject
	}
	if err := decodeOptionalBody(r, &body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := body.CheckOutRequest
	req.EmployeeID = body.subject.EmployeeID
	req.Timestamp = body.subject.timestamp()

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMyAttendance(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByDateRange(r.Context(), attendanceFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByEmployeeAndDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetByEmployeeAndDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetByEmployeeAndDate(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Analytics implements AttendanceHandler.
func (h *attendanceHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAnalytics(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilter(r)

	content, err := h.attendanceService.ExportAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "attendance.xlsx"
	if filter.StartDate != "" || filter.EndDate != "" {
		filename = "attendance-" + filter.StartDate + "_" + filter.EndDate + ".xlsx"
	}
	response.File(w, xlsxContentType, filename, content)
}

// RecordTrace implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordTrace(w http.ResponseWriter, r *http.Request) {
	var body struct {
		attendance.RecordTraceRequest
		subject
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := body.RecordTraceRequest
	req.EmployeeID = body.subject.EmployeeID
	req.Timestamp = body.subject.timestamp()

	result, err := h.attendanceService.RecordLocationTrace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location recorded", result)
}

// ListTraces implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListTraces(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListLocationTraces(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func attendanceFilter(r *http.Request) attendance.AttendanceFilter {
	q := r.URL.Query()
	return attendance.AttendanceFilter{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
	}
}
