package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CheckInRequest struct {
	EmployeeID string    `json:"-"`
	Timestamp  time.Time `json:"-"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Location   string    `json:"location,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must be at most 500 characters",
		})
	}

	return errs.OrNil()
}

type CheckOutRequest struct {
	EmployeeID string    `json:"-"`
	Timestamp  time.Time `json:"-"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp is required",
		})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	return errs.OrNil()
}

// AttendanceFilter selects records by inclusive date range and employee.
type AttendanceFilter struct {
	StartDate  string
	EndDate    string
	EmployeeID string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var okStart, okEnd bool
	if f.StartDate != "" {
		if start, okStart = validator.IsValidDate(f.StartDate); !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != "" {
		if end, okEnd = validator.IsValidDate(f.EndDate); !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	return errs.OrNil()
}

// Matches reports whether a record's date and employee pass the filter.
func (f AttendanceFilter) Matches(a Attendance) bool {
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	if f.StartDate != "" && a.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && a.Date > f.EndDate {
		return false
	}
	return true
}

type RecordTraceRequest struct {
	EmployeeID string    `json:"-"`
	Timestamp  time.Time `json:"-"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
}

func (r *RecordTraceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	errs = append(errs, validateCoordinates(&r.Latitude, &r.Longitude)...)

	return errs.OrNil()
}

type AttendanceResponse struct {
	EmployeeID            string           `json:"employee_id"`
	EmployeeName          string           `json:"employee_name,omitempty"`
	Department            string           `json:"department,omitempty"`
	Date                  string           `json:"date"`
	CheckIn               string           `json:"check_in"`
	CheckOut              *string          `json:"check_out,omitempty"`
	CheckInLatitude       *float64         `json:"check_in_latitude,omitempty"`
	CheckInLongitude      *float64         `json:"check_in_longitude,omitempty"`
	CheckOutLatitude      *float64         `json:"check_out_latitude,omitempty"`
	CheckOutLongitude     *float64         `json:"check_out_longitude,omitempty"`
	Location              string           `json:"location,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
	ShiftStartTime        string           `json:"shift_start_time"`
	ShiftEndTime          string           `json:"shift_end_time"`
	LateMinutes           int              `json:"late_minutes"`
	EarlyDepartureMinutes *int             `json:"early_departure_minutes,omitempty"`
	TotalHours            *decimal.Decimal `json:"total_hours,omitempty"`
	Status                string           `json:"status"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		EmployeeID:            a.EmployeeID,
		EmployeeName:          a.EmployeeName,
		Department:            a.Department,
		Date:                  a.Date,
		CheckIn:               a.CheckIn.Format(time.RFC3339),
		CheckInLatitude:       a.CheckInLatitude,
		CheckInLongitude:      a.CheckInLongitude,
		CheckOutLatitude:      a.CheckOutLatitude,
		CheckOutLongitude:     a.CheckOutLongitude,
		Location:              a.Location,
		Notes:                 a.Notes,
		ShiftStartTime:        a.ShiftStartTime,
		ShiftEndTime:          a.ShiftEndTime,
		LateMinutes:           a.LateMinutes,
		EarlyDepartureMinutes: a.EarlyDepartureMinutes,
		TotalHours:            a.TotalHours,
		Status:                string(a.Status),
	}
	if a.CheckOut != nil {
		s := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	return resp
}

type AnalyticsEntry struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	Department    string `json:"department"`
	CheckIn       string `json:"check_in"`
	ExpectedStart string `json:"expected_start"`
	// Minutes is how far outside the expected start the check-in fell.
	Minutes int `json:"minutes"`
}

type AnalyticsResponse struct {
	Date         string           `json:"date"`
	GraceMinutes int              `json:"grace_minutes"`
	TotalPresent int              `json:"total_present"`
	OnTime       int              `json:"on_time"`
	LateComers   []AnalyticsEntry `json:"late_comers"`
	EarlyBirds   []AnalyticsEntry `json:"early_birds"`
}

type TraceResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

type TraceListResponse struct {
	EmployeeID     string          `json:"employee_id"`
	Date           string          `json:"date"`
	Traces         []TraceResponse `json:"traces"`
	DistanceMeters float64         `json:"distance_meters"`
}

func validateCoordinates(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
		return errs
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lng != nil && !validator.IsValidLongitude(*lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}
