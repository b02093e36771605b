package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// Attendance is the record of one employee on one calendar date. It is
// created by the first check-in and mutated once by the check-out.
type Attendance struct {
	EmployeeID        string     `json:"employee_id"`
	EmployeeName      string     `json:"employee_name,omitempty"`
	Department        string     `json:"department,omitempty"`
	Date              string     `json:"date"`
	CheckIn           time.Time  `json:"check_in"`
	CheckInLatitude   *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64   `json:"check_in_longitude,omitempty"`
	CheckOut          *time.Time `json:"check_out,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	Location          string     `json:"location,omitempty"`
	Notes             string     `json:"notes,omitempty"`

	// Window resolved at check-in; check-out evaluates against it.
	ShiftStartTime string `json:"shift_start_time"`
	ShiftEndTime   string `json:"shift_end_time"`

	LateMinutes           int              `json:"late_minutes"`
	EarlyDepartureMinutes *int             `json:"early_departure_minutes,omitempty"`
	TotalHours            *decimal.Decimal `json:"total_hours,omitempty"`
	Status                Status           `json:"status"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`

	Version int64 `json:"-"`
}

func (a Attendance) CheckedOut() bool {
	return a.CheckOut != nil
}

// EarlyMinutes returns the early-departure minutes, 0 before check-out.
func (a Attendance) EarlyMinutes() int {
	if a.EarlyDepartureMinutes == nil {
		return 0
	}
	return *a.EarlyDepartureMinutes
}

type LocationTrace struct {
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Timestamp  time.Time `json:"timestamp"`
}
