package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

var msPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// minutesAfter returns the whole minutes by which t falls after ref, or 0
// when t is at or before ref.
func minutesAfter(t, ref time.Time) int {
	if !t.After(ref) {
		return 0
	}
	return int(t.Sub(ref) / time.Minute)
}

// workedHours is the elapsed time between check-in and check-out in hours,
// rounded half away from zero to 2 decimals.
func workedHours(checkIn, checkOut time.Time) decimal.Decimal {
	ms := decimal.NewFromInt(checkOut.Sub(checkIn).Milliseconds())
	return ms.Div(msPerHour).Round(2)
}
