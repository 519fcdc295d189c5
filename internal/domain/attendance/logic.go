package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkedHours returns (out - in) in hours, rounded to 2 decimal places.
// Computed over whole seconds in fixed-point so 09:00-17:30 is exactly 8.50.
func WorkedHours(checkIn, checkOut time.Time) decimal.Decimal {
	seconds := int64(checkOut.Sub(checkIn) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600)).Round(2)
}
