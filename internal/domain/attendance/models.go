package attendance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate}

type Record struct {
	ID          string           `json:"id"`
	ProfileID   string           `json:"profileId"`
	Employee    string           `json:"employee,omitempty"`
	Date        time.Time        `json:"date"`
	CheckIn     *time.Time       `json:"checkIn,omitempty"`
	CheckOut    *time.Time       `json:"checkOut,omitempty"`
	WorkedHours *decimal.Decimal `json:"workedHours,omitempty"`
	Status      string           `json:"status"`
}

func ValidStatus(status string) bool {
	for _, candidate := range Statuses {
		if status == candidate {
			return true
		}
	}
	return false
}

// NormalizeStatus maps any casing of a known status to its canonical
// spelling. Unknown values pass through unchanged for ValidStatus to reject.
func NormalizeStatus(status string) string {
	trimmed := strings.TrimSpace(status)
	for _, candidate := range Statuses {
		if strings.EqualFold(trimmed, candidate) {
			return candidate
		}
	}
	return trimmed
}
