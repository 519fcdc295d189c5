package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Record struct {
	ID         string          `json:"id"`
	ProfileID  string          `json:"profileId"`
	Employee   string          `json:"employee,omitempty"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Deductions decimal.Decimal `json:"deductions"`
	NetSalary  decimal.Decimal `json:"netSalary"`
	Remarks    string          `json:"remarks"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CreateInput carries raw form values; monetary fields are parsed leniently
// with a zero default.
type CreateInput struct {
	ProfileID  string `json:"profileId"`
	BaseSalary string `json:"baseSalary"`
	Bonuses    string `json:"bonuses"`
	Deductions string `json:"deductions"`
	Remarks    string `json:"remarks"`
}

// UpdateInput carries raw form values; empty or unparsable monetary fields
// fall back to the stored value.
type UpdateInput struct {
	BaseSalary string `json:"baseSalary"`
	Bonuses    string `json:"bonuses"`
	Deductions string `json:"deductions"`
	Remarks    string `json:"remarks"`
}
