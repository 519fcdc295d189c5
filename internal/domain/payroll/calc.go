package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NetSalary is always derived: base + bonuses - deductions, exact decimal.
func NetSalary(base, bonuses, deductions decimal.Decimal) decimal.Decimal {
	return base.Add(bonuses).Sub(deductions)
}

// DecimalOr parses a monetary form value. Empty or unparsable input falls
// back to the previous value instead of failing the request.
func DecimalOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}
