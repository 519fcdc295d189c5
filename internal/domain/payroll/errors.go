package payroll

import "errors"

var (
	ErrNotFound = errors.New("payroll record not found")
	ErrExists   = errors.New("employee already has a payroll record")
)
