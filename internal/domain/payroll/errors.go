package payroll

import "errors"

var (
	ErrPayrollNotFound   = errors.New("payroll record not found")
	ErrNegativeNetSalary = errors.New("net salary would be negative")
	ErrPeriodConflict    = errors.New("payroll record for this period already exists")
	ErrUnauthorized      = errors.New("not authorized to access this payroll record")
)
