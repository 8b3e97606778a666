package payroll

import "context"

// PayrollService defines the payroll derivation engine
type PayrollService interface {
	// Upsert creates or updates the record for (employee, effective_from),
	// always recomputing net salary (admin/HR only)
	Upsert(ctx context.Context, req UpsertRequest) (PayrollResponse, error)

	// GetMyPayroll returns the authenticated employee's latest record
	GetMyPayroll(ctx context.Context) (PayrollResponse, error)

	// GetEmployeePayroll returns one employee's latest record (owner or
	// admin/HR)
	GetEmployeePayroll(ctx context.Context, employeeID string) (PayrollResponse, error)

	// GetEmployeePayrollHistory returns one employee's records newest first
	// (owner or admin/HR)
	GetEmployeePayrollHistory(ctx context.Context, employeeID string) ([]PayrollResponse, error)

	// ListPayrolls returns every employee's records (admin/HR only)
	ListPayrolls(ctx context.Context) ([]PayrollResponse, error)

	// Payslip renders the PDF payslip for one payroll record (owner or
	// admin/HR)
	Payslip(ctx context.Context, recordID string) ([]byte, error)
}
