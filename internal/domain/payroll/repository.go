package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll records. The
// (employee_id, effective_from) pair is unique in storage.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	Update(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, effectiveFrom time.Time) (*PayrollRecord, error)

	// GetLatestByEmployee returns the most recent record by effective date
	GetLatestByEmployee(ctx context.Context, employeeID string) (PayrollRecord, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]PayrollRecord, error)
	ListAll(ctx context.Context) ([]PayrollRecord, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
