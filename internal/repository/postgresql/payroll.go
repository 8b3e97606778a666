package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	id, employee_id, basic_salary,
	allowance_hra, allowance_transport, allowance_medical, allowance_other,
	deduction_tax, deduction_provident_fund, deduction_insurance, deduction_other,
	net_salary, effective_from, created_at, updated_at`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var p payroll.PayrollRecord
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.BasicSalary,
		&p.Allowances.HRA, &p.Allowances.Transport, &p.Allowances.Medical, &p.Allowances.Other,
		&p.Deductions.Tax, &p.Deductions.ProvidentFund, &p.Deductions.Insurance, &p.Deductions.Other,
		&p.NetSalary, &p.EffectiveFrom, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements payroll.PayrollRepository. A unique violation on
// (employee_id, effective_from) surfaces wrapped for the service to map.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, basic_salary,
			allowance_hra, allowance_transport, allowance_medical, allowance_other,
			deduction_tax, deduction_provident_fund, deduction_insurance, deduction_other,
			net_salary, effective_from
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	record.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.BasicSalary,
		record.Allowances.HRA,
		record.Allowances.Transport,
		record.Allowances.Medical,
		record.Allowances.Other,
		record.Deductions.Tax,
		record.Deductions.ProvidentFund,
		record.Deductions.Insurance,
		record.Deductions.Other,
		record.NetSalary,
		record.EffectiveFrom,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			basic_salary = $1,
			allowance_hra = $2, allowance_transport = $3, allowance_medical = $4, allowance_other = $5,
			deduction_tax = $6, deduction_provident_fund = $7, deduction_insurance = $8, deduction_other = $9,
			net_salary = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.BasicSalary,
		record.Allowances.HRA,
		record.Allowances.Transport,
		record.Allowances.Medical,
		record.Allowances.Other,
		record.Deductions.Tax,
		record.Deductions.ProvidentFund,
		record.Deductions.Insurance,
		record.Deductions.Other,
		record.NetSalary,
		record.ID,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by id: %w", err)
	}

	return p, nil
}

// GetByEmployeeAndPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, effectiveFrom time.Time) (*payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND effective_from = $2
		LIMIT 1
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, effectiveFrom))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that period
		}
		return nil, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return &p, nil
}

// GetLatestByEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1
		ORDER BY effective_from DESC
		LIMIT 1
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get latest payroll record: %w", err)
	}

	return p, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepository) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	return collectPayrolls(rows)
}

// ListAll implements payroll.PayrollRepository.
func (r *payrollRepository) ListAll(ctx context.Context) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_records ORDER BY effective_from DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	return collectPayrolls(rows)
}

func collectPayrolls(rows pgx.Rows) ([]payroll.PayrollRecord, error) {
	var records []payroll.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

// DeleteByEmployeeID implements payroll.PayrollRepository.
func (r *payrollRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete payroll records: %w", err)
	}

	return nil
}
