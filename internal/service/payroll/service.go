package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jung-kurt/gofpdf"

	"github.com/peoplebase/hrm-backend-go/internal/config"
	"github.com/peoplebase/hrm-backend-go/internal/domain/payroll"
	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	profile.ProfileRepository
	cfg config.PayrollConfig
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	profileRepo profile.ProfileRepository,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository: payrollRepo,
		ProfileRepository: profileRepo,
		cfg:               cfg,
	}
}

// Upsert implements payroll.PayrollService. Net salary is derived here on
// every write; a caller-supplied net is never trusted.
func (s *PayrollServiceImpl) Upsert(ctx context.Context, req payroll.UpsertRequest) (payroll.PayrollResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !actor.IsManager() {
		return payroll.PayrollResponse{}, payroll.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.ProfileRepository.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	effectiveFrom, _ := time.ParseInLocation("2006-01-02", req.EffectiveFrom, time.UTC)

	net := payroll.ComputeNet(req.BasicSalary, req.Allowances, req.Deductions)
	if s.cfg.RejectNegativeNet && net.IsNegative() {
		return payroll.PayrollResponse{}, payroll.ErrNegativeNetSalary
	}

	record := payroll.PayrollRecord{
		EmployeeID:    req.EmployeeID,
		BasicSalary:   req.BasicSalary,
		Allowances:    req.Allowances,
		Deductions:    req.Deductions,
		NetSalary:     net,
		EffectiveFrom: effectiveFrom,
	}

	existing, err := s.PayrollRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, effectiveFrom)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to look up payroll period: %w", err)
	}

	var saved payroll.PayrollRecord
	if existing == nil {
		saved, err = s.PayrollRepository.Create(ctx, record)
	} else {
		record.ID = existing.ID
		saved, err = s.PayrollRepository.Update(ctx, record)
	}
	if err != nil {
		// The period pre-check races with concurrent upserts; the
		// (employee_id, effective_from) unique constraint is authoritative.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollResponse{}, payroll.ErrPeriodConflict
		}
		return payroll.PayrollResponse{}, fmt.Errorf("failed to save payroll record: %w", err)
	}

	return payroll.ToPayrollResponse(saved), nil
}

// GetMyPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMyPayroll(ctx context.Context) (payroll.PayrollResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	record, err := s.PayrollRepository.GetLatestByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(record), nil
}

// GetEmployeePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEmployeePayroll(ctx context.Context, employeeID string) (payroll.PayrollResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !actor.CanAccess(employeeID) {
		return payroll.PayrollResponse{}, payroll.ErrUnauthorized
	}

	record, err := s.PayrollRepository.GetLatestByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToPayrollResponse(record), nil
}

// GetEmployeePayrollHistory implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEmployeePayrollHistory(ctx context.Context, employeeID string) ([]payroll.PayrollResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(employeeID) {
		return nil, payroll.ErrUnauthorized
	}

	records, err := s.PayrollRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll history: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, payroll.ToPayrollResponse(record))
	}

	return responses, nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context) ([]payroll.PayrollResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, payroll.ErrUnauthorized
	}

	records, err := s.PayrollRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, payroll.ToPayrollResponse(record))
	}

	return responses, nil
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, recordID string) ([]byte, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.PayrollRepository.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(record.EmployeeID) {
		return nil, payroll.ErrUnauthorized
	}

	employeeName := record.EmployeeID
	if p, err := s.ProfileRepository.GetByEmployeeID(ctx, record.EmployeeID); err == nil {
		employeeName = p.FirstName + " " + p.LastName
	}

	return renderPayslip(record, employeeName)
}

func renderPayslip(record payroll.PayrollRecord, employeeName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Payslip", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Employee: %s (%s)", employeeName, record.EmployeeID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Effective from: %s", record.EffectiveFrom.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	line := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(120, 7, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, amount, "1", 1, "R", false, 0, "")
	}

	line("Basic salary", record.BasicSalary.StringFixed(2), false)

	line("Allowances", record.Allowances.Sum().StringFixed(2), true)
	line("  HRA", record.Allowances.HRA.StringFixed(2), false)
	line("  Transport", record.Allowances.Transport.StringFixed(2), false)
	line("  Medical", record.Allowances.Medical.StringFixed(2), false)
	line("  Other", record.Allowances.Other.StringFixed(2), false)

	line("Deductions", record.Deductions.Sum().StringFixed(2), true)
	line("  Tax", record.Deductions.Tax.StringFixed(2), false)
	line("  Provident fund", record.Deductions.ProvidentFund.StringFixed(2), false)
	line("  Insurance", record.Deductions.Insurance.StringFixed(2), false)
	line("  Other", record.Deductions.Other.StringFixed(2), false)

	line("Net salary", record.NetSalary.StringFixed(2), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	return buf.Bytes(), nil
}
