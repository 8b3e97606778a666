package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/peoplebase/hrm-backend-go/internal/pkg/validator"
)

type UpsertRequest struct {
	EmployeeID    string          `json:"employee_id"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	Allowances    Allowances      `json:"allowances"`
	Deductions    Deductions      `json:"deductions"`
	EffectiveFrom string          `json:"effective_from"`
}

func (r *UpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}
	for field, amount := range map[string]decimal.Decimal{
		"allowances.hra":            r.Allowances.HRA,
		"allowances.transport":      r.Allowances.Transport,
		"allowances.medical":        r.Allowances.Medical,
		"allowances.other":          r.Allowances.Other,
		"deductions.tax":            r.Deductions.Tax,
		"deductions.provident_fund": r.Deductions.ProvidentFund,
		"deductions.insurance":      r.Deductions.Insurance,
		"deductions.other":          r.Deductions.Other,
	} {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "component amounts must not be negative",
			})
		}
	}
	if validator.IsEmpty(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from is required",
		})
	} else if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be a YYYY-MM-DD date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Allowances      Allowances      `json:"allowances"`
	Deductions      Deductions      `json:"deductions"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	EffectiveFrom   string          `json:"effective_from"`
}

func ToPayrollResponse(p PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		BasicSalary:     p.BasicSalary,
		Allowances:      p.Allowances,
		Deductions:      p.Deductions,
		TotalAllowances: p.Allowances.Sum(),
		TotalDeductions: p.Deductions.Sum(),
		NetSalary:       p.NetSalary,
		EffectiveFrom:   p.EffectiveFrom.Format("2006-01-02"),
	}
}
