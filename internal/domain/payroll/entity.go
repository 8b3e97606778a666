package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allowances are the itemized additions to basic salary. Absent components
// stay at decimal zero.
type Allowances struct {
	HRA       decimal.Decimal `json:"hra"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Other     decimal.Decimal `json:"other"`
}

// Sum returns the total of all allowance components.
func (a Allowances) Sum() decimal.Decimal {
	return a.HRA.Add(a.Transport).Add(a.Medical).Add(a.Other)
}

// Deductions are the itemized subtractions from gross salary.
type Deductions struct {
	Tax           decimal.Decimal `json:"tax"`
	ProvidentFund decimal.Decimal `json:"provident_fund"`
	Insurance     decimal.Decimal `json:"insurance"`
	Other         decimal.Decimal `json:"other"`
}

// Sum returns the total of all deduction components.
func (d Deductions) Sum() decimal.Decimal {
	return d.Tax.Add(d.ProvidentFund).Add(d.Insurance).Add(d.Other)
}

// PayrollRecord holds one employee's pay for a period. NetSalary is derived,
// never caller-supplied; see ComputeNet.
type PayrollRecord struct {
	ID            string
	EmployeeID    string
	BasicSalary   decimal.Decimal
	Allowances    Allowances
	Deductions    Deductions
	NetSalary     decimal.Decimal
	EffectiveFrom time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ComputeNet derives net salary: basic + sum(allowances) - sum(deductions).
// Recomputed on every write so a partial component update can never leave a
// stale net.
func ComputeNet(basic decimal.Decimal, allowances Allowances, deductions Deductions) decimal.Decimal {
	return basic.Add(allowances.Sum()).Sub(deductions.Sum())
}
