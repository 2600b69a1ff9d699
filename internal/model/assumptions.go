// Package model defines the planning inputs and computed financial records
// shared by every proforma component.
package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Assumptions is the complete set of business inputs for one projection run.
// Treat a value as immutable once validated; derived variants (sweeps,
// edits) go through Clone.
type Assumptions struct {
	HorizonMonths       int
	Pricing             Pricing
	InitialUsers        InitialUsers
	MonthlyGrowthRate   decimal.Decimal
	Payroll             []PayrollRole
	FixedCosts          map[string]decimal.Decimal
	VariableCostPerUser decimal.Decimal
	InitialInvestment   decimal.Decimal
	TaxRate             decimal.Decimal
}

// Pricing holds the monthly subscription price per tier.
type Pricing struct {
	Premium decimal.Decimal
	Basic   decimal.Decimal
}

// InitialUsers holds the month-1 subscriber counts per tier.
type InitialUsers struct {
	Premium int64
	Basic   int64
}

// PayrollRole is one line of the payroll plan. A role costs
// MonthlySalary x Headcount every month after its grace period: the first
// paid month is GraceMonths+1.
type PayrollRole struct {
	Name          string
	MonthlySalary decimal.Decimal
	Headcount     int
	GraceMonths   int
}

// FixedCostsTotal sums the non-payroll fixed cost categories.
func (a Assumptions) FixedCostsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a.FixedCosts {
		total = total.Add(v)
	}
	return total
}

// PayrollMonthlyTotal sums salary x headcount across all roles, ignoring
// grace periods. This is the steady-state monthly payroll once every grace
// period has lapsed.
func (a Assumptions) PayrollMonthlyTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range a.Payroll {
		total = total.Add(r.MonthlySalary.Mul(decimal.NewFromInt(int64(r.Headcount))))
	}
	return total
}

// FixedCostCategories returns the fixed cost category names in sorted order,
// for deterministic display.
func (a Assumptions) FixedCostCategories() []string {
	names := make([]string, 0, len(a.FixedCosts))
	for name := range a.FixedCosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy: the payroll slice and fixed cost map are
// duplicated so the copy can be modified without touching the original.
func (a Assumptions) Clone() Assumptions {
	out := a
	if a.Payroll != nil {
		out.Payroll = make([]PayrollRole, len(a.Payroll))
		copy(out.Payroll, a.Payroll)
	}
	if a.FixedCosts != nil {
		out.FixedCosts = make(map[string]decimal.Decimal, len(a.FixedCosts))
		for k, v := range a.FixedCosts {
			out.FixedCosts[k] = v
		}
	}
	return out
}
