package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// ValidationError reports the first assumptions field that failed
// validation. The engine never sees an invalid Assumptions value: Validate
// runs before any projection work begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid assumptions: %s %s", e.Field, e.Reason)
}

// Validate checks the structural constraints on the assumptions and returns
// a *ValidationError naming the offending field, or nil. Economic
// plausibility (e.g. price above variable cost) is deliberately not
// checked: such plans are valid, they just never break even.
func (a Assumptions) Validate() error {
	if a.HorizonMonths <= 0 {
		return &ValidationError{Field: "horizon_months", Reason: "must be positive"}
	}
	if !a.Pricing.Premium.IsPositive() {
		return &ValidationError{Field: "pricing.premium_price", Reason: "must be positive"}
	}
	if !a.Pricing.Basic.IsPositive() {
		return &ValidationError{Field: "pricing.basic_price", Reason: "must be positive"}
	}
	if a.InitialUsers.Premium < 0 {
		return &ValidationError{Field: "initial_users.premium", Reason: "cannot be negative"}
	}
	if a.InitialUsers.Basic < 0 {
		return &ValidationError{Field: "initial_users.basic", Reason: "cannot be negative"}
	}
	if a.InitialUsers.Premium == 0 && a.InitialUsers.Basic == 0 {
		return &ValidationError{Field: "initial_users", Reason: "premium and basic cannot both be zero"}
	}

	seen := make(map[string]bool, len(a.Payroll))
	for _, r := range a.Payroll {
		if r.MonthlySalary.IsNegative() {
			return &ValidationError{Field: "payroll." + r.Name + ".monthly_salary", Reason: "cannot be negative"}
		}
		if r.Headcount < 1 {
			return &ValidationError{Field: "payroll." + r.Name + ".headcount", Reason: "must be at least 1"}
		}
		if r.GraceMonths < 0 {
			return &ValidationError{Field: "payroll." + r.Name + ".grace_months", Reason: "cannot be negative"}
		}
		if seen[r.Name] {
			return &ValidationError{Field: "payroll", Reason: fmt.Sprintf("duplicate role name %q", r.Name)}
		}
		seen[r.Name] = true
	}

	for _, name := range a.FixedCostCategories() {
		if a.FixedCosts[name].IsNegative() {
			return &ValidationError{Field: "fixed_costs." + name, Reason: "cannot be negative"}
		}
	}
	if a.VariableCostPerUser.IsNegative() {
		return &ValidationError{Field: "variable_cost_per_user", Reason: "cannot be negative"}
	}
	if a.InitialInvestment.IsNegative() {
		return &ValidationError{Field: "initial_investment", Reason: "cannot be negative"}
	}
	if a.TaxRate.IsNegative() || a.TaxRate.GreaterThan(decimalOne) {
		return &ValidationError{Field: "tax_rate", Reason: "must be between 0 and 1"}
	}
	return nil
}
