package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// validPlan returns assumptions that pass validation; tests mutate one field
// at a time.
func validPlan() Assumptions {
	return Assumptions{
		HorizonMonths: 12,
		Pricing: Pricing{
			Premium: decimal.NewFromInt(10),
			Basic:   decimal.NewFromInt(5),
		},
		InitialUsers:      InitialUsers{Premium: 50, Basic: 100},
		MonthlyGrowthRate: decimal.RequireFromString("0.10"),
		Payroll: []PayrollRole{
			{Name: "CEO", MonthlySalary: decimal.NewFromInt(3000), Headcount: 1},
			{Name: "Fullstack Developer", MonthlySalary: decimal.NewFromInt(2500), Headcount: 2, GraceMonths: 3},
		},
		FixedCosts: map[string]decimal.Decimal{
			"infrastructure": decimal.NewFromInt(1000),
			"legal":          decimal.NewFromInt(500),
		},
		VariableCostPerUser: decimal.NewFromInt(3),
		InitialInvestment:   decimal.NewFromInt(20000),
		TaxRate:             decimal.RequireFromString("0.25"),
	}
}

func TestValidateAcceptsValidPlan(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Assumptions)
		field  string
	}{
		{"zero horizon", func(a *Assumptions) { a.HorizonMonths = 0 }, "horizon_months"},
		{"negative horizon", func(a *Assumptions) { a.HorizonMonths = -3 }, "horizon_months"},
		{"zero premium price", func(a *Assumptions) { a.Pricing.Premium = decimal.Zero }, "pricing.premium_price"},
		{"negative basic price", func(a *Assumptions) { a.Pricing.Basic = decimal.NewFromInt(-5) }, "pricing.basic_price"},
		{"negative premium users", func(a *Assumptions) { a.InitialUsers.Premium = -1 }, "initial_users.premium"},
		{"negative basic users", func(a *Assumptions) { a.InitialUsers.Basic = -1 }, "initial_users.basic"},
		{"both user counts zero", func(a *Assumptions) {
			a.InitialUsers.Premium = 0
			a.InitialUsers.Basic = 0
		}, "initial_users"},
		{"negative salary", func(a *Assumptions) {
			a.Payroll[0].MonthlySalary = decimal.NewFromInt(-1)
		}, "payroll.CEO.monthly_salary"},
		{"zero headcount", func(a *Assumptions) { a.Payroll[0].Headcount = 0 }, "payroll.CEO.headcount"},
		{"negative grace", func(a *Assumptions) { a.Payroll[0].GraceMonths = -1 }, "payroll.CEO.grace_months"},
		{"duplicate role names", func(a *Assumptions) {
			a.Payroll = append(a.Payroll, PayrollRole{Name: "CEO", MonthlySalary: decimal.NewFromInt(1), Headcount: 1})
		}, "payroll"},
		{"negative fixed cost", func(a *Assumptions) {
			a.FixedCosts["legal"] = decimal.NewFromInt(-500)
		}, "fixed_costs.legal"},
		{"negative variable cost", func(a *Assumptions) {
			a.VariableCostPerUser = decimal.NewFromInt(-3)
		}, "variable_cost_per_user"},
		{"negative investment", func(a *Assumptions) {
			a.InitialInvestment = decimal.NewFromInt(-1)
		}, "initial_investment"},
		{"tax rate above one", func(a *Assumptions) {
			a.TaxRate = decimal.RequireFromString("1.01")
		}, "tax_rate"},
		{"negative tax rate", func(a *Assumptions) {
			a.TaxRate = decimal.RequireFromString("-0.1")
		}, "tax_rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validPlan()
			tc.mutate(&a)
			err := a.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error for %s", tc.field)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("ValidationError.Field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestValidateAllowsDegenerateEconomics(t *testing.T) {
	// Price below variable cost is a valid plan that never breaks even.
	a := validPlan()
	a.Pricing.Premium = decimal.NewFromInt(2)
	a.Pricing.Basic = decimal.NewFromInt(1)
	a.VariableCostPerUser = decimal.NewFromInt(3)
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for price below variable cost", err)
	}
}

func TestValidateAllowsNegativeGrowth(t *testing.T) {
	a := validPlan()
	a.MonthlyGrowthRate = decimal.RequireFromString("-0.25")
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil for negative growth", err)
	}
}

func TestValidateAllowsBoundaryTaxRates(t *testing.T) {
	for _, rate := range []string{"0", "1"} {
		a := validPlan()
		a.TaxRate = decimal.RequireFromString(rate)
		if err := a.Validate(); err != nil {
			t.Fatalf("Validate() with tax_rate=%s = %v, want nil", rate, err)
		}
	}
}
