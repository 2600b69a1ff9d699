package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

func TestFindBreakEvenLaterMonth(t *testing.T) {
	// 10 premium users at 10 growing 50%/month against a flat 160 salary:
	// month 1 = 100-160, month 2 = 150-160, month 3 = 230-160 (22.5 rounds
	// up to 23 users).
	a := model.Assumptions{
		HorizonMonths:     3,
		Pricing:           model.Pricing{Premium: decimal.NewFromInt(10), Basic: decimal.NewFromInt(1)},
		InitialUsers:      model.InitialUsers{Premium: 10, Basic: 0},
		MonthlyGrowthRate: decimal.RequireFromString("0.50"),
		Payroll: []model.PayrollRole{
			{Name: "Founder", MonthlySalary: decimal.NewFromInt(160), Headcount: 1},
		},
	}
	ledger := Project(a)

	be, ok := FindBreakEven(ledger)
	if !ok {
		t.Fatal("FindBreakEven = not found, want month 3")
	}
	if be.Month != 3 {
		t.Fatalf("break-even month = %d, want 3", be.Month)
	}
	assertDec(t, "break-even net profit", be.NetProfit, "70")
}

func TestFindBreakEvenNotFoundOnDegenerateEconomics(t *testing.T) {
	// Variable cost above both prices: every added user loses money, so no
	// month can cross. Still a full ledger, still not an error.
	a := examplePlan()
	a.VariableCostPerUser = decimal.NewFromInt(20)
	ledger := Project(a)

	if len(ledger) != a.HorizonMonths {
		t.Fatalf("len(ledger) = %d, want %d", len(ledger), a.HorizonMonths)
	}
	if _, ok := FindBreakEven(ledger); ok {
		t.Fatal("FindBreakEven found a month, want not found")
	}
}

func TestFindBreakEvenRequiresStrictlyPositive(t *testing.T) {
	// Zero profit is not break-even.
	l := model.Ledger{
		{Month: 1, NetProfit: decimal.Zero},
		{Month: 2, NetProfit: decimal.NewFromInt(1)},
	}
	be, ok := FindBreakEven(l)
	if !ok || be.Month != 2 {
		t.Fatalf("FindBreakEven = month %d, ok %v; want month 2, true", be.Month, ok)
	}
}

func TestFindBreakEvenFirstCrossingOnly(t *testing.T) {
	// A later dip back into losses does not move the break-even month.
	l := model.Ledger{
		{Month: 1, NetProfit: decimal.NewFromInt(-10)},
		{Month: 2, NetProfit: decimal.NewFromInt(5)},
		{Month: 3, NetProfit: decimal.NewFromInt(-20)},
	}
	be, ok := FindBreakEven(l)
	if !ok || be.Month != 2 {
		t.Fatalf("FindBreakEven = month %d, ok %v; want month 2, true", be.Month, ok)
	}
}

func TestRequiredPremiumUsers(t *testing.T) {
	a := examplePlan()
	a.Payroll = []model.PayrollRole{
		{Name: "CEO", MonthlySalary: decimal.NewFromInt(3000), Headcount: 1},
	}
	a.FixedCosts = map[string]decimal.Decimal{"other": decimal.NewFromInt(500)}
	a.VariableCostPerUser = decimal.NewFromInt(3)

	// (3000 + 500) / (10 - 3) = 500 exactly.
	n, ok := RequiredPremiumUsers(a)
	if !ok {
		t.Fatal("RequiredPremiumUsers = not applicable, want 500")
	}
	if n != 500 {
		t.Fatalf("RequiredPremiumUsers = %d, want 500", n)
	}

	// Non-integral quotient rounds up: covering is a >= constraint.
	a.FixedCosts["other"] = decimal.NewFromInt(501)
	n, ok = RequiredPremiumUsers(a)
	if !ok || n != 501 {
		t.Fatalf("RequiredPremiumUsers = %d, ok %v; want 501, true", n, ok)
	}
}

func TestRequiredPremiumUsersNotApplicable(t *testing.T) {
	a := examplePlan()
	a.VariableCostPerUser = decimal.NewFromInt(10) // equal to the premium price
	if _, ok := RequiredPremiumUsers(a); ok {
		t.Fatal("RequiredPremiumUsers = applicable, want not applicable at zero margin")
	}
}
