package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFixedCostsTotal(t *testing.T) {
	a := validPlan()
	want := decimal.NewFromInt(1500)
	if got := a.FixedCostsTotal(); !got.Equal(want) {
		t.Fatalf("FixedCostsTotal() = %s, want %s", got, want)
	}
}

func TestPayrollMonthlyTotal(t *testing.T) {
	a := validPlan()
	// CEO 3000 x1 + Fullstack Developer 2500 x2; grace periods are ignored.
	want := decimal.NewFromInt(8000)
	if got := a.PayrollMonthlyTotal(); !got.Equal(want) {
		t.Fatalf("PayrollMonthlyTotal() = %s, want %s", got, want)
	}
}

func TestFixedCostCategoriesSorted(t *testing.T) {
	a := validPlan()
	a.FixedCosts["apps"] = decimal.NewFromInt(1)
	got := a.FixedCostCategories()
	want := []string{"apps", "infrastructure", "legal"}
	if len(got) != len(want) {
		t.Fatalf("FixedCostCategories() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FixedCostCategories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := validPlan()
	b := a.Clone()

	b.Payroll[0].MonthlySalary = decimal.NewFromInt(9999)
	b.FixedCosts["legal"] = decimal.NewFromInt(9999)

	if !a.Payroll[0].MonthlySalary.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("Clone shares payroll backing array: original salary = %s", a.Payroll[0].MonthlySalary)
	}
	if !a.FixedCosts["legal"].Equal(decimal.NewFromInt(500)) {
		t.Fatalf("Clone shares fixed cost map: original legal = %s", a.FixedCosts["legal"])
	}
}

func TestLedgerHelpers(t *testing.T) {
	l := Ledger{
		{Month: 1, NetProfit: decimal.NewFromInt(-100), CumulativeCash: decimal.NewFromInt(900)},
		{Month: 2, NetProfit: decimal.NewFromInt(-50), CumulativeCash: decimal.NewFromInt(850)},
		{Month: 3, NetProfit: decimal.NewFromInt(200), CumulativeCash: decimal.NewFromInt(1050)},
	}

	if got := l.Final().Month; got != 3 {
		t.Fatalf("Final().Month = %d, want 3", got)
	}
	min, month := l.MinCumulativeCash()
	if !min.Equal(decimal.NewFromInt(850)) || month != 2 {
		t.Fatalf("MinCumulativeCash() = %s at month %d, want 850 at month 2", min, month)
	}
	if got := l.LossMonths(); got != 2 {
		t.Fatalf("LossMonths() = %d, want 2", got)
	}
}

func TestLedgerHelpersEmpty(t *testing.T) {
	var l Ledger
	if got := l.Final().Month; got != 0 {
		t.Fatalf("Final() on empty ledger: Month = %d, want 0", got)
	}
	min, month := l.MinCumulativeCash()
	if !min.IsZero() || month != 0 {
		t.Fatalf("MinCumulativeCash() on empty ledger = %s, %d, want 0, 0", min, month)
	}
}
