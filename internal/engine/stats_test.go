package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

func TestDescribe(t *testing.T) {
	l := model.Ledger{
		{
			Month: 1, TotalUsers: 150,
			RevenueTotal: decimal.NewFromInt(1000), TotalCost: decimal.NewFromInt(1400),
			NetProfit: decimal.NewFromInt(-400), CumulativeCash: decimal.NewFromInt(-400),
		},
		{
			Month: 2, TotalUsers: 165,
			RevenueTotal: decimal.NewFromInt(1100), TotalCost: decimal.NewFromInt(1400),
			NetProfit: decimal.NewFromInt(-300), CumulativeCash: decimal.NewFromInt(-700),
		},
		{
			Month: 3, TotalUsers: 182,
			RevenueTotal: decimal.NewFromInt(2000), TotalCost: decimal.NewFromInt(1400),
			NetProfit: decimal.NewFromInt(600), CumulativeCash: decimal.NewFromInt(-100),
			CumulativeROI: decimal.RequireFromString("-0.01"),
		},
	}

	s := Describe(l)

	assertDec(t, "TotalRevenue", s.TotalRevenue, "4100")
	assertDec(t, "TotalCost", s.TotalCost, "4200")
	assertDec(t, "TotalNetProfit", s.TotalNetProfit, "-100")

	if s.FinalUsers != 182 {
		t.Fatalf("FinalUsers = %d, want 182", s.FinalUsers)
	}
	assertDec(t, "FinalMonthlyRevenue", s.FinalMonthlyRevenue, "2000")
	assertDec(t, "FinalNetProfit", s.FinalNetProfit, "600")
	assertDec(t, "FinalCumulativeCash", s.FinalCumulativeCash, "-100")
	assertDec(t, "FinalROI", s.FinalROI, "-0.01")

	assertDec(t, "MinCumulativeCash", s.MinCumulativeCash, "-700")
	if s.MinCashMonth != 2 {
		t.Fatalf("MinCashMonth = %d, want 2", s.MinCashMonth)
	}
	assertDec(t, "PeakFundingGap", s.PeakFundingGap, "700")

	if s.ProfitableMonths != 1 || s.UnprofitableMonths != 2 {
		t.Fatalf("profitable/unprofitable = %d/%d, want 1/2", s.ProfitableMonths, s.UnprofitableMonths)
	}
	if s.BestMonth != 3 || s.WorstMonth != 1 {
		t.Fatalf("best/worst month = %d/%d, want 3/1", s.BestMonth, s.WorstMonth)
	}
}

func TestDescribeZeroProfitMonthCountsNeither(t *testing.T) {
	l := model.Ledger{
		{Month: 1, NetProfit: decimal.Zero, CumulativeCash: decimal.NewFromInt(100)},
		{Month: 2, NetProfit: decimal.NewFromInt(10), CumulativeCash: decimal.NewFromInt(110)},
	}
	s := Describe(l)
	if s.ProfitableMonths != 1 || s.UnprofitableMonths != 0 {
		t.Fatalf("profitable/unprofitable = %d/%d, want 1/0", s.ProfitableMonths, s.UnprofitableMonths)
	}
}

func TestDescribeFundingGapZeroWhenCashStaysPositive(t *testing.T) {
	s := Describe(Project(examplePlan()))
	if !s.PeakFundingGap.IsZero() {
		t.Fatalf("PeakFundingGap = %s, want 0", s.PeakFundingGap)
	}
	if s.UnprofitableMonths != 0 {
		t.Fatalf("UnprofitableMonths = %d, want 0", s.UnprofitableMonths)
	}
}

func TestDescribeEmptyLedger(t *testing.T) {
	s := Describe(nil)
	if s.FinalUsers != 0 || s.BestMonth != 0 || s.WorstMonth != 0 {
		t.Fatalf("Describe(nil) = %+v, want zero stats", s)
	}
}
