package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

// syntheticLedger builds a ledger directly from (netProfit, cumulativeCash)
// pairs so classification rules can be pinned without engine plumbing.
func syntheticLedger(t *testing.T, rows [][2]int64) model.Ledger {
	t.Helper()
	l := make(model.Ledger, len(rows))
	for i, r := range rows {
		l[i] = model.MonthRecord{
			Month:          i + 1,
			NetProfit:      decimal.NewFromInt(r[0]),
			CumulativeCash: decimal.NewFromInt(r[1]),
		}
	}
	return l
}

func TestClassifyRiskHighOnNegativeCash(t *testing.T) {
	// Every month profitable except a single early cash dip: still HIGH,
	// the cash check takes precedence over the losing-months count.
	l := syntheticLedger(t, [][2]int64{
		{-100, -100},
		{500, 400},
		{500, 900},
		{500, 1400},
	})
	if got := ClassifyRisk(l); got != model.RiskHigh {
		t.Fatalf("ClassifyRisk = %s, want HIGH", got)
	}
}

func TestClassifyRiskHighEvenWhenAllMonthsProfitable(t *testing.T) {
	// Constructible only synthetically, but pins the priority order: a
	// negative cash floor is HIGH no matter what net profits look like.
	l := syntheticLedger(t, [][2]int64{
		{100, -50},
		{100, 50},
	})
	if got := ClassifyRisk(l); got != model.RiskHigh {
		t.Fatalf("ClassifyRisk = %s, want HIGH", got)
	}
}

func TestClassifyRiskMediumOnMajorityLossMonths(t *testing.T) {
	// 3 of 4 months lose but cash stays non-negative.
	l := syntheticLedger(t, [][2]int64{
		{-10, 990},
		{-10, 980},
		{-10, 970},
		{50, 1020},
	})
	if got := ClassifyRisk(l); got != model.RiskMedium {
		t.Fatalf("ClassifyRisk = %s, want MEDIUM", got)
	}
}

func TestClassifyRiskLossMonthsBoundary(t *testing.T) {
	// Exactly half the months losing is not "exceeds half": LOW.
	even := syntheticLedger(t, [][2]int64{
		{-10, 990},
		{10, 1000},
		{-10, 990},
		{10, 1000},
	})
	if got := ClassifyRisk(even); got != model.RiskLow {
		t.Fatalf("ClassifyRisk with half losing = %s, want LOW", got)
	}

	// 7 of 13 is a strict majority on an odd horizon: MEDIUM.
	rows := make([][2]int64, 13)
	cash := int64(10000)
	for i := range rows {
		net := int64(-10)
		if i >= 7 {
			net = 10
		}
		cash += net
		rows[i] = [2]int64{net, cash}
	}
	odd := syntheticLedger(t, rows)
	if got := ClassifyRisk(odd); got != model.RiskMedium {
		t.Fatalf("ClassifyRisk with 7/13 losing = %s, want MEDIUM", got)
	}
}

func TestClassifyRiskLow(t *testing.T) {
	l := syntheticLedger(t, [][2]int64{
		{-10, 990},
		{50, 1040},
		{60, 1100},
		{70, 1170},
	})
	if got := ClassifyRisk(l); got != model.RiskLow {
		t.Fatalf("ClassifyRisk = %s, want LOW", got)
	}
}

func TestClassifyRiskEndToEnd(t *testing.T) {
	// The reference plan is profitable from month 1 with no investment:
	// cash never dips, no losing months.
	if got := ClassifyRisk(Project(examplePlan())); got != model.RiskLow {
		t.Fatalf("ClassifyRisk(examplePlan) = %s, want LOW", got)
	}

	// The startup plan burns payroll long before revenue catches up and
	// the investment does not cover the hole.
	a := startupPlan()
	a.InitialInvestment = decimal.NewFromInt(1000)
	if got := ClassifyRisk(Project(a)); got != model.RiskHigh {
		t.Fatalf("ClassifyRisk(underfunded startup) = %s, want HIGH", got)
	}
}
