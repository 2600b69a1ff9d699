// Package engine turns a set of business assumptions into a month-by-month
// financial ledger and derives analytics from it. Everything here is a pure
// function over immutable inputs: no I/O, no shared state, safe to call
// from any number of goroutines.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

var one = decimal.NewFromInt(1)

// Project computes the ledger for the given assumptions. It is
// deterministic and total over validated assumptions; validation is the
// caller's responsibility and never happens here.
func Project(a model.Assumptions) model.Ledger {
	ledger := make(model.Ledger, 0, a.HorizonMonths)

	growth := one.Add(a.MonthlyGrowthRate)
	overhead := a.FixedCostsTotal()

	premium := a.InitialUsers.Premium
	basic := a.InitialUsers.Basic
	cash := a.InitialInvestment

	for month := 1; month <= a.HorizonMonths; month++ {
		if month > 1 {
			premium = growSegment(premium, growth)
			basic = growSegment(basic, growth)
		}
		totalUsers := premium + basic

		revenuePremium := decimal.NewFromInt(premium).Mul(a.Pricing.Premium)
		revenueBasic := decimal.NewFromInt(basic).Mul(a.Pricing.Basic)
		revenueTotal := revenuePremium.Add(revenueBasic)

		personnel := personnelCost(a.Payroll, month)
		fixed := personnel.Add(overhead)
		variable := decimal.NewFromInt(totalUsers).Mul(a.VariableCostPerUser)
		totalCost := fixed.Add(variable)

		gross := revenueTotal.Sub(totalCost)
		tax := decimal.Zero
		if gross.IsPositive() {
			tax = gross.Mul(a.TaxRate)
		}
		net := gross.Sub(tax)
		cash = cash.Add(net)

		grossMargin := decimal.Zero
		netMargin := decimal.Zero
		if revenueTotal.IsPositive() {
			grossMargin = gross.Div(revenueTotal)
			netMargin = net.Div(revenueTotal)
		}
		roi := decimal.Zero
		if a.InitialInvestment.IsPositive() {
			roi = cash.Sub(a.InitialInvestment).Div(a.InitialInvestment)
		}

		ledger = append(ledger, model.MonthRecord{
			Month:          month,
			PremiumUsers:   premium,
			BasicUsers:     basic,
			TotalUsers:     totalUsers,
			RevenuePremium: revenuePremium,
			RevenueBasic:   revenueBasic,
			RevenueTotal:   revenueTotal,
			PersonnelCost:  personnel,
			FixedCost:      fixed,
			VariableCost:   variable,
			TotalCost:      totalCost,
			GrossProfit:    gross,
			Tax:            tax,
			NetProfit:      net,
			CumulativeCash: cash,
			GrossMargin:    grossMargin,
			NetMargin:      netMargin,
			CumulativeROI:  roi,
		})
	}
	return ledger
}

// growSegment advances one subscriber segment by a month. Growth compounds
// on the rounded prior count: scale by (1+g), round half-up, clamp at zero.
func growSegment(prev int64, factor decimal.Decimal) int64 {
	next := decimal.NewFromInt(prev).Mul(factor).Round(0)
	if next.IsNegative() {
		return 0
	}
	return next.IntPart()
}

// personnelCost sums salary x headcount over the roles whose grace period
// has lapsed. The comparison is strict: a role with grace_months = 3 is
// unpaid in months 1-3 and first paid in month 4.
func personnelCost(roles []model.PayrollRole, month int) decimal.Decimal {
	total := decimal.Zero
	for _, r := range roles {
		if month <= r.GraceMonths {
			continue
		}
		total = total.Add(r.MonthlySalary.Mul(decimal.NewFromInt(int64(r.Headcount))))
	}
	return total
}
