package engine

import (
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

// Describe reduces a ledger to the headline figures used by the summary
// view, reports, and the HTTP API. An empty ledger yields zero stats.
func Describe(l model.Ledger) model.LedgerStats {
	var s model.LedgerStats
	if len(l) == 0 {
		return s
	}

	s.TotalRevenue = decimal.Zero
	s.TotalCost = decimal.Zero
	s.TotalNetProfit = decimal.Zero

	best := l[0]
	worst := l[0]
	for _, m := range l {
		s.TotalRevenue = s.TotalRevenue.Add(m.RevenueTotal)
		s.TotalCost = s.TotalCost.Add(m.TotalCost)
		s.TotalNetProfit = s.TotalNetProfit.Add(m.NetProfit)

		if m.NetProfit.IsNegative() {
			s.UnprofitableMonths++
		} else if m.NetProfit.IsPositive() {
			s.ProfitableMonths++
		}
		if m.NetProfit.GreaterThan(best.NetProfit) {
			best = m
		}
		if m.NetProfit.LessThan(worst.NetProfit) {
			worst = m
		}
	}
	s.BestMonth = best.Month
	s.WorstMonth = worst.Month

	final := l.Final()
	s.FinalUsers = final.TotalUsers
	s.FinalMonthlyRevenue = final.RevenueTotal
	s.FinalNetProfit = final.NetProfit
	s.FinalCumulativeCash = final.CumulativeCash
	s.FinalROI = final.CumulativeROI

	minCash, minMonth := l.MinCumulativeCash()
	s.MinCumulativeCash = minCash
	s.MinCashMonth = minMonth
	if minCash.IsNegative() {
		s.PeakFundingGap = minCash.Neg()
	} else {
		s.PeakFundingGap = decimal.Zero
	}
	return s
}
