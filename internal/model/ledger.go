package model

import "github.com/shopspring/decimal"

// MonthRecord holds every computed financial line item for one month.
// Month indices are 1-based.
type MonthRecord struct {
	Month        int   `json:"month"`
	PremiumUsers int64 `json:"premium_users"`
	BasicUsers   int64 `json:"basic_users"`
	TotalUsers   int64 `json:"total_users"`

	RevenuePremium decimal.Decimal `json:"revenue_premium"`
	RevenueBasic   decimal.Decimal `json:"revenue_basic"`
	RevenueTotal   decimal.Decimal `json:"revenue_total"`

	PersonnelCost decimal.Decimal `json:"personnel_cost"`
	FixedCost     decimal.Decimal `json:"fixed_cost"`
	VariableCost  decimal.Decimal `json:"variable_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`

	GrossProfit    decimal.Decimal `json:"gross_profit"`
	Tax            decimal.Decimal `json:"tax"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	CumulativeCash decimal.Decimal `json:"cumulative_cash"`

	GrossMargin   decimal.Decimal `json:"gross_margin"`
	NetMargin     decimal.Decimal `json:"net_margin"`
	CumulativeROI decimal.Decimal `json:"cumulative_roi"`
}

// Ledger is the ordered month-by-month projection: exactly one record per
// month of the horizon, indexed 1..N with no gaps. A ledger is immutable
// once computed; callers, including cache consumers, must not modify it.
type Ledger []MonthRecord

// Final returns the last month of the ledger, or a zero record when the
// ledger is empty.
func (l Ledger) Final() MonthRecord {
	if len(l) == 0 {
		return MonthRecord{}
	}
	return l[len(l)-1]
}

// MinCumulativeCash returns the lowest cash position across the ledger and
// the month it occurs in. An empty ledger yields (0, 0).
func (l Ledger) MinCumulativeCash() (decimal.Decimal, int) {
	if len(l) == 0 {
		return decimal.Zero, 0
	}
	min := l[0].CumulativeCash
	month := l[0].Month
	for _, m := range l[1:] {
		if m.CumulativeCash.LessThan(min) {
			min = m.CumulativeCash
			month = m.Month
		}
	}
	return min, month
}

// LossMonths counts the months with strictly negative net profit.
func (l Ledger) LossMonths() int {
	n := 0
	for _, m := range l {
		if m.NetProfit.IsNegative() {
			n++
		}
	}
	return n
}
