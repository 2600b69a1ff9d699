package model

import "github.com/shopspring/decimal"

// LedgerStats summarizes a ledger for the summary view, reports, and the
// HTTP API.
type LedgerStats struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalNetProfit decimal.Decimal `json:"total_net_profit"`

	FinalUsers          int64           `json:"final_users"`
	FinalMonthlyRevenue decimal.Decimal `json:"final_monthly_revenue"`
	FinalNetProfit      decimal.Decimal `json:"final_net_profit"`
	FinalCumulativeCash decimal.Decimal `json:"final_cumulative_cash"`
	FinalROI            decimal.Decimal `json:"final_roi"`

	MinCumulativeCash decimal.Decimal `json:"min_cumulative_cash"`
	MinCashMonth      int             `json:"min_cash_month"`
	// PeakFundingGap is |min cumulative cash| when the cash position dips
	// below zero, i.e. the extra financing the plan would need. Zero when
	// cash never goes negative.
	PeakFundingGap decimal.Decimal `json:"peak_funding_gap"`

	ProfitableMonths   int `json:"profitable_months"`
	UnprofitableMonths int `json:"unprofitable_months"`

	BestMonth  int `json:"best_month"`
	WorstMonth int `json:"worst_month"`
}
