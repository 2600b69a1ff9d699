package engine

import (
	"github.com/openmatchlabs/proforma/internal/model"
)

// FindBreakEven returns the first month with strictly positive net profit.
// The boolean is false when no month in the horizon crosses it, which is a
// normal outcome (e.g. price at or below variable cost), not an error.
// First crossing only: profitability is not required to be sustained.
func FindBreakEven(l model.Ledger) (model.MonthRecord, bool) {
	for _, m := range l {
		if m.NetProfit.IsPositive() {
			return m, true
		}
	}
	return model.MonthRecord{}, false
}

// RequiredPremiumUsers returns how many premium subscribers would cover the
// steady-state monthly fixed and personnel cost on contribution margin
// alone (price minus variable cost). ok is false when the premium price
// does not exceed the variable cost per user, in which case no count of
// users covers the overhead.
func RequiredPremiumUsers(a model.Assumptions) (int64, bool) {
	margin := a.Pricing.Premium.Sub(a.VariableCostPerUser)
	if !margin.IsPositive() {
		return 0, false
	}
	monthly := a.FixedCostsTotal().Add(a.PayrollMonthlyTotal())
	return monthly.Div(margin).Ceil().IntPart(), true
}
