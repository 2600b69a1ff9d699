package engine

import (
	"github.com/openmatchlabs/proforma/internal/model"
)

// ClassifyRisk grades a ledger, checks in priority order:
// HIGH when the cumulative cash position ever goes negative (the plan needs
// financing beyond the initial investment), else MEDIUM when losing months
// outnumber half the horizon, else LOW.
func ClassifyRisk(l model.Ledger) model.RiskLevel {
	minCash, _ := l.MinCumulativeCash()
	if minCash.IsNegative() {
		return model.RiskHigh
	}
	if 2*l.LossMonths() > len(l) {
		return model.RiskMedium
	}
	return model.RiskLow
}
