package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedParameter is returned when a sweep names a parameter outside
// the closed set below.
var ErrUnsupportedParameter = errors.New("unsupported sweep parameter")

// SweepParameter identifies the one assumptions field a sensitivity sweep
// varies. The set is closed: anything else is ErrUnsupportedParameter.
type SweepParameter string

const (
	SweepPremiumPrice SweepParameter = "premium-price"
	SweepBasicPrice   SweepParameter = "basic-price"
	SweepGrowthRate   SweepParameter = "growth-rate"
	SweepVariableCost SweepParameter = "variable-cost"
)

// SweepParameters lists the supported parameters in display order.
func SweepParameters() []SweepParameter {
	return []SweepParameter{SweepPremiumPrice, SweepBasicPrice, SweepGrowthRate, SweepVariableCost}
}

// ParseSweepParameter maps a user-supplied name onto the closed parameter
// set.
func ParseSweepParameter(s string) (SweepParameter, error) {
	p := SweepParameter(s)
	switch p {
	case SweepPremiumPrice, SweepBasicPrice, SweepGrowthRate, SweepVariableCost:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (supported: premium-price, basic-price, growth-rate, variable-cost)", ErrUnsupportedParameter, s)
}

// Label returns the human-readable name used in tables and charts.
func (p SweepParameter) Label() string {
	switch p {
	case SweepPremiumPrice:
		return "Premium price"
	case SweepBasicPrice:
		return "Basic price"
	case SweepGrowthRate:
		return "Monthly growth rate"
	case SweepVariableCost:
		return "Variable cost per user"
	}
	return string(p)
}

// BaseValue returns the field of a that p varies.
func (p SweepParameter) BaseValue(a Assumptions) (decimal.Decimal, error) {
	switch p {
	case SweepPremiumPrice:
		return a.Pricing.Premium, nil
	case SweepBasicPrice:
		return a.Pricing.Basic, nil
	case SweepGrowthRate:
		return a.MonthlyGrowthRate, nil
	case SweepVariableCost:
		return a.VariableCostPerUser, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnsupportedParameter, p)
}

// Apply returns a copy of base with exactly the swept field overridden.
func (p SweepParameter) Apply(base Assumptions, v decimal.Decimal) (Assumptions, error) {
	derived := base.Clone()
	switch p {
	case SweepPremiumPrice:
		derived.Pricing.Premium = v
	case SweepBasicPrice:
		derived.Pricing.Basic = v
	case SweepGrowthRate:
		derived.MonthlyGrowthRate = v
	case SweepVariableCost:
		derived.VariableCostPerUser = v
	default:
		return Assumptions{}, fmt.Errorf("%w: %q", ErrUnsupportedParameter, p)
	}
	return derived, nil
}

// SweepPoint records the final-month outcome of one sweep sample.
type SweepPoint struct {
	Value               decimal.Decimal `json:"value"`
	FinalNetProfit      decimal.Decimal `json:"final_net_profit"`
	FinalCumulativeCash decimal.Decimal `json:"final_cumulative_cash"`
	FinalROI            decimal.Decimal `json:"final_roi"`
}
