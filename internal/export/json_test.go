package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/model"
)

func profitablePlan() model.Assumptions {
	return model.Assumptions{
		HorizonMonths: 12,
		Pricing: model.Pricing{
			Premium: decimal.NewFromInt(10),
			Basic:   decimal.NewFromInt(5),
		},
		InitialUsers:      model.InitialUsers{Premium: 50, Basic: 100},
		MonthlyGrowthRate: decimal.NewFromFloat(0.10),
		Payroll: []model.PayrollRole{
			{Name: "Founder", MonthlySalary: decimal.NewFromInt(500), Headcount: 1},
		},
		FixedCosts:          map[string]decimal.Decimal{"infrastructure": decimal.NewFromInt(200)},
		VariableCostPerUser: decimal.NewFromInt(1),
		InitialInvestment:   decimal.NewFromInt(1000),
		TaxRate:             decimal.NewFromFloat(0.25),
	}
}

func underwaterPlan() model.Assumptions {
	a := profitablePlan()
	a.VariableCostPerUser = decimal.NewFromInt(50) // above both prices
	return a
}

func TestBuildDocument(t *testing.T) {
	a := profitablePlan()
	l := engine.Project(a)
	doc := BuildDocument(a, l)

	assert.False(t, doc.GeneratedAt.IsZero())
	assert.Equal(t, a.HorizonMonths, doc.Assumptions.HorizonMonths)
	assert.InDelta(t, 10.0, doc.Assumptions.Pricing.PremiumPrice, 1e-9)
	assert.Len(t, doc.Ledger, 12)

	// Month 1 already nets 112.50, so break-even is immediate.
	require.NotNil(t, doc.BreakEvenMonth)
	assert.Equal(t, 1, *doc.BreakEvenMonth)

	// 700 overhead / 9 margin = 77.8 -> 78 premium users.
	require.NotNil(t, doc.RequiredPremiumUsers)
	assert.Equal(t, int64(78), *doc.RequiredPremiumUsers)

	assert.Equal(t, model.RiskLow, doc.Risk)
	assert.Equal(t, engine.Describe(l), doc.Stats)
}

func TestBuildDocumentNoBreakEven(t *testing.T) {
	a := underwaterPlan()
	doc := BuildDocument(a, engine.Project(a))

	assert.Nil(t, doc.BreakEvenMonth)
	assert.Nil(t, doc.RequiredPremiumUsers)
	assert.Equal(t, model.RiskHigh, doc.Risk)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	a := profitablePlan()
	doc := BuildDocument(a, engine.Project(a))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var got Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Len(t, got.Ledger, len(doc.Ledger))
	require.NotNil(t, got.BreakEvenMonth)
	assert.Equal(t, *doc.BreakEvenMonth, *got.BreakEvenMonth)
	assert.Equal(t, doc.Risk, got.Risk)
	assert.True(t, doc.Ledger[0].NetProfit.Equal(got.Ledger[0].NetProfit),
		"net profit: want %s, got %s", doc.Ledger[0].NetProfit, got.Ledger[0].NetProfit)
	assert.True(t, doc.Stats.TotalRevenue.Equal(got.Stats.TotalRevenue))
}

func TestWriteJSONFieldNames(t *testing.T) {
	a := profitablePlan()
	doc := BuildDocument(a, engine.Project(a))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{
		"generated_at", "assumptions", "ledger", "stats", "risk",
		"break_even_month", "required_premium_users",
	} {
		assert.Contains(t, raw, key)
	}
}
