package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmatchlabs/proforma/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scenarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testPlan() model.Assumptions {
	return model.Assumptions{
		HorizonMonths: 36,
		Pricing: model.Pricing{
			Premium: decimal.NewFromInt(10),
			Basic:   decimal.NewFromInt(5),
		},
		InitialUsers:      model.InitialUsers{Premium: 50, Basic: 100},
		MonthlyGrowthRate: decimal.NewFromFloat(0.10),
		Payroll: []model.PayrollRole{
			{Name: "CEO", MonthlySalary: decimal.NewFromInt(3000), Headcount: 1},
			{Name: "Fullstack Developer", MonthlySalary: decimal.NewFromInt(2500), Headcount: 2, GraceMonths: 3},
		},
		FixedCosts: map[string]decimal.Decimal{
			"infrastructure": decimal.NewFromInt(1000),
			"legal":          decimal.NewFromInt(500),
		},
		VariableCostPerUser: decimal.NewFromInt(3),
		InitialInvestment:   decimal.NewFromInt(25000),
		TaxRate:             decimal.NewFromFloat(0.25),
	}
}

func assertPlansEqual(t *testing.T, want, got model.Assumptions) {
	t.Helper()
	assert.Equal(t, want.HorizonMonths, got.HorizonMonths)
	assert.True(t, want.Pricing.Premium.Equal(got.Pricing.Premium), "premium price: want %s, got %s", want.Pricing.Premium, got.Pricing.Premium)
	assert.True(t, want.Pricing.Basic.Equal(got.Pricing.Basic), "basic price: want %s, got %s", want.Pricing.Basic, got.Pricing.Basic)
	assert.Equal(t, want.InitialUsers, got.InitialUsers)
	assert.True(t, want.MonthlyGrowthRate.Equal(got.MonthlyGrowthRate), "growth rate")
	assert.True(t, want.VariableCostPerUser.Equal(got.VariableCostPerUser), "variable cost")
	assert.True(t, want.InitialInvestment.Equal(got.InitialInvestment), "investment")
	assert.True(t, want.TaxRate.Equal(got.TaxRate), "tax rate")

	require.Len(t, got.Payroll, len(want.Payroll))
	for i, w := range want.Payroll {
		g := got.Payroll[i]
		assert.Equal(t, w.Name, g.Name, "payroll[%d].Name", i)
		assert.True(t, w.MonthlySalary.Equal(g.MonthlySalary), "payroll[%d].MonthlySalary", i)
		assert.Equal(t, w.Headcount, g.Headcount, "payroll[%d].Headcount", i)
		assert.Equal(t, w.GraceMonths, g.GraceMonths, "payroll[%d].GraceMonths", i)
	}

	require.Len(t, got.FixedCosts, len(want.FixedCosts))
	for k, w := range want.FixedCosts {
		g, ok := got.FixedCosts[k]
		require.True(t, ok, "missing fixed cost %q", k)
		assert.True(t, w.Equal(g), "fixed cost %q: want %s, got %s", k, w, g)
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Save("baseline", testPlan())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "baseline", saved.Name)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get("baseline")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.CreatedAt.UTC(), got.CreatedAt.UTC())
	assertPlansEqual(t, testPlan(), got.Assumptions)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwriteKeepsIdentity(t *testing.T) {
	s := openTestStore(t)

	first, err := s.Save("baseline", testPlan())
	require.NoError(t, err)

	// Resave with smaller payroll; old child rows must not survive.
	revised := testPlan()
	revised.Payroll = revised.Payroll[:1]
	revised.Pricing.Premium = decimal.NewFromInt(12)
	second, err := s.Save("baseline", revised)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.UTC(), second.CreatedAt.UTC())

	got, err := s.Get("baseline")
	require.NoError(t, err)
	assertPlansEqual(t, revised, got.Assumptions)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListOrderedByName(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Save(name, testPlan())
		require.NoError(t, err)
	}

	scenarios, err := s.List()
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "alpha", scenarios[0].Name)
	assert.Equal(t, "mid", scenarios[1].Name)
	assert.Equal(t, "zeta", scenarios[2].Name)
	for _, sc := range scenarios {
		assertPlansEqual(t, testPlan(), sc.Assumptions)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save("baseline", testPlan())
	require.NoError(t, err)

	require.NoError(t, s.Delete("baseline"))

	_, err = s.Get("baseline")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete("baseline"), ErrNotFound)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scenarios.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	saved, err := s.Save("baseline", testPlan())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Get("baseline")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assertPlansEqual(t, testPlan(), got.Assumptions)
}
