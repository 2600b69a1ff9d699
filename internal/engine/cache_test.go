package engine

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

func TestCacheSharesOneComputation(t *testing.T) {
	c := NewCache()

	// Every goroutine rebuilds the assumptions from scratch: value-equal
	// but with distinct payroll slices and fixed-cost maps. All of them
	// must land on the same cached ledger.
	const goroutines = 50
	ledgers := make([]model.Ledger, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l, err := c.Project(startupPlan())
			if err != nil {
				t.Errorf("cache Project error: %v", err)
				return
			}
			ledgers[i] = l
		}(i)
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Fatalf("cache Len = %d, want 1", c.Len())
	}
	for i := 1; i < goroutines; i++ {
		if len(ledgers[i]) == 0 {
			t.Fatalf("goroutine %d got an empty ledger", i)
		}
		// Same backing array == the computation ran once and was shared.
		if &ledgers[i][0] != &ledgers[0][0] {
			t.Fatalf("goroutine %d received a separately computed ledger", i)
		}
	}

	hits, misses := c.Stats()
	if misses != 1 {
		t.Fatalf("misses = %d, want 1", misses)
	}
	if hits != goroutines-1 {
		t.Fatalf("hits = %d, want %d", hits, goroutines-1)
	}
}

func TestCacheDistinctAssumptionsComputeSeparately(t *testing.T) {
	c := NewCache()

	a := examplePlan()
	b := examplePlan()
	b.HorizonMonths = 6

	la, err := c.Project(a)
	if err != nil {
		t.Fatalf("Project(a) error: %v", err)
	}
	lb, err := c.Project(b)
	if err != nil {
		t.Fatalf("Project(b) error: %v", err)
	}

	if len(la) != 12 || len(lb) != 6 {
		t.Fatalf("ledger lengths = %d/%d, want 12/6", len(la), len(lb))
	}
	if c.Len() != 2 {
		t.Fatalf("cache Len = %d, want 2", c.Len())
	}
}

func TestCacheResultMatchesDirectProjection(t *testing.T) {
	c := NewCache()
	a := startupPlan()

	cached, err := c.Project(a)
	if err != nil {
		t.Fatalf("cache Project error: %v", err)
	}
	direct := Project(a)
	if len(cached) != len(direct) {
		t.Fatalf("len = %d, want %d", len(cached), len(direct))
	}
	for i := range direct {
		if !cached[i].CumulativeCash.Equal(direct[i].CumulativeCash) {
			t.Fatalf("month %d cumulative cash = %s, want %s",
				direct[i].Month, cached[i].CumulativeCash, direct[i].CumulativeCash)
		}
	}
}

func TestFingerprintEqualAcrossRepresentations(t *testing.T) {
	a := examplePlan()

	b := examplePlan()
	// Same values written differently: 10 vs 10.0, 0.10 vs 0.1000.
	b.Pricing.Premium = decimal.RequireFromString("10.0")
	b.MonthlyGrowthRate = decimal.RequireFromString("0.1000")

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("Fingerprint(a) error: %v", err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("Fingerprint(b) error: %v", err)
	}
	if fa != fb {
		t.Fatalf("fingerprints differ for value-equal assumptions: %d != %d", fa, fb)
	}
}

func TestFingerprintSensitiveToEveryField(t *testing.T) {
	base, err := Fingerprint(startupPlan())
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*model.Assumptions)
	}{
		{"horizon", func(a *model.Assumptions) { a.HorizonMonths++ }},
		{"premium price", func(a *model.Assumptions) { a.Pricing.Premium = decimal.NewFromInt(11) }},
		{"basic price", func(a *model.Assumptions) { a.Pricing.Basic = decimal.NewFromInt(6) }},
		{"premium users", func(a *model.Assumptions) { a.InitialUsers.Premium++ }},
		{"basic users", func(a *model.Assumptions) { a.InitialUsers.Basic++ }},
		{"growth", func(a *model.Assumptions) { a.MonthlyGrowthRate = decimal.RequireFromString("0.26") }},
		{"salary", func(a *model.Assumptions) { a.Payroll[0].MonthlySalary = decimal.NewFromInt(3001) }},
		{"headcount", func(a *model.Assumptions) { a.Payroll[1].Headcount++ }},
		{"grace", func(a *model.Assumptions) { a.Payroll[1].GraceMonths++ }},
		{"role order", func(a *model.Assumptions) {
			a.Payroll[0], a.Payroll[1] = a.Payroll[1], a.Payroll[0]
		}},
		{"fixed cost value", func(a *model.Assumptions) { a.FixedCosts["legal"] = decimal.NewFromInt(501) }},
		{"fixed cost category", func(a *model.Assumptions) { a.FixedCosts["marketing"] = decimal.NewFromInt(1) }},
		{"variable cost", func(a *model.Assumptions) { a.VariableCostPerUser = decimal.NewFromInt(4) }},
		{"investment", func(a *model.Assumptions) { a.InitialInvestment = decimal.NewFromInt(50001) }},
		{"tax rate", func(a *model.Assumptions) { a.TaxRate = decimal.RequireFromString("0.26") }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			a := startupPlan()
			m.mutate(&a)
			got, err := Fingerprint(a)
			if err != nil {
				t.Fatalf("Fingerprint error: %v", err)
			}
			if got == base {
				t.Fatalf("fingerprint unchanged after mutating %s", m.name)
			}
		})
	}
}
