package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/openmatchlabs/proforma/internal/model"
)

// Cache memoizes projection results keyed by a structural hash of the
// assumptions, never by time. Concurrent callers asking for the same
// assumptions share a single computation: the first arrival computes, the
// rest block on it and receive the finished ledger. Returned ledgers are
// shared and must be treated as read-only.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]*cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	once   sync.Once
	ledger model.Ledger
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]*cacheEntry)}
}

// Project returns the memoized ledger for the assumptions, running the
// engine at most once per distinct assumptions value.
func (c *Cache) Project(a model.Assumptions) (model.Ledger, error) {
	key, err := Fingerprint(a)
	if err != nil {
		return nil, fmt.Errorf("fingerprinting assumptions: %w", err)
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	e.once.Do(func() {
		e.ledger = Project(a)
	})
	return e.ledger, nil
}

// Len returns the number of distinct assumption sets cached so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns how many lookups found an existing entry and how many
// created one.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Fingerprint derives the cache key for a set of assumptions. Decimals are
// rendered to their normalized string form first, so two assumption sets
// that are equal in value always share a key regardless of how their
// decimals are represented internally.
func Fingerprint(a model.Assumptions) (uint64, error) {
	type role struct {
		Name      string
		Salary    string
		Headcount int
		Grace     int
	}

	payroll := make([]role, len(a.Payroll))
	for i, r := range a.Payroll {
		payroll[i] = role{
			Name:      r.Name,
			Salary:    r.MonthlySalary.String(),
			Headcount: r.Headcount,
			Grace:     r.GraceMonths,
		}
	}
	fixed := make(map[string]string, len(a.FixedCosts))
	for k, v := range a.FixedCosts {
		fixed[k] = v.String()
	}

	canonical := struct {
		Horizon      int
		PremiumPrice string
		BasicPrice   string
		PremiumUsers int64
		BasicUsers   int64
		Growth       string
		Payroll      []role
		FixedCosts   map[string]string
		VariableCost string
		Investment   string
		TaxRate      string
	}{
		Horizon:      a.HorizonMonths,
		PremiumPrice: a.Pricing.Premium.String(),
		BasicPrice:   a.Pricing.Basic.String(),
		PremiumUsers: a.InitialUsers.Premium,
		BasicUsers:   a.InitialUsers.Basic,
		Growth:       a.MonthlyGrowthRate.String(),
		Payroll:      payroll,
		FixedCosts:   fixed,
		VariableCost: a.VariableCostPerUser.String(),
		Investment:   a.InitialInvestment.String(),
		TaxRate:      a.TaxRate.String(),
	}

	return hashstructure.Hash(canonical, hashstructure.FormatV2, nil)
}
