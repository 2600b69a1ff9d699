// Package store provides a SQLite-backed library of named scenarios.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no scenario exists under the requested name.
var ErrNotFound = errors.New("scenario not found")

// Scenario is a named, persisted set of planning assumptions.
type Scenario struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Assumptions model.Assumptions
}

// Store provides SQLite-backed scenario persistence.
type Store struct {
	db *sql.DB
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "proforma")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "proforma")
}

// DefaultPath returns the full path to the scenario database.
func DefaultPath() string {
	return filepath.Join(DataDir(), "scenarios.db")
}

// Open opens or creates the scenario database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening scenario db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the scenario database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores assumptions under the given name. Saving over an existing
// name replaces its assumptions while keeping the scenario's identity and
// creation time.
func (s *Store) Save(name string, a model.Assumptions) (Scenario, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Scenario{}, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Truncate(time.Second)
	sc := Scenario{
		ID:          uuid.NewString(),
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Assumptions: a.Clone(),
	}

	var prevID, prevCreated string
	err = tx.QueryRow("SELECT id, created_at FROM scenarios WHERE name = ?", name).Scan(&prevID, &prevCreated)
	switch {
	case err == nil:
		sc.ID = prevID
		if t, perr := time.Parse(time.RFC3339, prevCreated); perr == nil {
			sc.CreatedAt = t
		}
	case errors.Is(err, sql.ErrNoRows):
		// first save under this name
	default:
		return Scenario{}, err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO scenarios
		(id, name, created_at, updated_at, horizon_months,
		 premium_price, basic_price, initial_premium_users, initial_basic_users,
		 monthly_growth_rate, variable_cost_per_user, initial_investment, tax_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Name,
		sc.CreatedAt.Format(time.RFC3339), sc.UpdatedAt.Format(time.RFC3339),
		a.HorizonMonths,
		a.Pricing.Premium.String(), a.Pricing.Basic.String(),
		a.InitialUsers.Premium, a.InitialUsers.Basic,
		a.MonthlyGrowthRate.String(), a.VariableCostPerUser.String(),
		a.InitialInvestment.String(), a.TaxRate.String(),
	)
	if err != nil {
		return Scenario{}, err
	}

	// Replace child rows wholesale
	_, err = tx.Exec("DELETE FROM scenario_payroll WHERE scenario_id = ?", sc.ID)
	if err != nil {
		return Scenario{}, err
	}
	for i, r := range a.Payroll {
		_, err = tx.Exec(`INSERT INTO scenario_payroll
			(scenario_id, position, role, monthly_salary, headcount, grace_months)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sc.ID, i, r.Name, r.MonthlySalary.String(), r.Headcount, r.GraceMonths,
		)
		if err != nil {
			return Scenario{}, err
		}
	}

	_, err = tx.Exec("DELETE FROM scenario_fixed_costs WHERE scenario_id = ?", sc.ID)
	if err != nil {
		return Scenario{}, err
	}
	for _, category := range a.FixedCostCategories() {
		_, err = tx.Exec(`INSERT INTO scenario_fixed_costs
			(scenario_id, category, monthly_amount)
			VALUES (?, ?, ?)`,
			sc.ID, category, a.FixedCosts[category].String(),
		)
		if err != nil {
			return Scenario{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Get loads the scenario saved under the given name.
func (s *Store) Get(name string) (Scenario, error) {
	row := s.db.QueryRow(`SELECT
		id, name, created_at, updated_at, horizon_months,
		premium_price, basic_price, initial_premium_users, initial_basic_users,
		monthly_growth_rate, variable_cost_per_user, initial_investment, tax_rate
		FROM scenarios WHERE name = ?`, name)

	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, ErrNotFound
	}
	if err != nil {
		return Scenario{}, err
	}

	if err := s.loadChildren(map[string]*Scenario{sc.ID: &sc}); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// List returns all saved scenarios ordered by name.
func (s *Store) List() ([]Scenario, error) {
	rows, err := s.db.Query(`SELECT
		id, name, created_at, updated_at, horizon_months,
		premium_price, basic_price, initial_premium_users, initial_basic_users,
		monthly_growth_rate, variable_cost_per_user, initial_investment, tax_rate
		FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scenarios []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load child rows across all scenarios
	byID := make(map[string]*Scenario, len(scenarios))
	for i := range scenarios {
		byID[scenarios[i].ID] = &scenarios[i]
	}
	if err := s.loadChildren(byID); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// Delete removes the scenario saved under the given name.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec("DELETE FROM scenarios WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of saved scenarios.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scenarios").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (Scenario, error) {
	var sc Scenario
	var createdStr, updatedStr string
	var premium, basic, growth, varCost, investment, tax string

	err := row.Scan(
		&sc.ID, &sc.Name, &createdStr, &updatedStr, &sc.Assumptions.HorizonMonths,
		&premium, &basic, &sc.Assumptions.InitialUsers.Premium, &sc.Assumptions.InitialUsers.Basic,
		&growth, &varCost, &investment, &tax,
	)
	if err != nil {
		return Scenario{}, err
	}

	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"premium_price", premium, &sc.Assumptions.Pricing.Premium},
		{"basic_price", basic, &sc.Assumptions.Pricing.Basic},
		{"monthly_growth_rate", growth, &sc.Assumptions.MonthlyGrowthRate},
		{"variable_cost_per_user", varCost, &sc.Assumptions.VariableCostPerUser},
		{"initial_investment", investment, &sc.Assumptions.InitialInvestment},
		{"tax_rate", tax, &sc.Assumptions.TaxRate},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return Scenario{}, fmt.Errorf("parsing %s: %w", f.name, err)
		}
		*f.dst = d
	}
	return sc, nil
}

// loadChildren fills payroll and fixed costs for every scenario in byID.
func (s *Store) loadChildren(byID map[string]*Scenario) error {
	rows, err := s.db.Query(`SELECT scenario_id, role, monthly_salary, headcount, grace_months
		FROM scenario_payroll ORDER BY scenario_id, position`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, salaryStr string
		var r model.PayrollRole
		if err := rows.Scan(&id, &r.Name, &salaryStr, &r.Headcount, &r.GraceMonths); err != nil {
			return err
		}
		sc, ok := byID[id]
		if !ok {
			continue
		}
		r.MonthlySalary, err = decimal.NewFromString(salaryStr)
		if err != nil {
			return fmt.Errorf("parsing monthly_salary: %w", err)
		}
		sc.Assumptions.Payroll = append(sc.Assumptions.Payroll, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	costRows, err := s.db.Query("SELECT scenario_id, category, monthly_amount FROM scenario_fixed_costs")
	if err != nil {
		return err
	}
	defer func() { _ = costRows.Close() }()

	for costRows.Next() {
		var id, category, amountStr string
		if err := costRows.Scan(&id, &category, &amountStr); err != nil {
			return err
		}
		sc, ok := byID[id]
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("parsing monthly_amount: %w", err)
		}
		if sc.Assumptions.FixedCosts == nil {
			sc.Assumptions.FixedCosts = make(map[string]decimal.Decimal)
		}
		sc.Assumptions.FixedCosts[category] = amount
	}
	return costRows.Err()
}
