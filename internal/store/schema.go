package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    id                     TEXT PRIMARY KEY,
    name                   TEXT NOT NULL UNIQUE,
    created_at             TEXT NOT NULL,
    updated_at             TEXT NOT NULL,
    horizon_months         INTEGER NOT NULL,
    premium_price          TEXT NOT NULL,
    basic_price            TEXT NOT NULL,
    initial_premium_users  INTEGER NOT NULL,
    initial_basic_users    INTEGER NOT NULL,
    monthly_growth_rate    TEXT NOT NULL,
    variable_cost_per_user TEXT NOT NULL,
    initial_investment     TEXT NOT NULL,
    tax_rate               TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenario_payroll (
    scenario_id            TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
    position               INTEGER NOT NULL,
    role                   TEXT NOT NULL,
    monthly_salary         TEXT NOT NULL,
    headcount              INTEGER NOT NULL,
    grace_months           INTEGER NOT NULL,
    PRIMARY KEY (scenario_id, position)
);

CREATE TABLE IF NOT EXISTS scenario_fixed_costs (
    scenario_id            TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
    category               TEXT NOT NULL,
    monthly_amount         TEXT NOT NULL,
    PRIMARY KEY (scenario_id, category)
);

CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
`
