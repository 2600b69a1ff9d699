package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/model"
)

// AssumptionsFile is the on-disk and over-the-wire shape of a business
// plan: plain floats and ints for hand editing, converted to exact decimals
// by ToAssumptions. The same struct serves the TOML plan file and the HTTP
// API request body.
type AssumptionsFile struct {
	HorizonMonths       int     `toml:"horizon_months" json:"horizon_months"`
	MonthlyGrowthRate   float64 `toml:"monthly_growth_rate" json:"monthly_growth_rate"`
	VariableCostPerUser float64 `toml:"variable_cost_per_user" json:"variable_cost_per_user"`
	InitialInvestment   float64 `toml:"initial_investment" json:"initial_investment"`
	TaxRate             float64 `toml:"tax_rate" json:"tax_rate"`

	Pricing      PricingSection      `toml:"pricing" json:"pricing"`
	InitialUsers InitialUsersSection `toml:"initial_users" json:"initial_users"`
	Payroll      []PayrollEntry      `toml:"payroll" json:"payroll"`
	FixedCosts   map[string]float64  `toml:"fixed_costs" json:"fixed_costs"`
}

// PricingSection holds the monthly price per tier.
type PricingSection struct {
	PremiumPrice float64 `toml:"premium_price" json:"premium_price"`
	BasicPrice   float64 `toml:"basic_price" json:"basic_price"`
}

// InitialUsersSection holds the month-1 subscriber counts.
type InitialUsersSection struct {
	Premium int64 `toml:"premium" json:"premium"`
	Basic   int64 `toml:"basic" json:"basic"`
}

// PayrollEntry is one role in the plan file.
type PayrollEntry struct {
	Role          string  `toml:"role" json:"role"`
	MonthlySalary float64 `toml:"monthly_salary" json:"monthly_salary"`
	Headcount     int     `toml:"headcount" json:"headcount"`
	GraceMonths   int     `toml:"grace_months" json:"grace_months"`
}

// DefaultAssumptions returns the starter plan written by `proforma init`:
// a two-tier subscription business with a ten-person team.
func DefaultAssumptions() AssumptionsFile {
	return AssumptionsFile{
		HorizonMonths:       36,
		MonthlyGrowthRate:   0.10,
		VariableCostPerUser: 3,
		InitialInvestment:   0,
		TaxRate:             0,
		Pricing: PricingSection{
			PremiumPrice: 10,
			BasicPrice:   5,
		},
		InitialUsers: InitialUsersSection{
			Premium: 50,
			Basic:   100,
		},
		Payroll: []PayrollEntry{
			{Role: "CEO", MonthlySalary: 3000, Headcount: 1},
			{Role: "CTO", MonthlySalary: 3000, Headcount: 1},
			{Role: "Fullstack Developer", MonthlySalary: 2500, Headcount: 2},
			{Role: "UI/UX Designer", MonthlySalary: 2000, Headcount: 1},
			{Role: "Marketing Lead", MonthlySalary: 2000, Headcount: 1},
			{Role: "Support & Operations", MonthlySalary: 1500, Headcount: 1},
			{Role: "Commercial Manager", MonthlySalary: 2500, Headcount: 2},
			{Role: "Finance Manager", MonthlySalary: 3000, Headcount: 1},
		},
		FixedCosts: map[string]float64{
			"infrastructure":   1000,
			"legal":            500,
			"store_commission": 300,
			"marketing":        0,
			"other":            200,
		},
	}
}

// LoadAssumptions reads a plan file. The raw os error is wrapped, so
// callers can still detect a missing file with errors.Is(err,
// os.ErrNotExist).
func LoadAssumptions(path string) (AssumptionsFile, error) {
	var f AssumptionsFile

	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("reading assumptions: %w", err)
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parsing assumptions: %w", err)
	}
	return f, nil
}

// SaveAssumptions writes a plan file, creating parent directories as
// needed.
func SaveAssumptions(path string, f AssumptionsFile) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating assumptions dir: %w", err)
		}
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating assumptions file: %w", err)
	}
	defer out.Close()

	enc := toml.NewEncoder(out)
	return enc.Encode(f)
}

// ToAssumptions converts the file values to exact decimals and validates
// them. The returned assumptions are ready for the engine.
func (f AssumptionsFile) ToAssumptions() (model.Assumptions, error) {
	a := model.Assumptions{
		HorizonMonths: f.HorizonMonths,
		InitialUsers: model.InitialUsers{
			Premium: f.InitialUsers.Premium,
			Basic:   f.InitialUsers.Basic,
		},
	}

	var err error
	if a.Pricing.Premium, err = dec("pricing.premium_price", f.Pricing.PremiumPrice); err != nil {
		return model.Assumptions{}, err
	}
	if a.Pricing.Basic, err = dec("pricing.basic_price", f.Pricing.BasicPrice); err != nil {
		return model.Assumptions{}, err
	}
	if a.MonthlyGrowthRate, err = dec("monthly_growth_rate", f.MonthlyGrowthRate); err != nil {
		return model.Assumptions{}, err
	}
	if a.VariableCostPerUser, err = dec("variable_cost_per_user", f.VariableCostPerUser); err != nil {
		return model.Assumptions{}, err
	}
	if a.InitialInvestment, err = dec("initial_investment", f.InitialInvestment); err != nil {
		return model.Assumptions{}, err
	}
	if a.TaxRate, err = dec("tax_rate", f.TaxRate); err != nil {
		return model.Assumptions{}, err
	}

	a.Payroll = make([]model.PayrollRole, len(f.Payroll))
	for i, e := range f.Payroll {
		salary, err := dec("payroll."+e.Role+".monthly_salary", e.MonthlySalary)
		if err != nil {
			return model.Assumptions{}, err
		}
		a.Payroll[i] = model.PayrollRole{
			Name:          e.Role,
			MonthlySalary: salary,
			Headcount:     e.Headcount,
			GraceMonths:   e.GraceMonths,
		}
	}

	a.FixedCosts = make(map[string]decimal.Decimal, len(f.FixedCosts))
	for name, v := range f.FixedCosts {
		d, err := dec("fixed_costs."+name, v)
		if err != nil {
			return model.Assumptions{}, err
		}
		a.FixedCosts[name] = d
	}

	if err := a.Validate(); err != nil {
		return model.Assumptions{}, err
	}
	return a, nil
}

// FromAssumptions converts engine assumptions back to the file shape, e.g.
// when a stored scenario is exported or edited.
func FromAssumptions(a model.Assumptions) AssumptionsFile {
	f := AssumptionsFile{
		HorizonMonths:       a.HorizonMonths,
		MonthlyGrowthRate:   a.MonthlyGrowthRate.InexactFloat64(),
		VariableCostPerUser: a.VariableCostPerUser.InexactFloat64(),
		InitialInvestment:   a.InitialInvestment.InexactFloat64(),
		TaxRate:             a.TaxRate.InexactFloat64(),
		Pricing: PricingSection{
			PremiumPrice: a.Pricing.Premium.InexactFloat64(),
			BasicPrice:   a.Pricing.Basic.InexactFloat64(),
		},
		InitialUsers: InitialUsersSection{
			Premium: a.InitialUsers.Premium,
			Basic:   a.InitialUsers.Basic,
		},
		Payroll:    make([]PayrollEntry, len(a.Payroll)),
		FixedCosts: make(map[string]float64, len(a.FixedCosts)),
	}
	for i, r := range a.Payroll {
		f.Payroll[i] = PayrollEntry{
			Role:          r.Name,
			MonthlySalary: r.MonthlySalary.InexactFloat64(),
			Headcount:     r.Headcount,
			GraceMonths:   r.GraceMonths,
		}
	}
	for name, v := range a.FixedCosts {
		f.FixedCosts[name] = v.InexactFloat64()
	}
	return f
}

// dec converts one file field to a decimal, rejecting NaN and infinities
// before they can reach the engine.
func dec(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, &model.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	return decimal.NewFromFloat(v), nil
}
