package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

// setupValues collects the first-run form answers. huh binds string
// pointers, so everything is parsed in applySetup.
type setupValues struct {
	premiumPrice string
	basicPrice   string
	premiumUsers string
	basicUsers   string
	growthRate   string
	horizon      string
	themeName    string
}

func defaultSetupValues(f config.AssumptionsFile) setupValues {
	return setupValues{
		premiumPrice: strconv.FormatFloat(f.Pricing.PremiumPrice, 'f', -1, 64),
		basicPrice:   strconv.FormatFloat(f.Pricing.BasicPrice, 'f', -1, 64),
		premiumUsers: strconv.FormatInt(f.InitialUsers.Premium, 10),
		basicUsers:   strconv.FormatInt(f.InitialUsers.Basic, 10),
		growthRate:   strconv.FormatFloat(f.MonthlyGrowthRate, 'f', -1, 64),
		horizon:      strconv.Itoa(f.HorizonMonths),
		themeName:    theme.Active.Name,
	}
}

// newSetupForm builds the first-run wizard shown when the plan file does
// not exist yet. Payroll and fixed costs start from the defaults and can be
// edited afterwards, in the Assumptions tab or in the file itself.
func newSetupForm(filePath string, v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to proforma").
				Description(fmt.Sprintf("No plan file at %s yet.\nA few questions set up the projection; the team and fixed costs start from editable defaults.", filePath)),
			huh.NewInput().
				Title("Premium price per month").
				Value(&v.premiumPrice).
				Validate(validatePositiveNumber),
			huh.NewInput().
				Title("Basic price per month").
				Value(&v.basicPrice).
				Validate(validatePositiveNumber),
			huh.NewInput().
				Title("Premium users in month 1").
				Value(&v.premiumUsers).
				Validate(validateCount),
			huh.NewInput().
				Title("Basic users in month 1").
				Value(&v.basicUsers).
				Validate(validateCount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly growth rate").
				Description("As a fraction: 0.10 means 10% per month").
				Value(&v.growthRate).
				Validate(validateNumber),
			huh.NewInput().
				Title("Projection horizon in months").
				Value(&v.horizon).
				Validate(validateMonths),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.themeName),
		),
	)
}

// applySetup builds the plan file from the form answers and writes it,
// then saves the chosen theme to the config.
func (a *App) applySetup() {
	v := a.setupVals
	f := a.file

	if p, err := strconv.ParseFloat(strings.TrimSpace(v.premiumPrice), 64); err == nil {
		f.Pricing.PremiumPrice = p
	}
	if p, err := strconv.ParseFloat(strings.TrimSpace(v.basicPrice), 64); err == nil {
		f.Pricing.BasicPrice = p
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(v.premiumUsers), 10, 64); err == nil {
		f.InitialUsers.Premium = n
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(v.basicUsers), 10, 64); err == nil {
		f.InitialUsers.Basic = n
	}
	if g, err := strconv.ParseFloat(strings.TrimSpace(v.growthRate), 64); err == nil {
		f.MonthlyGrowthRate = g
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.horizon)); err == nil && n > 0 {
		f.HorizonMonths = n
	}

	a.file = f
	if err := config.SaveAssumptions(a.filePath, a.file); err != nil {
		a.fileErr = err
	}

	if v.themeName != "" && v.themeName != theme.Active.Name {
		theme.SetActive(v.themeName)
		cfg := loadConfigOrDefault()
		cfg.Appearance.Theme = v.themeName
		_ = config.Save(cfg)
	}
}

func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validatePositiveNumber(s string) error {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n <= 0 {
		return errors.New("enter a number above zero")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return errors.New("enter a whole number, zero or more")
	}
	return nil
}

func validateMonths(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("enter a whole number of months, at least 1")
	}
	return nil
}
