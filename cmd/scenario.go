package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/store"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage saved scenarios (named assumption sets)",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current plan under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a saved scenario's assumptions",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

func init() {
	scenarioCmd.AddCommand(scenarioSaveCmd)
	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioDeleteCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioSave(_ *cobra.Command, args []string) error {
	name := args[0]

	a, source, err := loadPlan()
	if err != nil {
		return err
	}

	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.Save(name, a)
	if err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}

	fmt.Printf("  Saved %s as scenario %q\n", source, sc.Name)
	fmt.Printf("  Project it with: proforma --scenario %s\n", sc.Name)
	return nil
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	scenarios, err := st.List()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		fmt.Println("\n  No scenarios saved yet. Save one with `proforma scenario save <name>`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCENARIOS  %d saved", len(scenarios))))
	fmt.Println()

	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		a := sc.Assumptions
		rows = append(rows, []string{
			sc.Name,
			fmt.Sprintf("%dmo", a.HorizonMonths),
			cli.FormatMoney(a.Pricing.Premium),
			cli.FormatMoney(a.Pricing.Basic),
			cli.FormatPercent(a.MonthlyGrowthRate),
			sc.UpdatedAt.Local().Format("Jan 02 2006"),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Horizon", "Premium", "Basic", "Growth", "Updated"},
		Rows:    rows,
	}))

	return nil
}

func runScenarioShow(_ *cobra.Command, args []string) error {
	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sc, err := st.Get(args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no scenario named %q, see `proforma scenario list`", args[0])
		}
		return err
	}
	a := sc.Assumptions

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCENARIO  %s", sc.Name)))
	fmt.Println()

	rows := [][]string{
		{"Horizon", fmt.Sprintf("%d months", a.HorizonMonths)},
		{"Premium Price", cli.FormatMoney(a.Pricing.Premium)},
		{"Basic Price", cli.FormatMoney(a.Pricing.Basic)},
		{"Initial Users", fmt.Sprintf("%s premium / %s basic",
			cli.FormatUsers(a.InitialUsers.Premium), cli.FormatUsers(a.InitialUsers.Basic))},
		{"Monthly Growth", cli.FormatPercent(a.MonthlyGrowthRate)},
		{"Variable Cost/User", cli.FormatMoney(a.VariableCostPerUser)},
		{"Initial Investment", cli.FormatMoney(a.InitialInvestment)},
		{"Tax Rate", cli.FormatPercent(a.TaxRate)},
		{"---"},
		{"Payroll/mo", fmt.Sprintf("%s (%d roles)", cli.FormatMoney(a.PayrollMonthlyTotal()), len(a.Payroll))},
		{"Fixed Costs/mo", cli.FormatMoney(a.FixedCostsTotal())},
	}

	// Headline outcome so scenarios can be compared at a glance
	if err := a.Validate(); err == nil {
		ledger := engine.Project(a)
		final := ledger.Final()
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"Final Cash", cli.FormatMoney(final.CumulativeCash)})
		rows = append(rows, []string{"Risk", string(engine.ClassifyRisk(ledger))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Assumption", "Value"},
		Rows:    rows,
	}))

	fmt.Printf("  Created %s, updated %s\n\n",
		sc.CreatedAt.Local().Format("Jan 02 2006"),
		sc.UpdatedAt.Local().Format("Jan 02 2006"))

	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	st, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Delete(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no scenario named %q", args[0])
		}
		return err
	}

	fmt.Printf("  Deleted scenario %q\n", args[0])
	return nil
}
