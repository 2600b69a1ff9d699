package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/engine"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Break-even month and required premium users",
	RunE:  runBreakeven,
}

func init() {
	rootCmd.AddCommand(breakevenCmd)
}

func runBreakeven(_ *cobra.Command, _ []string) error {
	a, source, err := loadPlan()
	if err != nil {
		return err
	}

	ledger := engine.Project(a)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BREAK-EVEN  %s", source)))
	fmt.Println()

	if be, ok := engine.FindBreakEven(ledger); ok {
		rows := [][]string{
			{"Month", fmt.Sprintf("%d", be.Month)},
			{"Users", cli.FormatUsers(be.TotalUsers)},
			{"---"},
			{"Revenue", cli.FormatMoney(be.RevenueTotal)},
			{"Costs", cli.FormatMoney(be.TotalCost)},
			{"Net Profit", cli.FormatMoney(be.NetProfit)},
			{"Cash Position", cli.FormatMoney(be.CumulativeCash)},
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "First Profitable Month",
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))
	} else {
		fmt.Printf("  No month turns a net profit within the %d-month horizon.\n\n", a.HorizonMonths)
	}

	// Structural figure: premium subscribers needed to cover the steady
	// monthly overhead with the current contribution margin.
	contribution := a.Pricing.Premium.Sub(a.VariableCostPerUser)
	overhead := a.PayrollMonthlyTotal().Add(a.FixedCostsTotal())

	if n, ok := engine.RequiredPremiumUsers(a); ok {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Required Premium Users",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Monthly Overhead", cli.FormatMoney(overhead)},
				{"Contribution/User", cli.FormatMoney(contribution)},
				{"---"},
				{"Users Needed", cli.FormatUsers(n)},
			},
		}))
	} else {
		fmt.Printf("  Required premium users: not applicable, premium price %s does not clear\n",
			cli.FormatMoney(a.Pricing.Premium))
		fmt.Printf("  the variable cost %s per user.\n\n", cli.FormatMoney(a.VariableCostPerUser))
	}

	return nil
}
