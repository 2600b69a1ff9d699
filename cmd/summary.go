package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline projection metrics",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	a, source, err := loadPlan()
	if err != nil {
		return err
	}

	ledger := engine.Project(a)
	stats := engine.Describe(ledger)
	risk := engine.ClassifyRisk(ledger)
	final := ledger.Final()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %dmo  %s", a.HorizonMonths, source)))
	fmt.Println()

	rows := [][]string{
		{"Users (final)", cli.FormatUsers(final.TotalUsers)},
		{"Revenue (final mo)", cli.FormatMoney(final.RevenueTotal)},
		{"Costs (final mo)", cli.FormatMoney(final.TotalCost)},
		{"Net Profit (final mo)", fmt.Sprintf("%s  (margin %s)",
			cli.FormatMoney(final.NetProfit), cli.FormatPercent(final.NetMargin))},
		{"---"},
		{"Final Cash", cli.FormatMoney(final.CumulativeCash)},
		{"Lowest Cash", fmt.Sprintf("%s  (month %d)",
			cli.FormatMoney(stats.MinCumulativeCash), stats.MinCashMonth)},
	}

	if stats.PeakFundingGap.IsPositive() {
		rows = append(rows, []string{"Funding Gap", cli.FormatMoney(stats.PeakFundingGap)})
	}
	if a.InitialInvestment.IsPositive() {
		rows = append(rows, []string{"ROI (final)", cli.FormatPercent(stats.FinalROI)})
	}

	rows = append(rows, []string{"---"})

	if be, ok := engine.FindBreakEven(ledger); ok {
		rows = append(rows, []string{"Break-even", fmt.Sprintf("month %d  (net %s)",
			be.Month, cli.FormatMoney(be.NetProfit))})
	} else {
		rows = append(rows, []string{"Break-even", fmt.Sprintf("not reached in %d months", a.HorizonMonths)})
	}
	rows = append(rows, []string{"Profitable Months", fmt.Sprintf("%d/%d",
		stats.ProfitableMonths, a.HorizonMonths)})
	rows = append(rows, []string{"Risk", string(risk)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Shape of the curves over the horizon
	fmt.Printf("  Revenue  %s\n", cli.RenderSparkline(cli.Floats(monthlySeries(ledger, revenueOf))))
	fmt.Printf("  Net      %s\n", cli.RenderSparkline(cli.Floats(monthlySeries(ledger, netOf))))
	fmt.Printf("  Cash     %s\n", cli.RenderSparkline(cli.Floats(monthlySeries(ledger, cashOf))))
	fmt.Println()

	return nil
}

func monthlySeries(l model.Ledger, pick func(model.MonthRecord) decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(l))
	for i, m := range l {
		out[i] = pick(m)
	}
	return out
}

func revenueOf(m model.MonthRecord) decimal.Decimal { return m.RevenueTotal }
func netOf(m model.MonthRecord) decimal.Decimal     { return m.NetProfit }
func cashOf(m model.MonthRecord) decimal.Decimal    { return m.CumulativeCash }
