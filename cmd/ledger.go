package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/engine"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Month-by-month projection table",
	RunE:  runLedger,
}

var (
	ledgerLimit int
	ledgerWide  bool
)

func init() {
	ledgerCmd.Flags().IntVarP(&ledgerLimit, "limit", "l", 0, "Show only the first N months (0 = all)")
	ledgerCmd.Flags().BoolVarP(&ledgerWide, "wide", "w", false, "Include tax, margins, and ROI columns")
	rootCmd.AddCommand(ledgerCmd)
}

func runLedger(_ *cobra.Command, _ []string) error {
	a, source, err := loadPlan()
	if err != nil {
		return err
	}

	ledger := engine.Project(a)

	shown := ledger
	if ledgerLimit > 0 && len(shown) > ledgerLimit {
		shown = shown[:ledgerLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LEDGER  %dmo  %s", a.HorizonMonths, source)))
	fmt.Println()

	headers := []string{"Mo", "Users", "Revenue", "Costs", "Net", "Cash"}
	if ledgerWide {
		headers = []string{"Mo", "Users", "Revenue", "Costs", "Gross", "Tax", "Net", "Cash", "Margin", "ROI"}
	}

	rows := make([][]string, 0, len(shown)+1)
	for _, m := range shown {
		row := []string{
			strconv.Itoa(m.Month),
			cli.FormatUsers(m.TotalUsers),
			cli.FormatMoney(m.RevenueTotal),
			cli.FormatMoney(m.TotalCost),
		}
		if ledgerWide {
			row = append(row,
				cli.FormatMoney(m.GrossProfit),
				cli.FormatMoney(m.Tax),
			)
		}
		row = append(row,
			cli.FormatMoney(m.NetProfit),
			cli.FormatMoney(m.CumulativeCash),
		)
		if ledgerWide {
			row = append(row,
				cli.FormatPercent(m.NetMargin),
				cli.FormatPercent(m.CumulativeROI),
			)
		}
		rows = append(rows, row)
	}

	if len(shown) < len(ledger) {
		rows = append(rows, []string{"---"})
		last := ledger.Final()
		lastRow := []string{
			strconv.Itoa(last.Month),
			cli.FormatUsers(last.TotalUsers),
			cli.FormatMoney(last.RevenueTotal),
			cli.FormatMoney(last.TotalCost),
		}
		if ledgerWide {
			lastRow = append(lastRow, cli.FormatMoney(last.GrossProfit), cli.FormatMoney(last.Tax))
		}
		lastRow = append(lastRow, cli.FormatMoney(last.NetProfit), cli.FormatMoney(last.CumulativeCash))
		if ledgerWide {
			lastRow = append(lastRow, cli.FormatPercent(last.NetMargin), cli.FormatPercent(last.CumulativeROI))
		}
		rows = append(rows, lastRow)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: headers,
		Rows:    rows,
	}))

	if len(shown) < len(ledger) {
		fmt.Printf("  %d of %d months shown, final month appended. Use --limit 0 for all.\n\n",
			len(shown), len(ledger))
	}

	return nil
}
