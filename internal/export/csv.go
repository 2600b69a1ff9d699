// Package export writes projection results to interchange formats.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/model"
)

// ledgerHeader lists the CSV columns in ledger field order.
var ledgerHeader = []string{
	"month", "premium_users", "basic_users", "total_users",
	"revenue_premium", "revenue_basic", "revenue_total",
	"personnel_cost", "fixed_cost", "variable_cost", "total_cost",
	"gross_profit", "tax", "net_profit", "cumulative_cash",
	"gross_margin", "net_margin", "cumulative_roi",
}

// WriteLedgerCSV writes one row per month. In European mode numbers use
// comma decimals with dot grouping, and fields are separated by semicolons
// so the decimal comma survives.
func WriteLedgerCSV(w io.Writer, l model.Ledger, european bool) error {
	cw := csv.NewWriter(w)
	if european {
		cw.Comma = ';'
	}

	money := func(d decimal.Decimal) string { return d.StringFixed(2) }
	ratio := func(d decimal.Decimal) string { return d.StringFixed(4) }
	if european {
		money = cli.FormatMoneyEU
		ratio = func(d decimal.Decimal) string {
			return strings.ReplaceAll(d.StringFixed(4), ".", ",")
		}
	}

	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, m := range l {
		record := []string{
			strconv.Itoa(m.Month),
			strconv.FormatInt(m.PremiumUsers, 10),
			strconv.FormatInt(m.BasicUsers, 10),
			strconv.FormatInt(m.TotalUsers, 10),
			money(m.RevenuePremium),
			money(m.RevenueBasic),
			money(m.RevenueTotal),
			money(m.PersonnelCost),
			money(m.FixedCost),
			money(m.VariableCost),
			money(m.TotalCost),
			money(m.GrossProfit),
			money(m.Tax),
			money(m.NetProfit),
			money(m.CumulativeCash),
			ratio(m.GrossMargin),
			ratio(m.NetMargin),
			ratio(m.CumulativeROI),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
