package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/model"
)

// WriteMarkdown writes the narrative projection report.
func WriteMarkdown(w io.Writer, doc Document) error {
	var b strings.Builder

	b.WriteString("# Financial Projection\n\n")
	fmt.Fprintf(&b, "Generated %s.\n\n", doc.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	writeAssumptions(&b, doc)
	writeHeadline(&b, doc)
	writeOutlook(&b, doc)
	writeLedgerTable(&b, doc.Ledger)

	_, err := io.WriteString(w, b.String())
	return err
}

// money formats a DTO float amount; report values that come from the
// ledger are formatted from their decimals directly.
func money(f float64) string {
	return cli.FormatMoney(decimal.NewFromFloat(f))
}

func writeAssumptions(b *strings.Builder, doc Document) {
	a := doc.Assumptions

	b.WriteString("## Assumptions\n\n")
	fmt.Fprintf(b, "- Horizon: %d months\n", a.HorizonMonths)
	fmt.Fprintf(b, "- Pricing: premium %s / basic %s per month\n",
		money(a.Pricing.PremiumPrice), money(a.Pricing.BasicPrice))
	fmt.Fprintf(b, "- Initial users: %s premium, %s basic\n",
		cli.FormatUsers(a.InitialUsers.Premium), cli.FormatUsers(a.InitialUsers.Basic))
	fmt.Fprintf(b, "- Monthly growth: %s\n", cli.FormatPercent(decimal.NewFromFloat(a.MonthlyGrowthRate)))
	fmt.Fprintf(b, "- Variable cost per user: %s\n", money(a.VariableCostPerUser))
	fmt.Fprintf(b, "- Initial investment: %s\n", money(a.InitialInvestment))
	fmt.Fprintf(b, "- Tax rate: %s\n\n", cli.FormatPercent(decimal.NewFromFloat(a.TaxRate)))

	if len(a.Payroll) > 0 {
		b.WriteString("| Role | Monthly Salary | Headcount | Grace Months |\n")
		b.WriteString("|------|---------------:|----------:|-------------:|\n")
		for _, r := range a.Payroll {
			fmt.Fprintf(b, "| %s | %s | %d | %d |\n",
				r.Role, money(r.MonthlySalary), r.Headcount, r.GraceMonths)
		}
		b.WriteString("\n")
	}

	if len(a.FixedCosts) > 0 {
		b.WriteString("| Fixed Cost | Monthly Amount |\n")
		b.WriteString("|------------|---------------:|\n")
		for _, name := range sortedKeys(a.FixedCosts) {
			fmt.Fprintf(b, "| %s | %s |\n", name, money(a.FixedCosts[name]))
		}
		b.WriteString("\n")
	}
}

func writeHeadline(b *strings.Builder, doc Document) {
	s := doc.Stats
	n := len(doc.Ledger)

	b.WriteString("## Headline\n\n")
	fmt.Fprintf(b, "- Total revenue over %d months: %s\n", n, cli.FormatMoney(s.TotalRevenue))
	fmt.Fprintf(b, "- Total cost: %s\n", cli.FormatMoney(s.TotalCost))
	fmt.Fprintf(b, "- Net result: %s\n", cli.FormatMoney(s.TotalNetProfit))
	fmt.Fprintf(b, "- Final month: %s users, %s revenue, %s net profit\n",
		cli.FormatUsers(s.FinalUsers), cli.FormatMoney(s.FinalMonthlyRevenue), cli.FormatMoney(s.FinalNetProfit))
	fmt.Fprintf(b, "- Cash at end of horizon: %s (ROI %s)\n",
		cli.FormatMoney(s.FinalCumulativeCash), cli.FormatPercent(s.FinalROI))
	fmt.Fprintf(b, "- Lowest cash point: %s in month %d\n",
		cli.FormatMoney(s.MinCumulativeCash), s.MinCashMonth)
	if s.PeakFundingGap.IsPositive() {
		fmt.Fprintf(b, "- Peak funding gap: %s\n", cli.FormatMoney(s.PeakFundingGap))
	}
	b.WriteString("\n")
}

func writeOutlook(b *strings.Builder, doc Document) {
	b.WriteString("## Outlook\n\n")
	fmt.Fprintf(b, "- Risk: **%s** (%s)\n", doc.Risk, riskReason(doc))
	if doc.BreakEvenMonth != nil {
		fmt.Fprintf(b, "- Break-even: first profitable month is month %d\n", *doc.BreakEvenMonth)
	} else {
		fmt.Fprintf(b, "- Break-even: not reached within the %d-month horizon\n", len(doc.Ledger))
	}
	if doc.RequiredPremiumUsers != nil {
		fmt.Fprintf(b, "- Premium users covering monthly overhead: %s\n",
			cli.FormatUsers(*doc.RequiredPremiumUsers))
	} else {
		b.WriteString("- Premium users covering monthly overhead: not applicable, the premium price does not exceed the variable cost per user\n")
	}
	b.WriteString("\n")
}

func riskReason(doc Document) string {
	s := doc.Stats
	switch doc.Risk {
	case model.RiskHigh:
		return fmt.Sprintf("cash goes negative, reaching %s in month %d",
			cli.FormatMoney(s.MinCumulativeCash), s.MinCashMonth)
	case model.RiskMedium:
		return fmt.Sprintf("%d of %d months run at a loss", s.UnprofitableMonths, len(doc.Ledger))
	default:
		return fmt.Sprintf("%d of %d months are profitable and cash stays non-negative",
			s.ProfitableMonths, len(doc.Ledger))
	}
}

func writeLedgerTable(b *strings.Builder, l model.Ledger) {
	b.WriteString("## Month by Month\n\n")
	b.WriteString("| Month | Users | Revenue | Total Cost | Net Profit | Cash |\n")
	b.WriteString("|------:|------:|--------:|-----------:|-----------:|-----:|\n")
	for _, m := range l {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s |\n",
			m.Month,
			cli.FormatUsers(m.TotalUsers),
			cli.FormatMoney(m.RevenueTotal),
			cli.FormatMoney(m.TotalCost),
			cli.FormatMoney(m.NetProfit),
			cli.FormatMoney(m.CumulativeCash),
		)
	}
	b.WriteString("\nMargins and the per-tier split are in the CSV export.\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
