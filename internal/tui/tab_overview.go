package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/tui/components"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	stats := a.stats
	final := a.ledger.Final()
	var b strings.Builder

	// Row 1: Metric cards
	cashColor := t.Green
	if final.CumulativeCash.IsNegative() {
		cashColor = t.Red
	}
	netColor := t.Green
	if final.NetProfit.IsNegative() {
		netColor = t.Red
	}

	breakEvenValue := "not reached"
	breakEvenColor := t.Orange
	breakEvenDelta := fmt.Sprintf("within %d months", a.file.HorizonMonths)
	if a.hasBreakEven {
		breakEvenValue = fmt.Sprintf("month %d", a.breakEven.Month)
		breakEvenColor = t.Green
		breakEvenDelta = "net " + cli.FormatCompact(a.breakEven.NetProfit)
	}

	cards := []components.Metric{
		{
			Label:      "Final Cash",
			Value:      cli.FormatCompact(final.CumulativeCash),
			Delta:      fmt.Sprintf("lowest %s (mo %d)", cli.FormatCompact(stats.MinCumulativeCash), stats.MinCashMonth),
			ValueColor: cashColor,
		},
		{
			Label:      "Final Month Net",
			Value:      cli.FormatCompact(final.NetProfit),
			Delta:      "margin " + cli.FormatPercent(final.NetMargin),
			ValueColor: netColor,
		},
		{
			Label:      "Break-even",
			Value:      breakEvenValue,
			Delta:      breakEvenDelta,
			ValueColor: breakEvenColor,
		},
		{
			Label:      "Risk",
			Value:      string(a.risk),
			Delta:      fmt.Sprintf("%d loss months", stats.UnprofitableMonths),
			ValueColor: a.riskColor(),
		},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Monthly revenue chart
	if len(a.ledger) > 0 {
		revenues := make([]float64, len(a.ledger))
		for i, m := range a.ledger {
			revenues[i] = m.RevenueTotal.InexactFloat64()
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Revenue (%dmo)", a.file.HorizonMonths),
			components.BarChart(revenues, monthLabels(a.ledger), t.Blue, chartInnerW, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Cash curve + unit economics
	halves := components.LayoutRow(cw, 2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	var cashBody strings.Builder
	if len(a.ledger) > 0 {
		cash := make([]float64, len(a.ledger))
		nets := make([]float64, len(a.ledger))
		for i, m := range a.ledger {
			cash[i] = m.CumulativeCash.InexactFloat64()
			nets[i] = m.NetProfit.InexactFloat64()
		}
		cashBody.WriteString(labelStyle.Render("Cumulative cash"))
		cashBody.WriteString("\n")
		cashBody.WriteString(components.Sparkline(cash, t.Accent))
		cashBody.WriteString("\n\n")
		cashBody.WriteString(labelStyle.Render("Net profit"))
		cashBody.WriteString("\n")
		cashBody.WriteString(components.Sparkline(nets, t.Blue))
		cashBody.WriteString("\n\n")

		gapLine := greenStyle.Render("fully self-funded")
		if stats.PeakFundingGap.IsPositive() {
			gapLine = redStyle.Render("peak funding gap " + cli.FormatMoney(stats.PeakFundingGap))
		}
		cashBody.WriteString(gapLine)
	}

	var unitBody strings.Builder
	margin := a.plan.Pricing.Premium.Sub(a.plan.VariableCostPerUser)
	fmt.Fprintf(&unitBody, "%s %s   %s %s\n",
		labelStyle.Render("Premium:"), valueStyle.Render(cli.FormatMoney(a.plan.Pricing.Premium)),
		labelStyle.Render("Basic:"), valueStyle.Render(cli.FormatMoney(a.plan.Pricing.Basic)))
	fmt.Fprintf(&unitBody, "%s %s\n",
		labelStyle.Render("Variable cost per user:"), valueStyle.Render(cli.FormatMoney(a.plan.VariableCostPerUser)))
	fmt.Fprintf(&unitBody, "%s %s\n\n",
		labelStyle.Render("Premium contribution:"), valueStyle.Render(cli.FormatMoney(margin)))

	fmt.Fprintf(&unitBody, "%s %s\n",
		labelStyle.Render("Final users:"), valueStyle.Render(cli.FormatUsers(stats.FinalUsers)))
	if a.hasRequired {
		fmt.Fprintf(&unitBody, "%s %s",
			labelStyle.Render("Users to cover overhead:"), valueStyle.Render(cli.FormatUsers(a.requiredUsers)))
	} else {
		unitBody.WriteString(redStyle.Render("premium price does not clear the variable cost"))
	}

	cashCard := components.ContentCard("Cash", cashBody.String(), halves[0])
	unitCard := components.ContentCard("Unit Economics", unitBody.String(), halves[1])
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Cash", cashBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Unit Economics", unitBody.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{cashCard, unitCard}))
	}

	return b.String()
}
