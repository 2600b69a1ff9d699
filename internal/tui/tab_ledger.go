package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/model"
	"github.com/openmatchlabs/proforma/internal/tui/components"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

// ledgerState holds the ledger tab state.
type ledgerState struct {
	cursor int
	offset int // scroll offset for the month list
}

func (a App) renderLedgerTab(cw, h int) string {
	t := theme.Active

	if len(a.ledger) == 0 {
		return components.ContentCard("Ledger",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("No projection, fix the plan file first"), cw)
	}

	if a.isCompactLayout() {
		return a.renderLedgerList(cw, h, false)
	}

	leftW := cw * 2 / 3
	if leftW < 52 {
		leftW = 52
	}
	rightW := cw - leftW

	list := a.renderLedgerList(leftW, h, true)
	detail := a.renderMonthDetail(a.ledger[a.ledgerState.cursor], rightW)

	return components.CardRow([]string{list, detail})
}

func (a App) renderLedgerList(w, h int, split bool) string {
	t := theme.Active
	ls := a.ledgerState

	inner := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%3s %9s %12s %12s %12s", "Mo", "Users", "Revenue", "Net", "Cash")))
	body.WriteString("\n")

	visible := h - 8 // card border, title, header row, hint line
	if visible < 5 {
		visible = 5
	}

	offset := ls.offset
	if ls.cursor < offset {
		offset = ls.cursor
	}
	if ls.cursor >= offset+visible {
		offset = ls.cursor - visible + 1
	}

	end := offset + visible
	if end > len(a.ledger) {
		end = len(a.ledger)
	}

	for i := offset; i < end; i++ {
		m := a.ledger[i]
		line := fmt.Sprintf("%3d %9s %12s %12s %12s",
			m.Month,
			cli.FormatUsers(m.TotalUsers),
			cli.FormatCompact(m.RevenueTotal),
			cli.FormatCompact(m.NetProfit),
			cli.FormatCompact(m.CumulativeCash))
		if len(line) > inner {
			line = line[:inner]
		}

		switch {
		case i == ls.cursor:
			body.WriteString(selectedStyle.Render(line))
		case m.NetProfit.IsNegative():
			body.WriteString(lossStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	hint := "[j/k] move  [g/G] first/last"
	if !split {
		hint += "  widen the terminal for month detail"
	}
	body.WriteString(mutedStyle.Render(hint))

	title := fmt.Sprintf("Ledger [%d/%d]", ls.cursor+1, len(a.ledger))
	return components.ContentCard(title, body.String(), w)
}

// renderMonthDetail shows every line item for one month, the same fields
// the ledger command prints in wide mode.
func (a App) renderMonthDetail(m model.MonthRecord, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	netStyle := lipgloss.NewStyle().Foreground(t.Green)
	if m.NetProfit.IsNegative() {
		netStyle = lipgloss.NewStyle().Foreground(t.Red)
	}

	row := func(label string, value string) string {
		return fmt.Sprintf("%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-14s", label)),
			valueStyle.Render(value))
	}

	var body strings.Builder
	if a.hasBreakEven && a.breakEven.Month == m.Month {
		body.WriteString(netStyle.Render("break-even month"))
		body.WriteString("\n")
	}
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	body.WriteString(headerStyle.Render("USERS"))
	body.WriteString("\n")
	body.WriteString(row("Premium", cli.FormatUsers(m.PremiumUsers)))
	body.WriteString(row("Basic", cli.FormatUsers(m.BasicUsers)))
	body.WriteString(row("Total", cli.FormatUsers(m.TotalUsers)))
	body.WriteString("\n")

	body.WriteString(headerStyle.Render("REVENUE"))
	body.WriteString("\n")
	body.WriteString(row("Premium", cli.FormatMoney(m.RevenuePremium)))
	body.WriteString(row("Basic", cli.FormatMoney(m.RevenueBasic)))
	body.WriteString(row("Total", cli.FormatMoney(m.RevenueTotal)))
	body.WriteString("\n")

	body.WriteString(headerStyle.Render("COSTS"))
	body.WriteString("\n")
	body.WriteString(row("Personnel", cli.FormatMoney(m.PersonnelCost)))
	body.WriteString(row("Fixed", cli.FormatMoney(m.FixedCost)))
	body.WriteString(row("Variable", cli.FormatMoney(m.VariableCost)))
	body.WriteString(row("Total", cli.FormatMoney(m.TotalCost)))
	body.WriteString("\n")

	body.WriteString(headerStyle.Render("RESULT"))
	body.WriteString("\n")
	body.WriteString(row("Gross profit", cli.FormatMoney(m.GrossProfit)))
	body.WriteString(row("Tax", cli.FormatMoney(m.Tax)))
	body.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-14s", "Net profit")),
		netStyle.Render(cli.FormatMoney(m.NetProfit))))
	body.WriteString(row("Cash", cli.FormatMoney(m.CumulativeCash)))
	body.WriteString("\n")

	body.WriteString(row("Gross margin", cli.FormatPercent(m.GrossMargin)))
	body.WriteString(row("Net margin", cli.FormatPercent(m.NetMargin)))
	body.WriteString(row("ROI", cli.FormatPercent(m.CumulativeROI)))

	title := fmt.Sprintf("Month %d", m.Month)
	return components.ContentCard(title, body.String(), w)
}
