package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/tui/components"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

const (
	editorFieldPremiumPrice = iota
	editorFieldBasicPrice
	editorFieldPremiumUsers
	editorFieldBasicUsers
	editorFieldGrowthRate
	editorFieldVariableCost
	editorFieldInvestment
	editorFieldTaxRate
	editorFieldHorizon
	editorFieldCount // sentinel
)

// editorState tracks the assumptions tab state. Payroll and fixed costs are
// shown read-only; they are edited in the plan file itself.
type editorState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if the last apply or save failed
}

func newEditorInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 20
	return ti
}

func editorFieldLabel(field int) string {
	switch field {
	case editorFieldPremiumPrice:
		return "Premium price"
	case editorFieldBasicPrice:
		return "Basic price"
	case editorFieldPremiumUsers:
		return "Premium users (month 1)"
	case editorFieldBasicUsers:
		return "Basic users (month 1)"
	case editorFieldGrowthRate:
		return "Monthly growth rate"
	case editorFieldVariableCost:
		return "Variable cost per user"
	case editorFieldInvestment:
		return "Initial investment"
	case editorFieldTaxRate:
		return "Tax rate"
	case editorFieldHorizon:
		return "Horizon months"
	}
	return ""
}

// editorFieldValue returns the raw file value for editing.
func (a App) editorFieldValue(field int) string {
	f := a.file
	switch field {
	case editorFieldPremiumPrice:
		return strconv.FormatFloat(f.Pricing.PremiumPrice, 'f', -1, 64)
	case editorFieldBasicPrice:
		return strconv.FormatFloat(f.Pricing.BasicPrice, 'f', -1, 64)
	case editorFieldPremiumUsers:
		return strconv.FormatInt(f.InitialUsers.Premium, 10)
	case editorFieldBasicUsers:
		return strconv.FormatInt(f.InitialUsers.Basic, 10)
	case editorFieldGrowthRate:
		return strconv.FormatFloat(f.MonthlyGrowthRate, 'f', -1, 64)
	case editorFieldVariableCost:
		return strconv.FormatFloat(f.VariableCostPerUser, 'f', -1, 64)
	case editorFieldInvestment:
		return strconv.FormatFloat(f.InitialInvestment, 'f', -1, 64)
	case editorFieldTaxRate:
		return strconv.FormatFloat(f.TaxRate, 'f', -1, 64)
	case editorFieldHorizon:
		return strconv.Itoa(f.HorizonMonths)
	}
	return ""
}

func (a App) editorStartEdit() (tea.Model, tea.Cmd) {
	a.editor.editing = true
	a.editor.saved = false
	a.editor.saveErr = nil

	ti := newEditorInput()
	switch a.editor.cursor {
	case editorFieldGrowthRate, editorFieldTaxRate:
		ti.Placeholder = "0.10 = 10%"
	case editorFieldHorizon:
		ti.Placeholder = "36"
	default:
		ti.Placeholder = "amount"
	}
	ti.SetValue(a.editorFieldValue(a.editor.cursor))
	ti.Focus()

	a.editor.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateEditorInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.editorApply()
		a.editor.editing = false
		a.editor.saved = a.editor.saveErr == nil
		return a, nil
	case "esc":
		a.editor.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.editor.input, cmd = a.editor.input.Update(msg)
	return a, cmd
}

// editorApply parses the input and commits it only if the whole plan still
// validates; a rejected value leaves the file untouched.
func (a *App) editorApply() {
	val := strings.TrimSpace(a.editor.input.Value())
	next := a.file

	switch a.editor.cursor {
	case editorFieldPremiumPrice, editorFieldBasicPrice, editorFieldGrowthRate,
		editorFieldVariableCost, editorFieldInvestment, editorFieldTaxRate:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			a.editor.saveErr = fmt.Errorf("not a number: %q", val)
			return
		}
		switch a.editor.cursor {
		case editorFieldPremiumPrice:
			next.Pricing.PremiumPrice = n
		case editorFieldBasicPrice:
			next.Pricing.BasicPrice = n
		case editorFieldGrowthRate:
			next.MonthlyGrowthRate = n
		case editorFieldVariableCost:
			next.VariableCostPerUser = n
		case editorFieldInvestment:
			next.InitialInvestment = n
		case editorFieldTaxRate:
			next.TaxRate = n
		}
	case editorFieldPremiumUsers, editorFieldBasicUsers:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			a.editor.saveErr = fmt.Errorf("not a whole number: %q", val)
			return
		}
		if a.editor.cursor == editorFieldPremiumUsers {
			next.InitialUsers.Premium = n
		} else {
			next.InitialUsers.Basic = n
		}
	case editorFieldHorizon:
		n, err := strconv.Atoi(val)
		if err != nil {
			a.editor.saveErr = fmt.Errorf("not a whole number: %q", val)
			return
		}
		next.HorizonMonths = n
	}

	if _, err := next.ToAssumptions(); err != nil {
		a.editor.saveErr = err
		return
	}

	a.file = next
	a.recompute()
	a.editor.saveErr = config.SaveAssumptions(a.filePath, a.file)
}

func (a App) renderAssumptionsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	// Display values come from the file, formatted for reading
	displayValue := func(field int) string {
		f := a.file
		switch field {
		case editorFieldPremiumPrice:
			return fmt.Sprintf("%.2f", f.Pricing.PremiumPrice)
		case editorFieldBasicPrice:
			return fmt.Sprintf("%.2f", f.Pricing.BasicPrice)
		case editorFieldPremiumUsers:
			return cli.FormatUsers(f.InitialUsers.Premium)
		case editorFieldBasicUsers:
			return cli.FormatUsers(f.InitialUsers.Basic)
		case editorFieldGrowthRate:
			return fmt.Sprintf("%.1f%%", f.MonthlyGrowthRate*100)
		case editorFieldVariableCost:
			return fmt.Sprintf("%.2f", f.VariableCostPerUser)
		case editorFieldInvestment:
			return fmt.Sprintf("%.2f", f.InitialInvestment)
		case editorFieldTaxRate:
			return fmt.Sprintf("%.1f%%", f.TaxRate*100)
		case editorFieldHorizon:
			return strconv.Itoa(f.HorizonMonths)
		}
		return ""
	}

	var formBody strings.Builder
	for i := 0; i < editorFieldCount; i++ {
		// Show text input if currently editing this field
		if a.editor.editing && i == a.editor.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-26s ", editorFieldLabel(i))))
			formBody.WriteString(a.editor.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.editor.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-26s ", editorFieldLabel(i)+":"))
			value := selectedStyle.Render(displayValue(i))
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-26s ", editorFieldLabel(i)+":")))
			formBody.WriteString(valueStyle.Render(displayValue(i)))
		}
		formBody.WriteString("\n")
	}

	if a.editor.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not applied: %s", a.editor.saveErr)))
	} else if a.editor.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Payroll card
	var payrollBody strings.Builder
	payrollHeader := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	payrollBody.WriteString(payrollHeader.Render(fmt.Sprintf("%-22s %10s %4s %6s %10s", "Role", "Salary", "N", "Grace", "Monthly")))
	payrollBody.WriteString("\n")
	for _, r := range a.plan.Payroll {
		total := r.MonthlySalary.Mul(decimal.NewFromInt(int64(r.Headcount)))
		payrollBody.WriteString(valueStyle.Render(fmt.Sprintf("%-22s %10s %4d %6d %10s",
			truncStr(r.Name, 22),
			cli.FormatMoney(r.MonthlySalary),
			r.Headcount,
			r.GraceMonths,
			cli.FormatMoney(total))))
		payrollBody.WriteString("\n")
	}
	payrollBody.WriteString(labelStyle.Render(fmt.Sprintf("%-22s %10s %4s %6s %10s", "Total", "", "", "",
		cli.FormatMoney(a.plan.PayrollMonthlyTotal()))))

	// Fixed costs card
	var fixedBody strings.Builder
	for _, name := range a.plan.FixedCostCategories() {
		fixedBody.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-18s", name)),
			valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(a.plan.FixedCosts[name])))))
	}
	fixedBody.WriteString(fmt.Sprintf("%s %s\n\n",
		labelStyle.Render(fmt.Sprintf("%-18s", "total")),
		valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(a.plan.FixedCostsTotal())))))
	hits, misses := a.cache.Stats()
	fixedBody.WriteString(labelStyle.Render("Plan file:   ") + valueStyle.Render(a.filePath) + "\n")
	fixedBody.WriteString(labelStyle.Render("Config file: ") + valueStyle.Render(config.ConfigPath()) + "\n")
	fixedBody.WriteString(labelStyle.Render("Cache:       ") + valueStyle.Render(fmt.Sprintf("%d hit / %d miss", hits, misses)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Plan", formBody.String(), cw))
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Payroll", payrollBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Fixed Costs", fixedBody.String(), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		payrollCard := components.ContentCard("Payroll", payrollBody.String(), halves[0])
		fixedCard := components.ContentCard("Fixed Costs", fixedBody.String(), halves[1])
		b.WriteString(components.CardRow([]string{payrollCard, fixedCard}))
	}

	return b.String()
}
