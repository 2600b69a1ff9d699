package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/model"
	"github.com/openmatchlabs/proforma/internal/tui/components"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

// Sweep metrics, cycled with the m key.
const (
	sweepMetricNet = iota
	sweepMetricCash
	sweepMetricROI
	sweepMetricCount // sentinel
)

// sensState holds the sensitivity tab state.
type sensState struct {
	param  int // index into model.SweepParameters()
	metric int
	points []model.SweepPoint
	note   string // shown instead of points when the sweep cannot run
}

func sweepMetricLabel(metric int) string {
	switch metric {
	case sweepMetricCash:
		return "Final cumulative cash"
	case sweepMetricROI:
		return "Final ROI"
	default:
		return "Final month net profit"
	}
}

func sweepMetricValue(p model.SweepPoint, metric int) decimal.Decimal {
	switch metric {
	case sweepMetricCash:
		return p.FinalCumulativeCash
	case sweepMetricROI:
		return p.FinalROI
	default:
		return p.FinalNetProfit
	}
}

func (a App) renderSensitivityTab(cw int) string {
	params := model.SweepParameters()

	var paramW int
	if a.isCompactLayout() {
		paramW = cw
	} else {
		paramW = cw / 3
		if paramW < 34 {
			paramW = 34
		}
	}

	paramCard := a.renderParamList(params, paramW)
	resultCard := a.renderSweepResults(params[a.sens.param], cw-paramW)

	if a.isCompactLayout() {
		return paramCard + "\n" + a.renderSweepResults(params[a.sens.param], cw)
	}
	return components.CardRow([]string{paramCard, resultCard})
}

func (a App) renderParamList(params []model.SweepParameter, w int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	var body strings.Builder
	for i, p := range params {
		base, err := p.BaseValue(a.plan)
		baseStr := ""
		if err == nil {
			baseStr = sweepValueLabel(p, base)
		}

		if i == a.sens.param {
			body.WriteString(markerStyle.Render("▸ "))
			body.WriteString(selectedStyle.Render(fmt.Sprintf("%-24s %10s", p.Label(), baseStr)))
		} else {
			body.WriteString(valueStyle.Render("  "))
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-24s ", p.Label())))
			body.WriteString(valueStyle.Render(fmt.Sprintf("%9s", baseStr)))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(labelStyle.Render("[j/k] parameter  [m] metric"))

	return components.ContentCard("Swept Parameter", body.String(), w)
}

func (a App) renderSweepResults(p model.SweepParameter, w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	title := fmt.Sprintf("%s · %s", p.Label(), sweepMetricLabel(a.sens.metric))

	if a.sens.note != "" {
		return components.ContentCard(title, mutedStyle.Render(a.sens.note), w)
	}
	if len(a.sens.points) == 0 {
		return components.ContentCard(title, mutedStyle.Render("no sweep points"), w)
	}

	rows := make([]components.SignedBar, len(a.sens.points))
	for i, pt := range a.sens.points {
		v := sweepMetricValue(pt, a.sens.metric)
		text := cli.FormatCompact(v)
		if a.sens.metric == sweepMetricROI {
			text = cli.FormatPercent(v)
		}
		rows[i] = components.SignedBar{
			Label: sweepValueLabel(p, pt.Value),
			Value: v.InexactFloat64(),
			Text:  text,
		}
	}

	var body strings.Builder
	body.WriteString(components.SignedBars(rows, inner))
	body.WriteString("\n\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("sampling 50%%..150%% of the plan value, %d points", len(a.sens.points))))

	return components.ContentCard(title, body.String(), w)
}

// sweepValueLabel formats a swept value for row labels: rates as percent,
// prices and costs as plain amounts.
func sweepValueLabel(p model.SweepParameter, v decimal.Decimal) string {
	if p == model.SweepGrowthRate {
		return cli.FormatPercent(v)
	}
	return v.StringFixed(2)
}
