// Package tui provides the interactive Bubble Tea dashboard for proforma.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/model"
	"github.com/openmatchlabs/proforma/internal/tui/components"
	"github.com/openmatchlabs/proforma/internal/tui/theme"
)

// App is the root Bubble Tea model.
type App struct {
	// Plan file backing the dashboard
	filePath string
	file     config.AssumptionsFile
	fileErr  error // load or validation error for the current plan

	// Projection results, refreshed by recompute
	cache         *engine.Cache
	plan          model.Assumptions
	ledger        model.Ledger
	stats         model.LedgerStats
	risk          model.RiskLevel
	breakEven     model.MonthRecord
	hasBreakEven  bool
	requiredUsers int64
	hasRequired   bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	ledgerState ledgerState
	sens        sensState
	editor      editorState

	sweepSteps int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model around a plan file. A missing file
// triggers the first-run setup form instead of an error.
func NewApp(cfg config.Config, filePath string) App {
	theme.SetActive(cfg.Appearance.Theme)

	steps := cfg.General.SweepSteps
	if steps < 2 {
		steps = 9
	}

	a := App{
		filePath:   filePath,
		cache:      engine.NewCache(),
		sweepSteps: steps,
		file:       config.DefaultAssumptions(),
	}

	f, err := config.LoadAssumptions(filePath)
	switch {
	case err == nil:
		a.file = f
	case errors.Is(err, os.ErrNotExist):
		a.needSetup = true
		a.setupVals = defaultSetupValues(a.file)
		a.setupForm = newSetupForm(filePath, &a.setupVals)
	default:
		a.fileErr = err
	}

	a.recompute()
	a.editor.input = newEditorInput()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute re-runs the projection and every derived view from the current
// plan file. Repeat runs with unchanged assumptions hit the cache.
func (a *App) recompute() {
	plan, err := a.file.ToAssumptions()
	if err != nil {
		a.fileErr = err
		return
	}

	ledger, err := a.cache.Project(plan)
	if err != nil {
		a.fileErr = err
		return
	}

	a.fileErr = nil
	a.plan = plan
	a.ledger = ledger
	a.stats = engine.Describe(ledger)
	a.risk = engine.ClassifyRisk(ledger)
	a.breakEven, a.hasBreakEven = engine.FindBreakEven(ledger)
	a.requiredUsers, a.hasRequired = engine.RequiredPremiumUsers(plan)

	a.recomputeSweep()

	// Clamp ledger cursor to the new horizon
	if a.ledgerState.cursor >= len(a.ledger) {
		a.ledgerState.cursor = len(a.ledger) - 1
	}
	if a.ledgerState.cursor < 0 {
		a.ledgerState.cursor = 0
	}
}

// recomputeSweep refreshes the sensitivity points for the selected
// parameter, sampling 50%..150% of its base value.
func (a *App) recomputeSweep() {
	a.sens.points = nil
	a.sens.note = ""

	params := model.SweepParameters()
	if a.sens.param >= len(params) {
		a.sens.param = 0
	}
	p := params[a.sens.param]

	base, err := p.BaseValue(a.plan)
	if err != nil {
		a.sens.note = err.Error()
		return
	}
	if base.IsZero() {
		a.sens.note = "base value is zero; use `proforma sweep --from --to` for an absolute range"
		return
	}

	half := decimal.NewFromFloat(0.5)
	oneAndHalf := decimal.NewFromFloat(1.5)
	values := engine.LinearRange(base.Mul(half), base.Mul(oneAndHalf), a.sweepSteps)

	points, err := engine.ParallelSweep(a.plan, p, values)
	if err != nil {
		a.sens.note = err.Error()
		return
	}
	a.sens.points = points
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 1 && a.ledgerState.cursor > 0 {
				a.ledgerState.cursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == 1 && a.ledgerState.cursor < len(a.ledger)-1 {
				a.ledgerState.cursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			// The tab bar occupies the first header line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Assumptions tab has its own keybindings (text input)
		if a.activeTab == 3 && a.editor.editing {
			return a.updateEditorInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Ledger tab keybindings
		if a.activeTab == 1 {
			switch key {
			case "j", "down":
				if a.ledgerState.cursor < len(a.ledger)-1 {
					a.ledgerState.cursor++
				}
				return a, nil
			case "k", "up":
				if a.ledgerState.cursor > 0 {
					a.ledgerState.cursor--
				}
				return a, nil
			case "g":
				a.ledgerState.cursor = 0
				a.ledgerState.offset = 0
				return a, nil
			case "G":
				a.ledgerState.cursor = len(a.ledger) - 1
				if a.ledgerState.cursor < 0 {
					a.ledgerState.cursor = 0
				}
				return a, nil
			case "ctrl+d":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.ledgerState.cursor += halfPage
				if a.ledgerState.cursor > len(a.ledger)-1 {
					a.ledgerState.cursor = len(a.ledger) - 1
				}
				if a.ledgerState.cursor < 0 {
					a.ledgerState.cursor = 0
				}
				return a, nil
			case "ctrl+u":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.ledgerState.cursor -= halfPage
				if a.ledgerState.cursor < 0 {
					a.ledgerState.cursor = 0
				}
				return a, nil
			}
		}

		// Sensitivity tab keybindings
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				if a.sens.param < len(model.SweepParameters())-1 {
					a.sens.param++
					a.recomputeSweep()
				}
				return a, nil
			case "k", "up":
				if a.sens.param > 0 {
					a.sens.param--
					a.recomputeSweep()
				}
				return a, nil
			case "m":
				a.sens.metric = (a.sens.metric + 1) % sweepMetricCount
				return a, nil
			}
		}

		// Assumptions tab navigation (non-editing mode)
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.editor.cursor < editorFieldCount-1 {
					a.editor.cursor++
				}
				return a, nil
			case "k", "up":
				if a.editor.cursor > 0 {
					a.editor.cursor--
				}
				return a, nil
			case "enter":
				return a.editorStartEdit()
			}
		}

		// Global quit
		if key == "q" {
			return a, tea.Quit
		}

		// Reload plan file from disk (picks up external edits)
		if key == "r" {
			f, err := config.LoadAssumptions(a.filePath)
			if err != nil {
				a.fileErr = err
				return a, nil
			}
			a.file = f
			a.recompute()
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = 0
		case "l":
			a.activeTab = 1
		case "s":
			a.activeTab = 2
		case "a":
			a.activeTab = 3
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetup()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  proforma needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o l s a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate months, parameters, fields"},
		{"g G", "First / Last month"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Edit selected assumption"},
		{"Esc", "Cancel edit"},
		{"m", "Cycle sweep metric"},
		{"r", "Reload plan file"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + plan pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pillStr := pillStyle.Render(" ") +
		pillAccentStyle.Render(fmt.Sprintf("%dmo", a.file.HorizonMonths)) +
		pillStyle.Render(" │ ") +
		pillAccentStyle.Render("growth "+cli.FormatPercent(a.plan.MonthlyGrowthRate))
	if a.fileErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		pillStr += pillStyle.Render(" │ ") + errStyle.Render(truncStr("plan error: "+a.fileErr.Error(), cw-30))
	}
	pillStr += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab) + "\n" +
		pillRowStyle.Render(pillStr)

	// 2. Render status bar
	statusBar := components.RenderStatusBar(w, filepath.Base(a.filePath), string(a.risk), a.riskColor())

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content (pass contentH to the ledger for scrolling)
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderLedgerTab(cw, contentH)
	case 2:
		content = a.renderSensitivityTab(cw)
	case 3:
		content = a.renderAssumptionsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Fill the whole terminal so height mismatches never leak through
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func (a App) riskColor() lipgloss.Color {
	t := theme.Active
	switch a.risk {
	case model.RiskHigh:
		return t.Red
	case model.RiskMedium:
		return t.Orange
	default:
		return t.Green
	}
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// monthLabels returns X-axis labels "1".."N" for a ledger chart.
func monthLabels(l model.Ledger) []string {
	labels := make([]string, len(l))
	for i, m := range l {
		labels[i] = fmt.Sprintf("%d", m.Month)
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color,
// so gaps between cards and empty lines keep the theme background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
