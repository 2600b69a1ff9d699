package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/cli"
	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/model"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sensitivity sweep over one assumption",
	Long: "Rerun the projection across a range of values for one assumption and " +
		"compare the final month of each run. Without --from/--to the range is " +
		"50% to 150% of the plan value.",
	RunE: runSweep,
}

var (
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func init() {
	sweepCmd.Flags().StringVarP(&sweepParam, "param", "P", "premium-price",
		fmt.Sprintf("Swept assumption (%s)", paramNames()))
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "Range start (with --to)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "Range end (with --from)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 0, "Sample count (default from config)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	a, source, err := loadPlan()
	if err != nil {
		return err
	}

	param, err := model.ParseSweepParameter(sweepParam)
	if err != nil {
		return fmt.Errorf("%w (choose from %s)", err, paramNames())
	}

	steps := sweepSteps
	if steps <= 0 {
		cfg, _ := config.Load()
		steps = cfg.General.SweepSteps
	}
	if steps < 2 {
		steps = 9
	}

	values, err := sweepRange(cmd, param, a, steps)
	if err != nil {
		return err
	}

	points, err := engine.ParallelSweep(a, param, values)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SWEEP  %s  %s", param.Label(), source)))
	fmt.Println()

	base, _ := param.BaseValue(a)

	maxAbsCash := 0.0
	for _, p := range points {
		if c := abs(p.FinalCumulativeCash.InexactFloat64()); c > maxAbsCash {
			maxAbsCash = c
		}
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		value := p.Value.StringFixed(2)
		if p.Value.Equal(base) {
			value += " *"
		}
		rows = append(rows, []string{
			value,
			cli.FormatMoney(p.FinalNetProfit),
			cli.FormatMoney(p.FinalCumulativeCash),
			cashBar(p.FinalCumulativeCash, maxAbsCash),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{param.Label(), "Final Net/mo", "Final Cash", ""},
		Rows:    rows,
	}))

	fmt.Println("  * plan value")
	fmt.Println()

	return nil
}

// sweepRange resolves the sample values: an explicit --from/--to range when
// given, otherwise 50%..150% of the plan's own value.
func sweepRange(cmd *cobra.Command, param model.SweepParameter, a model.Assumptions, steps int) ([]decimal.Decimal, error) {
	fromSet := cmd.Flags().Changed("from")
	toSet := cmd.Flags().Changed("to")

	if fromSet != toSet {
		return nil, fmt.Errorf("--from and --to must be given together")
	}
	if fromSet {
		return engine.LinearRange(decimal.NewFromFloat(sweepFrom), decimal.NewFromFloat(sweepTo), steps), nil
	}

	base, err := param.BaseValue(a)
	if err != nil {
		return nil, err
	}
	if base.IsZero() {
		return nil, fmt.Errorf("%s is zero in the plan; give an absolute range with --from and --to", param.Label())
	}
	lo := base.Mul(decimal.NewFromFloat(0.5))
	hi := base.Mul(decimal.NewFromFloat(1.5))
	return engine.LinearRange(lo, hi, steps), nil
}

func cashBar(cash decimal.Decimal, maxAbs float64) string {
	bar := cli.RenderHorizontalBar(cash.InexactFloat64(), maxAbs, 24)
	if bar == "" {
		return bar
	}
	color := cli.ColorGreen
	if cash.IsNegative() {
		color = cli.ColorRed
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

func paramNames() string {
	names := ""
	for i, p := range model.SweepParameters() {
		if i > 0 {
			names += ", "
		}
		names += string(p)
	}
	return names
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
