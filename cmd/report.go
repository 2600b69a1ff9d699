package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/export"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the narrative Markdown report",
	RunE:  runReport,
}

var reportOut string

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	a, _, err := loadPlan()
	if err != nil {
		return err
	}

	ledger := engine.Project(a)

	var w io.Writer = os.Stdout
	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := export.WriteMarkdown(w, export.BuildDocument(a, ledger)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if reportOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote report to %s\n", reportOut)
	}

	return nil
}
