package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/engine"
	"github.com/openmatchlabs/proforma/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the projection as CSV or JSON",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
	exportEU     bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "F", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportEU, "eu", false, "European number format for CSV (1.234,56; semicolon-separated)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	a, _, err := loadPlan()
	if err != nil {
		return err
	}

	ledger := engine.Project(a)

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch exportFormat {
	case "csv":
		if err := export.WriteLedgerCSV(w, ledger, exportEU); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	case "json":
		if exportEU {
			return fmt.Errorf("--eu only applies to csv")
		}
		if err := export.WriteJSON(w, export.BuildDocument(a, ledger)); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (csv or json)", exportFormat)
	}

	if exportOut != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d months to %s\n", len(ledger), exportOut)
	}

	return nil
}
