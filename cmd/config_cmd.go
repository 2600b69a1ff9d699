// Package cmd implements the proforma CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Plan file:    %s\n", config.AssumptionsPath(cfg))
	if env := os.Getenv("PROFORMA_ASSUMPTIONS"); env != "" {
		fmt.Printf("                  (from PROFORMA_ASSUMPTIONS)\n")
	}
	fmt.Printf("    Sweep steps:  %d\n", cfg.General.SweepSteps)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:      %s\n", cfg.Appearance.Theme)
	fmt.Printf("    EU numbers: %v\n", cfg.Appearance.EUNumbers)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Listen address: %s\n", cfg.Server.ListenAddr)
	fmt.Println()

	fmt.Println("  [Scenarios]")
	fmt.Printf("    Database: %s\n", flagDB)
	if st, err := store.Open(flagDB); err == nil {
		if n, err := st.Count(); err == nil {
			fmt.Printf("    Saved:    %d\n", n)
		}
		_ = st.Close()
	}
	fmt.Println()

	fmt.Println("  Run `proforma init` to create a plan file.")
	return nil
}
