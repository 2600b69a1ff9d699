package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/config"
	"github.com/openmatchlabs/proforma/internal/model"
	"github.com/openmatchlabs/proforma/internal/store"
)

// version is stamped by release builds via -ldflags.
var version = "dev"

var (
	flagFile     string
	flagScenario string
	flagDB       string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:     "proforma",
	Short:   "Subscription business projection CLI",
	Long:    "Project monthly users, revenue, costs, and cash for a two-tier subscription business from a TOML plan file.",
	Version: version,
	RunE:    runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Plan file (default from config, else proforma.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Load the plan from a saved scenario instead of a file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", store.DefaultPath(), "Scenario database path")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress notes on stderr")
}

// planPath resolves the plan file path: --file wins, then the
// PROFORMA_ASSUMPTIONS env var, then the config default.
func planPath() string {
	if flagFile != "" {
		return flagFile
	}
	cfg, _ := config.Load()
	return config.AssumptionsPath(cfg)
}

// loadPlan is the shared plan loading path used by all commands. It reads a
// saved scenario when --scenario is given and the plan file otherwise,
// returning validated assumptions plus a short source label for titles.
func loadPlan() (model.Assumptions, string, error) {
	if flagScenario != "" {
		st, err := store.Open(flagDB)
		if err != nil {
			return model.Assumptions{}, "", err
		}
		defer func() { _ = st.Close() }()

		sc, err := st.Get(flagScenario)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return model.Assumptions{}, "", fmt.Errorf("no scenario named %q, see `proforma scenario list`", flagScenario)
			}
			return model.Assumptions{}, "", err
		}
		if err := sc.Assumptions.Validate(); err != nil {
			return model.Assumptions{}, "", fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		return sc.Assumptions, "scenario " + sc.Name, nil
	}

	path := planPath()
	file, err := config.LoadAssumptions(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Assumptions{}, "", fmt.Errorf("no plan file at %s; run `proforma init` to create one", path)
		}
		return model.Assumptions{}, "", err
	}

	a, err := file.ToAssumptions()
	if err != nil {
		return model.Assumptions{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return a, filepath.Base(path), nil
}
