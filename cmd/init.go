package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openmatchlabs/proforma/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter plan file interactively",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	path := planPath()

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("\n  Plan file %s already exists. Overwrite? (y/N)\n", path)
		fmt.Print("  > ")
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("  Keeping the existing file.")
			return nil
		}
	}

	file := config.DefaultAssumptions()

	fmt.Println()
	fmt.Println("  Welcome to proforma!")
	fmt.Println()
	fmt.Println("  A few questions set up the projection. Press Enter to keep a")
	fmt.Println("  default; the team and fixed costs start from editable defaults")
	fmt.Println("  in the plan file.")
	fmt.Println()

	fmt.Printf("  1. Premium tier price per month (default %.2f)\n", file.Pricing.PremiumPrice)
	file.Pricing.PremiumPrice = askFloat(reader, file.Pricing.PremiumPrice)
	fmt.Println()

	fmt.Printf("  2. Basic tier price per month (default %.2f)\n", file.Pricing.BasicPrice)
	file.Pricing.BasicPrice = askFloat(reader, file.Pricing.BasicPrice)
	fmt.Println()

	fmt.Printf("  3. Premium users at launch (default %d)\n", file.InitialUsers.Premium)
	file.InitialUsers.Premium = askInt(reader, file.InitialUsers.Premium)
	fmt.Println()

	fmt.Printf("  4. Basic users at launch (default %d)\n", file.InitialUsers.Basic)
	file.InitialUsers.Basic = askInt(reader, file.InitialUsers.Basic)
	fmt.Println()

	fmt.Printf("  5. Monthly user growth as a fraction, 0.10 = 10%% (default %.2f)\n", file.MonthlyGrowthRate)
	file.MonthlyGrowthRate = askFloat(reader, file.MonthlyGrowthRate)
	fmt.Println()

	fmt.Printf("  6. Projection horizon in months (default %d)\n", file.HorizonMonths)
	file.HorizonMonths = int(askInt(reader, int64(file.HorizonMonths)))
	fmt.Println()

	// Reject a broken plan before it reaches disk
	if _, err := file.ToAssumptions(); err != nil {
		return err
	}

	if err := config.SaveAssumptions(path, file); err != nil {
		return err
	}

	fmt.Printf("  Saved plan to %s\n", path)
	fmt.Println("  Edit it anytime; payroll and fixed costs live there too.")
	fmt.Println()
	fmt.Println("  Next steps:")
	fmt.Println("    proforma            headline metrics")
	fmt.Println("    proforma ledger     month-by-month table")
	fmt.Println("    proforma tui        interactive dashboard")
	fmt.Println()

	return nil
}

func askFloat(reader *bufio.Reader, def float64) float64 {
	fmt.Print("     > ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Printf("     Not a number, keeping %v\n", def)
		return def
	}
	return v
}

func askInt(reader *bufio.Reader, def int64) int64 {
	fmt.Print("     > ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		fmt.Printf("     Not a whole number, keeping %d\n", def)
		return def
	}
	return v
}
