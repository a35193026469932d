package commands

import (
	"fmt"

	"tastycorner/cmd/tastyctl/output"
	"tastycorner/internal/importer"
	"tastycorner/internal/migrations"

	"github.com/spf13/cobra"
)

var (
	dataDir  string
	legacyDB string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV data and legacy employees",
	Long: `Import users, menu items, coupons and orders from CSV files, and employees with
their attendance from a legacy sqlite database. Rows whose key already exists are skipped,
so an import can be re-run safely.

Files read from --data-dir: users.csv, menu.csv, coupons.csv, orders.csv.
The items column of orders.csv holds a JSON array of order lines.

Examples:
  tastyctl import --data-dir data
  tastyctl import --data-dir data --legacy-db data/employees.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the CSV files")
	importCmd.Flags().StringVar(&legacyDB, "legacy-db", "", "Legacy sqlite employees database")
}

func runImport() error {
	if dataDir == "" && legacyDB == "" {
		return fmt.Errorf("--data-dir or --legacy-db is required")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := migrations.RunMigrations(db); err != nil {
		return err
	}

	im := importer.New(db)

	if dataDir != "" {
		output.Info("Importing CSV files from %s", dataDir)
		result, err := im.ImportDir(dataDir)
		if result != nil {
			output.Muted("users %d · menu items %d · coupons %d · orders %d (%d lines)",
				result.Users, result.MenuItems, result.Coupons, result.Orders, result.OrderItems)
		}
		if err != nil {
			return err
		}
	}

	if legacyDB != "" {
		output.Info("Importing employees from %s", legacyDB)
		result, err := im.ImportLegacy(legacyDB)
		if result != nil {
			output.Muted("employees %d · attendance %d", result.Employees, result.Attendance)
		}
		if err != nil {
			return err
		}
	}

	output.Success("Import complete")
	return nil
}
