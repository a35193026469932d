package commands

import (
	"tastycorner/cmd/tastyctl/output"
	"tastycorner/internal/migrations"

	"github.com/spf13/cobra"
)

var seed bool

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create missing tables",
	Long: `Create any missing tables, columns and indexes. Existing data is kept,
so the command is safe to run repeatedly.

Examples:
  tastyctl init-db                     # Schema only
  tastyctl init-db --seed              # Schema plus the starter menu when the menu is empty`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitDB()
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
	initDBCmd.Flags().BoolVar(&seed, "seed", false, "Insert the starter menu into an empty menu")
}

func runInitDB() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := migrations.RunMigrations(db); err != nil {
		return err
	}
	if seed {
		if err := migrations.SeedDefaults(db); err != nil {
			return err
		}
	}

	output.Success("Database ready (%s)", db.Dialector.Name())
	return nil
}
