package commands

import (
	"fmt"
	"os"

	"tastycorner/internal/config"
	"tastycorner/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURI   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tastyctl",
	Short: "TastyCorner database tools",
	Long: `tastyctl works on the TastyCorner database directly, outside the web server.

Commands:
  init-db   - Create missing tables and optionally the starter menu
  view      - Show employees with their weekly schedules
  import    - Load CSV exports and a legacy employees database
  schedule  - Show or change employee schedules`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURI, "db", "", "Database URI (defaults to DATABASE_URI)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every SQL statement")
}

func openDB() (*gorm.DB, error) {
	uri := dbURI
	if uri == "" {
		uri = config.DatabaseURI()
	}
	level := "warn"
	if verbose {
		level = "info"
	}
	return database.Initialize(uri, level)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
