package commands

import (
	"fmt"
	"os"

	"tastycorner/cmd/tastyctl/output"
	"tastycorner/internal/models"
	"tastycorner/internal/report"
	"tastycorner/internal/repository"

	"github.com/spf13/cobra"
)

var (
	showStructure bool
	exportPath    string
	xlsxPath      string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show employees and their schedules",
	Long: `Show every employee with a formatted weekly schedule.

Examples:
  tastyctl view                          # Print to the terminal
  tastyctl view --structure              # Show the employees table columns
  tastyctl view --export employees.txt   # Write the listing to a text file
  tastyctl view --xlsx employees.xlsx    # Write a spreadsheet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView()
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().BoolVar(&showStructure, "structure", false, "Show the employees table structure")
	viewCmd.Flags().StringVar(&exportPath, "export", "", "Write the listing to a text file")
	viewCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the listing to a spreadsheet")
}

func runView() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if showStructure {
		output.Section("DATABASE TABLE STRUCTURE")
		return report.WriteStructure(os.Stdout, db, models.Employee{}.TableName())
	}

	employees, err := repository.NewEmployeeRepository(db).GetAll()
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}

	switch {
	case exportPath != "":
		f, err := os.Create(exportPath)
		if err != nil {
			return err
		}
		if err := report.WriteEmployees(f, employees); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		output.Success("Employees exported to %s", exportPath)
	case xlsxPath != "":
		if err := report.SaveEmployeesWorkbook(xlsxPath, employees); err != nil {
			return err
		}
		output.Success("Employees exported to %s", xlsxPath)
	default:
		if len(employees) == 0 {
			output.Warning("No employees found in database.")
			return nil
		}
		for _, e := range employees {
			printEmployee(e)
		}
		fmt.Println()
		output.Muted("Total employees: %d", len(employees))
	}
	return nil
}

func printEmployee(e models.Employee) {
	output.Section(fmt.Sprintf("%s  %s", e.EmployeeID, e.FullName()))
	output.Muted("%s · %s · %s", e.Email, valueOr(e.JobTitle, "no title"), e.Status)
	for _, line := range report.ScheduleLines(e.WeeklySchedule()) {
		fmt.Println("  " + output.ScheduleLine(line))
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
