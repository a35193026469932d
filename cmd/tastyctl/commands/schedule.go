package commands

import (
	"errors"
	"fmt"

	"tastycorner/cmd/tastyctl/output"
	"tastycorner/cmd/tastyctl/tui"
	"tastycorner/internal/models"
	"tastycorner/internal/report"
	"tastycorner/internal/repository"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	scheduleDay   string
	scheduleStart string
	scheduleEnd   string
	scheduleOff   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show or change employee schedules",
	Long: `Show or change the weekly schedule of employees.

Subcommands:
  show   - Print schedules
  set    - Change one day
  reset  - Restore the default Monday to Friday 09:00-17:00 week
  edit   - Interactive editor`,
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show [EMPLOYEE_ID]",
	Short: "Print schedules",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmployees(func(repo repository.EmployeeRepository) error {
			return showSchedules(repo, args)
		})
	},
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set EMPLOYEE_ID",
	Short: "Change one day of a schedule",
	Long: `Change one day of an employee's schedule.

Examples:
  tastyctl schedule set 209228 --day monday --start 10:00 --end 18:00
  tastyctl schedule set 209228 --day sunday --off`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scheduleDay == "" {
			return fmt.Errorf("--day is required")
		}
		return withEmployees(func(repo repository.EmployeeRepository) error {
			s, err := setScheduleDay(repo, args[0], scheduleDay, !scheduleOff, scheduleStart, scheduleEnd)
			if err != nil {
				return err
			}
			output.Success("Schedule updated for employee %s", args[0])
			printSchedule(s)
			return nil
		})
	},
}

var scheduleResetCmd = &cobra.Command{
	Use:   "reset EMPLOYEE_ID",
	Short: "Restore the default week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmployees(func(repo repository.EmployeeRepository) error {
			if err := saveSchedule(repo, args[0], models.DefaultSchedule()); err != nil {
				return err
			}
			output.Success("Schedule reset for employee %s", args[0])
			return nil
		})
	},
}

var scheduleEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit schedules interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmployees(tui.RunScheduleUI)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleShowCmd, scheduleSetCmd, scheduleResetCmd, scheduleEditCmd)

	scheduleSetCmd.Flags().StringVar(&scheduleDay, "day", "", "Day to change (monday..sunday)")
	scheduleSetCmd.Flags().StringVar(&scheduleStart, "start", "", "Start time HH:MM")
	scheduleSetCmd.Flags().StringVar(&scheduleEnd, "end", "", "End time HH:MM")
	scheduleSetCmd.Flags().BoolVar(&scheduleOff, "off", false, "Mark the day as off")
	scheduleSetCmd.MarkFlagsMutuallyExclusive("off", "start")
	scheduleSetCmd.MarkFlagsMutuallyExclusive("off", "end")
}

func withEmployees(fn func(repository.EmployeeRepository) error) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)
	return fn(repository.NewEmployeeRepository(db))
}

func showSchedules(repo repository.EmployeeRepository, args []string) error {
	var employees []models.Employee
	if len(args) == 1 {
		e, err := findEmployee(repo, args[0])
		if err != nil {
			return err
		}
		employees = []models.Employee{*e}
	} else {
		all, err := repo.GetAll()
		if err != nil {
			return err
		}
		employees = all
	}

	if len(employees) == 0 {
		output.Warning("No employees found in database.")
		return nil
	}
	for _, e := range employees {
		output.Section(fmt.Sprintf("%s  %s", e.EmployeeID, e.FullName()))
		if len(e.Schedule) == 0 {
			output.Muted("Not assigned, default week applies")
		}
		printSchedule(e.WeeklySchedule())
	}
	return nil
}

// setScheduleDay changes one day of an employee's week and stores the result.
func setScheduleDay(repo repository.EmployeeRepository, employeeID, day string, enabled bool, start, end string) (models.Schedule, error) {
	e, err := findEmployee(repo, employeeID)
	if err != nil {
		return nil, err
	}
	s := e.WeeklySchedule()
	if err := s.Set(day, enabled, start, end); err != nil {
		return nil, err
	}
	if err := saveSchedule(repo, employeeID, s); err != nil {
		return nil, err
	}
	return s, nil
}

func saveSchedule(repo repository.EmployeeRepository, employeeID string, s models.Schedule) error {
	err := repo.UpdateSchedule(employeeID, s.JSON())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("employee %s not found", employeeID)
	}
	return err
}

func findEmployee(repo repository.EmployeeRepository, employeeID string) (*models.Employee, error) {
	e, err := repo.GetByEmployeeID(employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("employee %s not found", employeeID)
	}
	return e, err
}

func printSchedule(s models.Schedule) {
	for _, line := range report.ScheduleLines(s) {
		fmt.Println("  " + output.ScheduleLine(line))
	}
	output.Muted("  Weekly hours: %.1f", s.WeeklyHours())
}
