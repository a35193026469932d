package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tastycorner/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	rule          = "===================================================================================================="
	employeeSheet = "Employees"
	scheduleSheet = "Schedules"
)

// DayLabel turns a stored weekday key into its display form.
func DayLabel(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}

// ScheduleLines renders one line per weekday, "OFF" for disabled days.
func ScheduleLines(s models.Schedule) []string {
	lines := make([]string, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		d, ok := s[day]
		if ok && d.Enabled {
			lines = append(lines, fmt.Sprintf("%-12s: %s - %s", DayLabel(day), d.Start, d.End))
		} else {
			lines = append(lines, fmt.Sprintf("%-12s: OFF", DayLabel(day)))
		}
	}
	return lines
}

// WriteEmployees writes every employee with its formatted schedule.
func WriteEmployees(w io.Writer, employees []models.Employee) error {
	var b strings.Builder
	b.WriteString(rule + "\nEMPLOYEES\n" + rule + "\n")

	if len(employees) == 0 {
		b.WriteString("\nNo employees found in database.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, e := range employees {
		fmt.Fprintf(&b, "\nEMPLOYEE #%d\n", i+1)
		b.WriteString(strings.Repeat("-", len(rule)) + "\n")

		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Employee ID:\t%s\n", e.EmployeeID)
		fmt.Fprintf(tw, "Name:\t%s\n", e.FullName())
		fmt.Fprintf(tw, "Email:\t%s\n", e.Email)
		fmt.Fprintf(tw, "Job title:\t%s\n", e.JobTitle)
		fmt.Fprintf(tw, "Mobile:\t%s\n", e.Mobile)
		fmt.Fprintf(tw, "Status:\t%s\n", e.Status)
		fmt.Fprintf(tw, "Hourly rate:\t%s\n", formatRate(e.HourlyRate))
		fmt.Fprintf(tw, "Hours this period:\t%.2f\n", e.HoursThisPeriod)
		fmt.Fprintf(tw, "Last paid:\t%s\n", valueOr(e.LastPaidDate, "never"))
		if err := tw.Flush(); err != nil {
			return err
		}

		if len(e.Schedule) == 0 {
			b.WriteString("\nSchedule: Not assigned (default week applies)\n")
		} else if s, err := models.ParseSchedule(e.Schedule); err != nil {
			fmt.Fprintf(&b, "\nSchedule (Raw): %s\n", string(e.Schedule))
		} else {
			pretty, _ := json.MarshalIndent(s, "  ", "  ")
			fmt.Fprintf(&b, "\nSchedule (JSON):\n  %s\n", pretty)
		}

		b.WriteString("\nSchedule (Formatted):\n")
		for _, line := range ScheduleLines(e.WeeklySchedule()) {
			b.WriteString("  " + line + "\n")
		}
		fmt.Fprintf(&b, "  Weekly hours: %.1f\n", e.WeeklySchedule().WeeklyHours())
	}

	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "Total employees: %d\n", len(employees))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteStructure prints the columns of table as the database reports them.
func WriteStructure(w io.Writer, db *gorm.DB, table string) error {
	columns, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Table: %s\n", table)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tNULLABLE\tDEFAULT\tPK")
	for _, col := range columns {
		nullable, _ := col.Nullable()
		pk, _ := col.PrimaryKey()
		def, ok := col.DefaultValue()
		if !ok {
			def = ""
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%t\n", col.Name(), col.DatabaseTypeName(), nullable, def, pk)
	}
	return tw.Flush()
}

var employeeHeader = []interface{}{
	"Employee ID", "First Name", "Last Name", "Email", "Job Title", "Mobile",
	"Status", "Hourly Rate", "Hours This Period", "Last Paid", "Weekly Hours",
}

// EmployeesWorkbook builds a workbook with one sheet of employee details and
// one sheet with each employee's week.
func EmployeesWorkbook(employees []models.Employee) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", employeeSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(scheduleSheet); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(employeeSheet, "A1", &employeeHeader); err != nil {
		f.Close()
		return nil, err
	}
	scheduleHeader := []interface{}{"Employee ID", "Name"}
	for _, day := range models.Weekdays {
		scheduleHeader = append(scheduleHeader, DayLabel(day))
	}
	if err := f.SetSheetRow(scheduleSheet, "A1", &scheduleHeader); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetRowStyle(employeeSheet, 1, 1, header)
	_ = f.SetRowStyle(scheduleSheet, 1, 1, header)

	for i, e := range employees {
		row := i + 2
		week := e.WeeklySchedule()

		var rate interface{} = ""
		if e.HourlyRate != nil {
			rate = *e.HourlyRate
		}
		details := []interface{}{
			e.EmployeeID, e.FirstName, e.LastName, e.Email, e.JobTitle, e.Mobile,
			e.Status, rate, e.HoursThisPeriod, valueOr(e.LastPaidDate, ""), week.WeeklyHours(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(employeeSheet, cell, &details); err != nil {
			f.Close()
			return nil, err
		}

		days := []interface{}{e.EmployeeID, e.FullName()}
		for _, day := range models.Weekdays {
			d := week[day]
			if d.Enabled {
				days = append(days, d.Start+" - "+d.End)
			} else {
				days = append(days, "OFF")
			}
		}
		if err := f.SetSheetRow(scheduleSheet, cell, &days); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// SaveEmployeesWorkbook writes the employee workbook to path.
func SaveEmployeesWorkbook(path string, employees []models.Employee) error {
	f, err := EmployeesWorkbook(employees)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *rate)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
