package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"tastycorner/internal/database"
	"tastycorner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleEmployees() []models.Employee {
	rate := 18.5
	week := models.DefaultSchedule()
	_ = week.Set("saturday", true, "10:00", "14:00")
	return []models.Employee{
		{EmployeeID: "000001", FirstName: "Sam", LastName: "Lee", Email: "sam@example.com", JobTitle: "Driver", Status: "active", HourlyRate: &rate, Schedule: week.JSON()},
		{EmployeeID: "000002", FirstName: "Kim", LastName: "Park", Email: "kim@example.com", JobTitle: "Cook", Status: "active"},
	}
}

func TestScheduleLines(t *testing.T) {
	lines := ScheduleLines(models.DefaultSchedule())
	require.Len(t, lines, 7)
	assert.Equal(t, "Monday      : 09:00 - 17:00", lines[0])
	assert.Equal(t, "Sunday      : OFF", lines[6])
}

func TestWriteEmployees(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployees(&buf, sampleEmployees()))

	out := buf.String()
	assert.Contains(t, out, "EMPLOYEE #1")
	assert.Contains(t, out, "Sam Lee")
	assert.Contains(t, out, "$18.50")
	assert.Contains(t, out, "Saturday    : 10:00 - 14:00")
	assert.Contains(t, out, "Schedule: Not assigned")
	assert.Contains(t, out, "Weekly hours: 44.0")
	assert.Contains(t, out, "Total employees: 2")
}

func TestWriteEmployeesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployees(&buf, nil))
	assert.Contains(t, buf.String(), "No employees found")
}

func TestWriteStructure(t *testing.T) {
	db, err := database.Initialize("sqlite:///"+filepath.Join(t.TempDir(), "test.db"), "silent")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	var buf bytes.Buffer
	require.NoError(t, WriteStructure(&buf, db, "employees"))
	assert.Contains(t, buf.String(), "Table: employees")
	assert.Contains(t, buf.String(), "employee_id")
	assert.Contains(t, buf.String(), "hourly_rate")
}

func TestSaveEmployeesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	require.NoError(t, SaveEmployeesWorkbook(path, sampleEmployees()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(employeeSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "000001", rows[1][0])
	assert.Equal(t, "Driver", rows[1][4])

	days, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "Monday", days[0][2])
	assert.Equal(t, "10:00 - 14:00", days[1][7])
	assert.Equal(t, "OFF", days[2][8])
}
