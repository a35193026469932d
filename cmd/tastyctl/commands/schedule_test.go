package commands

import (
	"path/filepath"
	"testing"

	"tastycorner/internal/database"
	"tastycorner/internal/models"
	"tastycorner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestRepo(t *testing.T) repository.EmployeeRepository {
	t.Helper()
	db, err := database.Initialize("sqlite:///"+filepath.Join(t.TempDir(), "test.db"), "silent")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	repo := repository.NewEmployeeRepository(db)
	require.NoError(t, repo.Create(&models.Employee{
		EmployeeID: "209228", FirstName: "Sam", LastName: "Lee",
		Email: "sam@example.com", Status: models.EmployeeActive,
	}))
	return repo
}

func TestSetScheduleDay(t *testing.T) {
	repo := getTestRepo(t)

	s, err := setScheduleDay(repo, "209228", "Monday", true, "10:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, models.DaySchedule{Enabled: true, Start: "10:00", End: "18:00"}, s["monday"])

	_, err = setScheduleDay(repo, "209228", "friday", false, "", "")
	require.NoError(t, err)

	e, err := repo.GetByEmployeeID("209228")
	require.NoError(t, err)
	week := e.WeeklySchedule()
	assert.Equal(t, "10:00", week["monday"].Start)
	assert.False(t, week["friday"].Enabled)
	assert.True(t, week["tuesday"].Enabled)
}

func TestSetScheduleDayRejectsBadInput(t *testing.T) {
	repo := getTestRepo(t)

	_, err := setScheduleDay(repo, "209228", "funday", true, "", "")
	assert.Error(t, err)

	_, err = setScheduleDay(repo, "209228", "monday", true, "18:00", "10:00")
	assert.Error(t, err)

	_, err = setScheduleDay(repo, "nobody", "monday", true, "", "")
	assert.EqualError(t, err, "employee nobody not found")
}

func TestResetSchedule(t *testing.T) {
	repo := getTestRepo(t)
	_, err := setScheduleDay(repo, "209228", "sunday", true, "08:00", "12:00")
	require.NoError(t, err)

	require.NoError(t, saveSchedule(repo, "209228", models.DefaultSchedule()))
	e, err := repo.GetByEmployeeID("209228")
	require.NoError(t, err)
	assert.False(t, e.WeeklySchedule()["sunday"].Enabled)

	assert.Error(t, saveSchedule(repo, "nobody", models.DefaultSchedule()))
}
