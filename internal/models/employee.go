package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Employee struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	EmployeeID      string         `json:"employee_id" gorm:"unique;not null"`
	FirstName       string         `json:"first_name" gorm:"not null"`
	LastName        string         `json:"last_name" gorm:"not null"`
	Email           string         `json:"email" gorm:"unique;not null"`
	Gender          string         `json:"gender"`
	DOB             string         `json:"dob" gorm:"column:dob"`
	Mobile          string         `json:"mobile"`
	Address         string         `json:"address"`
	JobTitle        string         `json:"job_title"`
	Notes           string         `json:"notes"`
	Status          string         `json:"status" gorm:"default:'active'"` // active, inactive
	Schedule        datatypes.JSON `json:"schedule"`
	HoursThisPeriod float64        `json:"hours_this_period" gorm:"default:0"`
	LastPaidDate    *string        `json:"last_paid_date"`
	ProfilePicture  string         `json:"profile_picture"`
	HourlyRate      *float64       `json:"hourly_rate"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (Employee) TableName() string { return "employees" }

const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) IsActive() bool {
	return e.Status == EmployeeActive
}

// IsDriver matches any job title containing "driver", including compound titles.
func (e *Employee) IsDriver() bool {
	return strings.Contains(strings.ToLower(e.JobTitle), "driver")
}

// WeeklySchedule decodes the stored schedule, falling back to the default
// week when the column is empty or unreadable.
func (e *Employee) WeeklySchedule() Schedule {
	s, err := ParseSchedule(e.Schedule)
	if err != nil || len(s) == 0 {
		return DefaultSchedule()
	}
	return s
}
