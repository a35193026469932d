package models

import "time"

// Attendance is one row per employee per calendar day.
type Attendance struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	EmployeeID   string     `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date         string     `json:"date" gorm:"not null;uniqueIndex:idx_attendance_employee_date"` // YYYY-MM-DD
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	HoursWorked  float64    `json:"hours_worked" gorm:"default:0"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (Attendance) TableName() string { return "attendance" }

const DateLayout = "2006-01-02"

func (a *Attendance) CheckedIn() bool  { return a != nil && a.CheckInTime != nil }
func (a *Attendance) CheckedOut() bool { return a != nil && a.CheckOutTime != nil }
