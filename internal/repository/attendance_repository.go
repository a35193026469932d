package repository

import (
	"time"

	"tastycorner/internal/models"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(attendance *models.Attendance) error
	GetByEmployeeAndDate(employeeID, date string) (*models.Attendance, error)
	GetByEmployee(employeeID string, limit int) ([]models.Attendance, error)
	// CheckOut closes an open row and credits the hours to the employee's
	// current pay period in one transaction.
	CheckOut(id uint, employeeID string, checkOut time.Time, hours float64) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create fails with gorm.ErrDuplicatedKey when the employee already has a row for that date.
func (r *attendanceRepository) Create(attendance *models.Attendance) error {
	return r.db.Create(attendance).Error
}

func (r *attendanceRepository) GetByEmployeeAndDate(employeeID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) GetByEmployee(employeeID string, limit int) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.Where("employee_id = ?", employeeID).Order("date DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *attendanceRepository) CheckOut(id uint, employeeID string, checkOut time.Time, hours float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Attendance{}).
			Where("id = ? AND check_out_time IS NULL", id).
			Updates(map[string]interface{}{
				"check_out_time": checkOut,
				"hours_worked":   hours,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Employee{}).
			Where("employee_id = ?", employeeID).
			Update("hours_this_period", gorm.Expr("hours_this_period + ?", hours)).Error
	})
}
