package repository

import (
	"tastycorner/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByEmployeeID(employeeID string) (*models.Employee, error)
	GetAll() ([]models.Employee, error)
	UpdateSchedule(employeeID string, schedule datatypes.JSON) error
	MarkPaid(employeeID, paidDate string) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepository) GetByEmployeeID(employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Order("created_at DESC").Order("id DESC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) UpdateSchedule(employeeID string, schedule datatypes.JSON) error {
	res := r.db.Model(&models.Employee{}).Where("employee_id = ?", employeeID).Update("schedule", schedule)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkPaid closes the current pay period: hours reset and the paid date recorded.
func (r *employeeRepository) MarkPaid(employeeID, paidDate string) error {
	res := r.db.Model(&models.Employee{}).Where("employee_id = ?", employeeID).Updates(map[string]interface{}{
		"hours_this_period": 0,
		"last_paid_date":    paidDate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
