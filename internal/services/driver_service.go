package services

import (
	"tastycorner/internal/models"
	"tastycorner/internal/repository"
)

type DriverService interface {
	Login(employeeID string) (*models.Employee, error)
	PendingDeliveries() ([]repository.Delivery, error)
	MarkDelivered(orderID uint) error
}

type driverService struct {
	employeeRepo repository.EmployeeRepository
	orderRepo    repository.OrderRepository
}

func NewDriverService(employeeRepo repository.EmployeeRepository, orderRepo repository.OrderRepository) DriverService {
	return &driverService{employeeRepo: employeeRepo, orderRepo: orderRepo}
}

// Login accepts any employee whose job title mentions driver; status is not checked.
func (s *driverService) Login(employeeID string) (*models.Employee, error) {
	employee, err := findEmployee(s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsDriver() {
		return nil, ErrNotADriver
	}
	return employee, nil
}

func (s *driverService) PendingDeliveries() ([]repository.Delivery, error) {
	return s.orderRepo.GetDeliveries(models.OrderOutForDelivery)
}

func (s *driverService) MarkDelivered(orderID uint) error {
	from := models.OrderOutForDelivery
	return transitionOrder(s.orderRepo, orderID, &from, models.OrderCompleted)
}
