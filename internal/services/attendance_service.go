package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tastycorner/internal/models"
	"tastycorner/internal/repository"
)

const recentAttendanceLimit = 14

type WorkerStatus struct {
	Employee *models.Employee
	Today    *models.Attendance
	Schedule models.Schedule
	Recent   []models.Attendance
}

// AttendanceService drives the per-day check-in state machine:
// not checked in, checked in, checked out.
type AttendanceService interface {
	Login(employeeID string) (*models.Employee, error)
	Status(employeeID string) (*WorkerStatus, error)
	CheckIn(employeeID string) (*models.Attendance, error)
	CheckOut(employeeID string) (*models.Attendance, error)
}

type attendanceService struct {
	employeeRepo   repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceService(employeeRepo repository.EmployeeRepository, attendanceRepo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{employeeRepo: employeeRepo, attendanceRepo: attendanceRepo, now: time.Now}
}

func findEmployee(employeeRepo repository.EmployeeRepository, employeeID string) (*models.Employee, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrMissingFields
	}
	employee, err := employeeRepo.GetByEmployeeID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	return employee, nil
}

func (s *attendanceService) Login(employeeID string) (*models.Employee, error) {
	employee, err := findEmployee(s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive() {
		return nil, ErrEmployeeInactive
	}
	return employee, nil
}

func (s *attendanceService) today() string {
	return s.now().Format(models.DateLayout)
}

func (s *attendanceService) todayRow(employeeID string) (*models.Attendance, error) {
	row, err := s.attendanceRepo.GetByEmployeeAndDate(employeeID, s.today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	return row, nil
}

func (s *attendanceService) Status(employeeID string) (*WorkerStatus, error) {
	employee, err := findEmployee(s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}
	today, err := s.todayRow(employee.EmployeeID)
	if err != nil {
		return nil, err
	}
	recent, err := s.attendanceRepo.GetByEmployee(employee.EmployeeID, recentAttendanceLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance history: %w", err)
	}
	return &WorkerStatus{
		Employee: employee,
		Today:    today,
		Schedule: employee.WeeklySchedule(),
		Recent:   recent,
	}, nil
}

func (s *attendanceService) CheckIn(employeeID string) (*models.Attendance, error) {
	existing, err := s.todayRow(employeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrAlreadyCheckedIn
	}

	now := s.now()
	row := &models.Attendance{
		EmployeeID:  employeeID,
		Date:        now.Format(models.DateLayout),
		CheckInTime: &now,
	}
	if err := s.attendanceRepo.Create(row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("failed to check in: %w", err)
	}
	return row, nil
}

// CheckOut closes today's row and credits the hours worked to the pay period.
func (s *attendanceService) CheckOut(employeeID string) (*models.Attendance, error) {
	row, err := s.todayRow(employeeID)
	if err != nil {
		return nil, err
	}
	if !row.CheckedIn() {
		return nil, ErrNotCheckedIn
	}
	if row.CheckedOut() {
		return row, ErrAlreadyCheckedOut
	}

	now := s.now()
	hours := now.Sub(*row.CheckInTime).Hours()
	if hours < 0 {
		hours = 0
	}
	if err := s.attendanceRepo.CheckOut(row.ID, employeeID, now, hours); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyCheckedOut
		}
		return nil, fmt.Errorf("failed to check out: %w", err)
	}
	row.CheckOutTime = &now
	row.HoursWorked = hours
	return row, nil
}
